package geocode

import "strings"

// Variants returns query strings from most to least specific:
//
//	ward, district, region, country
//	district, region, country
//	region, country
//
// A variant is skipped when any of its parts is missing.
func Variants(loc Location, country string) []string {
	ward := strings.TrimSpace(loc.Ward)
	district := strings.TrimSpace(loc.District)
	region := strings.TrimSpace(loc.Region)
	country = strings.TrimSpace(country)

	candidates := [][]string{
		{ward, district, region, country},
		{district, region, country},
		{region, country},
	}
	var out []string
	for _, parts := range candidates {
		if complete(parts) {
			out = append(out, strings.Join(parts, ", "))
		}
	}
	return out
}

// DistrictVariants is Variants without the region-only query.
func DistrictVariants(loc Location, country string) []string {
	all := Variants(loc, country)
	if strings.TrimSpace(loc.Region) == "" || len(all) == 0 {
		return all
	}
	// The region-only variant is always last when present.
	return all[:len(all)-1]
}

func complete(parts []string) bool {
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}
