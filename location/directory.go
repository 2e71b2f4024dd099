package location

import (
	"sort"
	"strings"
)

// Directory maps region names to their district names.
type Directory map[string][]string

// Kind separates regions from districts in a flattened list.
type Kind string

const (
	KindRegion   Kind = "region"
	KindDistrict Kind = "district"
)

// Flattened is one searchable entry.
type Flattened struct {
	Type        Kind   `json:"type"`
	Name        string `json:"name"`
	RegionName  string `json:"regionName"`
	DisplayName string `json:"displayName"`
}

// Regions returns the region names in sorted order.
func (d Directory) Regions() []string {
	out := make([]string, 0, len(d))
	for r := range d {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Flatten lists each region followed by its districts. Regions are sorted;
// districts keep their listed order.
func Flatten(dir Directory) []Flattened {
	out := make([]Flattened, 0, len(dir))
	for _, region := range dir.Regions() {
		out = append(out, Flattened{
			Type:        KindRegion,
			Name:        region,
			RegionName:  region,
			DisplayName: region,
		})
		for _, district := range dir[region] {
			out = append(out, Flattened{
				Type:        KindDistrict,
				Name:        district,
				RegionName:  region,
				DisplayName: district + ", " + region,
			})
		}
	}
	return out
}

// Search returns the entries whose name or display name contains query,
// ignoring case. An empty query matches nothing.
func Search(flat []Flattened, query string) []Flattened {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Flattened{}
	}
	out := []Flattened{}
	for _, f := range flat {
		if strings.Contains(strings.ToLower(f.Name), q) || strings.Contains(strings.ToLower(f.DisplayName), q) {
			out = append(out, f)
		}
	}
	return out
}
