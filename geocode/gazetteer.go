package geocode

import (
	"sort"
	"strings"
)

// Place is one gazetteer entry.
type Place struct {
	Name        string
	Coordinates Coordinates
}

// RegionEntry is a region with its districts and wards.
type RegionEntry struct {
	Place
	Districts []DistrictEntry
}

// DistrictEntry is a district with its wards.
type DistrictEntry struct {
	Place
	Wards []Place
}

// Gazetteer is a static name to coordinate table.
//
// Districts and wards are indexed both under their parent and flat. A name
// shared by two parents resolves by parent when the parent is given, and to
// the first listed otherwise.
type Gazetteer struct {
	regions   map[string]Place
	districts map[string]Place
	wards     map[string]Place

	districtsIn map[string]map[string]Place // region -> district
	wardsIn     map[string]map[string]Place // district -> ward

	table []RegionEntry
}

// NewGazetteer indexes a region table. Later duplicates of a normalized name
// within one index are ignored.
func NewGazetteer(table []RegionEntry) *Gazetteer {
	g := &Gazetteer{
		regions:     make(map[string]Place),
		districts:   make(map[string]Place),
		wards:       make(map[string]Place),
		districtsIn: make(map[string]map[string]Place),
		wardsIn:     make(map[string]map[string]Place),
		table:       table,
	}
	for _, r := range table {
		addPlace(g.regions, r.Place)
		for _, d := range r.Districts {
			addPlace(g.districts, d.Place)
			addScoped(g.districtsIn, r.Name, d.Place)
			for _, w := range d.Wards {
				addPlace(g.wards, w)
				addScoped(g.wardsIn, d.Name, w)
			}
		}
	}
	return g
}

// DefaultGazetteer returns the built-in Tanzania table.
func DefaultGazetteer() *Gazetteer {
	return NewGazetteer(tanzania)
}

func addPlace(m map[string]Place, p Place) {
	key := Normalize(p.Name)
	if _, ok := m[key]; !ok {
		m[key] = p
	}
}

func addScoped(m map[string]map[string]Place, parent string, p Place) {
	key := Normalize(parent)
	if m[key] == nil {
		m[key] = make(map[string]Place)
	}
	addPlace(m[key], p)
}

func lookupScoped(scoped map[string]map[string]Place, flat map[string]Place, parent, name string) (Place, bool) {
	if parent != "" {
		if p, ok := scoped[Normalize(parent)][Normalize(name)]; ok {
			return p, true
		}
	}
	p, ok := flat[Normalize(name)]
	return p, ok
}

// Normalize lower-cases a name and joins its words with hyphens.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Lookup matches ward, then district, then region. Ward and district matches
// carry district accuracy, a region match region accuracy.
func (g *Gazetteer) Lookup(loc Location) (Result, bool) {
	if loc.Ward != "" {
		if p, ok := lookupScoped(g.wardsIn, g.wards, loc.District, loc.Ward); ok {
			return Result{Coordinates: p.Coordinates, Source: SourceLocalDatabase, Accuracy: AccuracyDistrict}, true
		}
	}
	if loc.District != "" {
		if p, ok := lookupScoped(g.districtsIn, g.districts, loc.Region, loc.District); ok {
			return Result{Coordinates: p.Coordinates, Source: SourceLocalDatabase, Accuracy: AccuracyDistrict}, true
		}
	}
	if loc.Region != "" {
		if p, ok := g.regions[Normalize(loc.Region)]; ok {
			return Result{Coordinates: p.Coordinates, Source: SourceLocalDatabase, Accuracy: AccuracyRegion}, true
		}
	}
	return Result{}, false
}

// Directory returns region names mapped to their district names, in table
// order.
func (g *Gazetteer) Directory() map[string][]string {
	dir := make(map[string][]string, len(g.table))
	for _, r := range g.table {
		names := make([]string, len(r.Districts))
		for i, d := range r.Districts {
			names[i] = d.Name
		}
		dir[r.Name] = names
	}
	return dir
}

// Regions returns the sorted region names.
func (g *Gazetteer) Regions() []string {
	names := make([]string, 0, len(g.table))
	for _, r := range g.table {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names
}
