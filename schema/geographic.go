package schema

// Location is a point on the globe in degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Region is the top level of the administrative hierarchy.
type Region struct {
	Name string `json:"name"`
}

// SuperArea groups several areas and belongs to a region.
type SuperArea struct {
	Name   string  `json:"name"`
	Region *Region `json:"region"`
}

// Area is the smallest administrative unit. Hospitals and people are
// keyed by the area containing them.
type Area struct {
	Name      string     `json:"name"`
	SuperArea *SuperArea `json:"super_area"`
}

// Geography is the set of areas a simulation world is restricted to.
type Geography struct {
	Areas []*Area `json:"areas"`
}

// AreasByName - the geography's areas keyed by area name
func (g Geography) AreasByName() map[string]*Area {
	areas := make(map[string]*Area, len(g.Areas))
	for _, area := range g.Areas {
		areas[area.Name] = area
	}
	return areas
}
