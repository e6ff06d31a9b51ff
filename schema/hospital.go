package schema

// HospitalRecord is one row of the hospital dataset handed over by the
// data-ingestion collaborator: the static description of a facility
// keyed by the administrative area containing it.
type HospitalRecord struct {
	AreaName  string  `json:"area_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Beds      int     `json:"beds"`
	ICUBeds   int     `json:"icu_beds"`
	TrustCode string  `json:"code"`
}

// Location - the record's coordinates as a Location
func (r HospitalRecord) Location() Location {
	return Location{
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}
