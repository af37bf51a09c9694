package models

// AircraftInfo is the flattened attribute map returned by the portal's
// aircraft lookup endpoint. Keys are the XML child tag names, lowercased.
// It is fetched per submission and never cached.
type AircraftInfo map[string]string

// Airworthiness categories operated by airlines. Flight time for these is
// filed by the operating airline, not by the individual pilot.
var airlineCategories = map[string]struct{}{
	"TPN": {},
	"TPX": {},
	"TPR": {},
}

func (a AircraftInfo) CategoryCode() string   { return a["cd_categoria"] }
func (a AircraftInfo) RatingDomainID() string { return a["id_dominio_habilitacao"] }
func (a AircraftInfo) RatingTypeCode() string { return a["cd_tipo"] }

// AirlineOperated reports whether the aircraft's category bars individual
// logbook submissions.
func (a AircraftInfo) AirlineOperated() bool {
	_, ok := airlineCategories[a.CategoryCode()]
	return ok
}
