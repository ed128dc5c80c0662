// internal/form/geo/places.go
package geo

import "strings"

// Place maps a city to its parent state and country.
type Place struct {
	City    string
	State   string
	Country string
}

// Reference hierarchy of supported locations. In a larger deployment this
// would come from a reference-data service; the supported intake regions
// are fixed.
var places = []Place{
	{City: "Chennai", State: "Tamil Nadu", Country: "India"},
	{City: "Bangalore", State: "Karnataka", Country: "India"},
	{City: "Mumbai", State: "Maharashtra", Country: "India"},
	{City: "Hyderabad", State: "Telangana", Country: "India"},
	{City: "Dubai", State: "Dubai", Country: "UAE"},
	{City: "Abu Dhabi", State: "Abu Dhabi", Country: "UAE"},
	{City: "Sharjah", State: "Sharjah", Country: "UAE"},
	{City: "Ajman", State: "Ajman", Country: "UAE"},
}

var (
	cityIndex  = map[string]Place{}
	stateIndex = map[string]Place{}
)

func init() {
	for _, p := range places {
		cityIndex[normalize(p.City)] = p
		stateIndex[normalize(p.State)] = p
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LookupCity resolves a city name, case-insensitively and ignoring
// surrounding whitespace.
func LookupCity(city string) (Place, bool) {
	p, ok := cityIndex[normalize(city)]
	return p, ok
}

// LookupState resolves a state name to any place within it.
func LookupState(state string) (Place, bool) {
	p, ok := stateIndex[normalize(state)]
	return p, ok
}
