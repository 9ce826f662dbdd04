// Package refdata holds the static reference tables backing form selects:
// countries, cities and property types. Codes are what the database stores;
// labels are presentation-only.
package refdata

// Entry is one code/label pair in a reference table.
type Entry struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Countries served by the brand.
var Countries = []Entry{
	{Code: "fr", Label: "France"},
	{Code: "mc", Label: "Monaco"},
	{Code: "it", Label: "Italy"},
	{Code: "es", Label: "Spain"},
	{Code: "ch", Label: "Switzerland"},
}

// Cities where listings exist.
var Cities = []Entry{
	{Code: "cannes", Label: "Cannes"},
	{Code: "nice", Label: "Nice"},
	{Code: "saint-tropez", Label: "Saint-Tropez"},
	{Code: "monaco", Label: "Monaco"},
	{Code: "antibes", Label: "Antibes"},
	{Code: "saint-jean-cap-ferrat", Label: "Saint-Jean-Cap-Ferrat"},
	{Code: "portofino", Label: "Portofino"},
	{Code: "marbella", Label: "Marbella"},
	{Code: "gstaad", Label: "Gstaad"},
}

// PropertyTypes recognised by the search filters.
var PropertyTypes = []Entry{
	{Code: "villa", Label: "Villa"},
	{Code: "penthouse", Label: "Penthouse"},
	{Code: "apartment", Label: "Apartment"},
	{Code: "chalet", Label: "Chalet"},
	{Code: "estate", Label: "Estate"},
	{Code: "yacht", Label: "Yacht"},
}

// ValidCity reports whether code exists in the Cities table.
func ValidCity(code string) bool { return contains(Cities, code) }

// ValidCountry reports whether code exists in the Countries table.
func ValidCountry(code string) bool { return contains(Countries, code) }

// ValidPropertyType reports whether code exists in the PropertyTypes table.
func ValidPropertyType(code string) bool { return contains(PropertyTypes, code) }

func contains(entries []Entry, code string) bool {
	for _, e := range entries {
		if e.Code == code {
			return true
		}
	}
	return false
}
