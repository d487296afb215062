// Package catalog holds the static reference data the wizard consumes: photo
// libraries, the development list, the property taxonomy and option lists.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mark3labs/listwiz/internal/listing"
)

// Option lists offered by the location and unit detail steps.
var (
	TitleTypes     = []string{"Individual", "Strata", "Master"}
	TenureOptions  = []string{"Freehold", "Leasehold"}
	BumiOptions    = []string{listing.DefaultBumiLot, "Yes", "No"}
	FeatureOptions = []string{
		"Balcony",
		"Maid room",
		"Dry kitchen",
		"Wet kitchen",
		"Smart lock",
		"High ceiling",
		"Private lift",
	}
)

// Location is a known development returned by search.
type Location struct {
	DevelopmentName  string
	Address          string
	Latitude         float64
	Longitude        float64
	PropertyType     string
	PropertySubType  string
	PropertyUnitType string
	State            string
	City             string
	Street           string
	PostalCode       string
	Tenure           string
	CompletionYear   string
	TitleType        string
	BumiLot          string
}

// Selection converts l into a draft location with the given search text.
func (l Location) Selection(searchTerm string) listing.LocationSelection {
	bumi := l.BumiLot
	if bumi == "" {
		bumi = listing.DefaultBumiLot
	}
	return listing.LocationSelection{
		SearchTerm:       searchTerm,
		DevelopmentName:  l.DevelopmentName,
		Address:          l.Address,
		Latitude:         listing.Ptr(l.Latitude),
		Longitude:        listing.Ptr(l.Longitude),
		PropertyType:     l.PropertyType,
		PropertySubType:  l.PropertySubType,
		PropertyUnitType: l.PropertyUnitType,
		State:            l.State,
		City:             l.City,
		Street:           l.Street,
		PostalCode:       l.PostalCode,
		Tenure:           l.Tenure,
		CompletionYear:   l.CompletionYear,
		TitleType:        l.TitleType,
		BumiLot:          bumi,
	}
}

var locations = []Location{
	{
		DevelopmentName:  "Skyline Residences",
		Address:          "123 Bukit Timah Road, Singapore",
		Latitude:         1.3302,
		Longitude:        103.7765,
		PropertyType:     "Apartment / Condo / Service Residence",
		PropertySubType:  "Service Residence",
		PropertyUnitType: "Intermediate",
		State:            "Selangor",
		City:             "Damansara Perdana",
		Street:           "Jalan PJU 8/8A",
		PostalCode:       "47820",
		Tenure:           "Leasehold",
		CompletionYear:   "2013",
		TitleType:        "Master",
		BumiLot:          listing.DefaultBumiLot,
	},
	{
		DevelopmentName:  "Marina Business Park",
		Address:          "8 Marina View, Singapore",
		Latitude:         1.2801,
		Longitude:        103.8545,
		PropertyType:     "Commercial",
		PropertySubType:  "Office",
		PropertyUnitType: "Corner Lot",
		State:            "Kuala Lumpur",
		City:             "KL City Centre",
		Street:           "Jalan Ampang",
		PostalCode:       "50450",
		Tenure:           "Freehold",
		CompletionYear:   "2018",
		TitleType:        "Individual",
		BumiLot:          "No",
	},
	{
		DevelopmentName:  "Emerald Hills Condominium",
		Address:          "88 Orchard Boulevard, Singapore",
		Latitude:         1.3046,
		Longitude:        103.8238,
		PropertyType:     "Apartment / Condo / Service Residence",
		PropertySubType:  "Condominium",
		PropertyUnitType: "Corner Lot",
		State:            "Selangor",
		City:             "Petaling Jaya",
		Street:           "Jalan Universiti",
		PostalCode:       "46200",
		Tenure:           "Freehold",
		CompletionYear:   "2020",
		TitleType:        "Strata",
		BumiLot:          listing.DefaultBumiLot,
	},
	{
		DevelopmentName:  "Maple Commercial Tower",
		Address:          "12 Robinson Road, Singapore",
		Latitude:         1.2809,
		Longitude:        103.8504,
		PropertyType:     "Commercial",
		PropertySubType:  "Retail",
		PropertyUnitType: "Intermediate",
		State:            "Penang",
		City:             "George Town",
		Street:           "Lebuh Pantai",
		PostalCode:       "10300",
		Tenure:           "Leasehold",
		CompletionYear:   "2015",
		TitleType:        "Master",
		BumiLot:          "Yes",
	},
}

// Catalog bundles the reference data one session reads.
type Catalog struct {
	Samples   []listing.SamplePhoto
	Projects  []listing.SamplePhoto
	Locations []Location
	Taxonomy  *Taxonomy
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Samples:   SamplePhotos(),
		Projects:  ProjectPhotos(),
		Locations: append([]Location(nil), locations...),
		Taxonomy:  DefaultTaxonomy(),
	}
}

// SearchLocations matches term against development name or address,
// case-insensitively. An empty term returns every location.
func (c *Catalog) SearchLocations(term string) []Location {
	if strings.TrimSpace(term) == "" {
		return append([]Location(nil), c.Locations...)
	}
	fold := cases.Fold()
	needle := fold.String(term)
	var out []Location
	for _, loc := range c.Locations {
		if strings.Contains(fold.String(loc.DevelopmentName), needle) ||
			strings.Contains(fold.String(loc.Address), needle) {
			out = append(out, loc)
		}
	}
	return out
}

// FindLocation returns the location whose development name matches name
// case-insensitively.
func (c *Catalog) FindLocation(name string) (Location, bool) {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(name))
	for _, loc := range c.Locations {
		if fold.String(loc.DevelopmentName) == needle {
			return loc, true
		}
	}
	return Location{}, false
}

// Template is a ready-made narrative and gallery used to prefill a draft.
type Template struct {
	Headline    string
	Description string
	Photos      []listing.SamplePhoto
}

// PremiumResidence is the default listing template.
func PremiumResidence() Template {
	return Template{
		Headline: "Luxurious 3-bedroom condo with skyline views",
		Description: "Presenting a refined high-floor residence in the heart of the city. " +
			"This 3-bedroom unit delivers expansive living areas, modern furnishings, and uninterrupted skyline views. " +
			"Residents gain access to comprehensive facilities including an infinity pool, co-working lounge, and concierge services. " +
			"Within minutes to MRT and top-tier amenities.",
		Photos: SamplePhotos()[:5],
	}
}
