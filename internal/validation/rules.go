// Package validation implements the per-step rules that decide whether a draft
// may leave a wizard step, plus a whole-draft publish readiness report.
package validation

import (
	"math"

	"github.com/mark3labs/listwiz/internal/catalog"
	"github.com/mark3labs/listwiz/internal/listing"
)

// MinPhotos is the number of gallery photos required to pass the gallery step.
const MinPhotos = 5

// Result is the outcome of validating one step.
type Result struct {
	Valid   bool    `json:"isValid"`
	Errors  *Errors `json:"errors"`
	Message string  `json:"message"`
}

// Rule inspects the draft and records problems. Rules run in order and the
// first message recorded for a field wins.
type Rule func(v *Validator, d *listing.Draft, errs *Errors)

type pipeline struct {
	rules []Rule
	ok    string
}

// Validator runs the step pipelines against a taxonomy.
type Validator struct {
	taxonomy  *catalog.Taxonomy
	pipelines map[listing.Step]pipeline
}

// New returns a validator checking property types against tax.
func New(tax *catalog.Taxonomy) *Validator {
	if tax == nil {
		tax = catalog.DefaultTaxonomy()
	}
	return &Validator{
		taxonomy: tax,
		pipelines: map[listing.Step]pipeline{
			listing.StepListingType: {
				rules: []Rule{requireCategory, requirePurpose, requireAvailableDate, listingTypeStructure},
				ok:    "Listing basics captured.",
			},
			listing.StepLocation: {
				rules: []Rule{requireDevelopment, requirePropertyType, requireSubType, requireUnitType, taxonomyMembership},
				ok:    "Location confirmed.",
			},
			listing.StepUnitDetails: {
				rules: []Rule{requireBedrooms, requireBathrooms, requireBuiltUp, requireFurnishing, unitDetailsStructure},
				ok:    "Unit details captured.",
			},
			listing.StepPrice: {
				rules: []Rule{requireSellingPrice, pricingStructure},
				ok:    "Pricing captured.",
			},
			listing.StepGallery: {
				rules: []Rule{requirePhotoCount, requireCover},
				ok:    "Gallery ready for review.",
			},
		},
	}
}

var defaultValidator = New(nil)

// Validate checks step against d with the default taxonomy.
func Validate(step listing.Step, d *listing.Draft) Result {
	return defaultValidator.Validate(step, d)
}

// Validate checks step against d. It never modifies d. Steps without rules,
// including preview and platform, are always valid.
func (v *Validator) Validate(step listing.Step, d *listing.Draft) Result {
	p, ok := v.pipelines[step]
	if !ok {
		return Result{Valid: true, Errors: NewErrors(), Message: "Review details and continue."}
	}
	errs := NewErrors()
	for _, rule := range p.rules {
		rule(v, d, errs)
	}
	if _, msg, failed := errs.First(); failed {
		return Result{Valid: false, Errors: errs, Message: msg}
	}
	return Result{Valid: true, Errors: errs, Message: p.ok}
}

func requireCategory(_ *Validator, d *listing.Draft, errs *Errors) {
	if d.PropertyCategory == "" {
		errs.Add("propertyCategory", "Select a property category to proceed.")
	}
}

func requirePurpose(_ *Validator, d *listing.Draft, errs *Errors) {
	if d.ListingPurpose == "" {
		errs.Add("listingPurpose", "Select whether the listing is for sale or rent.")
	}
}

func requireAvailableDate(_ *Validator, d *listing.Draft, errs *Errors) {
	if d.AvailabilityMode == listing.AvailabilityScheduled && (d.AvailableDate == nil || *d.AvailableDate == "") {
		errs.Add("availableDate", "Choose an availability date for scheduled listings.")
	}
}

func listingTypeStructure(_ *Validator, d *listing.Draft, errs *Errors) {
	checkShape(listingTypeShape{
		PropertyCategory: string(d.PropertyCategory),
		ListingPurpose:   string(d.ListingPurpose),
		AvailabilityMode: string(d.AvailabilityMode),
	}, errs)
}

func location(d *listing.Draft) listing.LocationSelection {
	if d.Location == nil {
		return listing.LocationSelection{}
	}
	return *d.Location
}

// requireDevelopment demands a development name and, once one is present, a
// structurally complete location payload.
func requireDevelopment(_ *Validator, d *listing.Draft, errs *Errors) {
	loc := location(d)
	if loc.DevelopmentName == "" {
		errs.Add("developmentName", "Choose a development before continuing.")
		return
	}
	if !shapeValid(locationShape{
		SearchTerm:       loc.SearchTerm,
		DevelopmentName:  loc.DevelopmentName,
		PropertyType:     loc.PropertyType,
		PropertySubType:  loc.PropertySubType,
		PropertyUnitType: loc.PropertyUnitType,
	}) {
		errs.Add("developmentName", "Enter a valid development selection.")
	}
}

func requirePropertyType(_ *Validator, d *listing.Draft, errs *Errors) {
	if location(d).PropertyType == "" {
		errs.Add("propertyType", "Select a property type to continue.")
	}
}

func requireSubType(_ *Validator, d *listing.Draft, errs *Errors) {
	if location(d).PropertySubType == "" {
		errs.Add("propertySubType", "Select a property subtype to continue.")
	}
}

func requireUnitType(_ *Validator, d *listing.Draft, errs *Errors) {
	if location(d).PropertyUnitType == "" {
		errs.Add("propertyUnitType", "Select a property unit type to continue.")
	}
}

func taxonomyMembership(v *Validator, d *listing.Draft, errs *Errors) {
	loc := location(d)
	if loc.PropertyType != "" && loc.PropertySubType != "" && !v.taxonomy.ValidSubType(loc.PropertyType, loc.PropertySubType) {
		errs.Add("propertySubType", "Choose a property subtype that matches the property type.")
	}
	if loc.PropertySubType != "" && loc.PropertyUnitType != "" && !v.taxonomy.ValidUnitType(loc.PropertySubType, loc.PropertyUnitType) {
		errs.Add("propertyUnitType", "Choose a unit type that matches the property subtype.")
	}
}

func requireBedrooms(_ *Validator, d *listing.Draft, errs *Errors) {
	if d.UnitDetails.Bedrooms == nil {
		errs.Add("bedrooms", "Enter the number of bedrooms.")
	}
}

func requireBathrooms(_ *Validator, d *listing.Draft, errs *Errors) {
	if d.UnitDetails.Bathrooms == nil {
		errs.Add("bathrooms", "Enter the number of bathrooms.")
	}
}

func requireBuiltUp(_ *Validator, d *listing.Draft, errs *Errors) {
	b := d.UnitDetails.BuiltUp
	if b == nil || math.IsNaN(*b) || *b <= 0 {
		errs.Add("builtUp", "Provide the built-up size in sqft.")
	}
}

func requireFurnishing(_ *Validator, d *listing.Draft, errs *Errors) {
	if d.UnitDetails.Furnishing == "" {
		errs.Add("furnishing", "Select a furnishing option.")
	}
}

func unitDetailsStructure(_ *Validator, d *listing.Draft, errs *Errors) {
	u := d.UnitDetails
	checkShape(unitDetailsShape{
		Bedrooms:      u.Bedrooms,
		Bathrooms:     u.Bathrooms,
		MaidRooms:     u.MaidRooms,
		BuiltUp:       u.BuiltUp,
		BuiltUpWidth:  u.BuiltUpWidth,
		BuiltUpLength: u.BuiltUpLength,
		Block:         u.Block,
		Floor:         u.Floor,
		UnitNumber:    u.UnitNumber,
		ParkingSpots:  u.ParkingSpots,
		Furnishing:    string(u.Furnishing),
	}, errs)
}

func requireSellingPrice(_ *Validator, d *listing.Draft, errs *Errors) {
	p := d.Pricing.SellingPrice
	if p == nil || math.IsNaN(*p) || *p <= 0 {
		errs.Add("sellingPrice", "Provide the selling price to continue.")
	}
}

func pricingStructure(_ *Validator, d *listing.Draft, errs *Errors) {
	p := d.Pricing
	checkShape(pricingShape{
		PriceType:      string(p.PriceType),
		SellingPrice:   p.SellingPrice,
		MaintenanceFee: p.MaintenanceFee,
		PricePerSqft:   p.PricePerSqft,
	}, errs)
}

// requirePhotoCount counts gallery photos only; project photos never count.
func requirePhotoCount(_ *Validator, d *listing.Draft, errs *Errors) {
	if len(d.Media.Photos) < MinPhotos {
		errs.Add("photos", "Add at least 5 photos to continue.")
	}
}

func requireCover(_ *Validator, d *listing.Draft, errs *Errors) {
	if len(d.Media.Photos) == 0 {
		return
	}
	if !d.Media.HasPhoto(d.Media.Cover()) {
		errs.Add("coverPhotoId", "Select a cover photo.")
	}
}
