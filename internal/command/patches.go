package command

import (
	"github.com/mark3labs/listwiz/internal/listing"
)

// Field specs of the patch commands. Keys follow the draft's JSON names.

var listingTypeFields = []Param{
	{Name: "propertyCategory", Kind: KindString, Enum: []string{"residential", "commercial", "industrial"}},
	{Name: "listingPurpose", Kind: KindString, Enum: []string{"sale", "rent"}},
	{Name: "auctioned", Kind: KindBoolean},
	{Name: "availabilityMode", Kind: KindString, Enum: []string{"immediate", "scheduled"}},
	{Name: "availableDate", Kind: KindString, Nullable: true, Description: "Required when availability is scheduled"},
	{Name: "coAgency", Kind: KindBoolean},
	{Name: "referenceNumber", Kind: KindString},
}

var locationFields = []Param{
	{Name: "searchTerm", Kind: KindString},
	{Name: "developmentName", Kind: KindString},
	{Name: "address", Kind: KindString},
	{Name: "latitude", Kind: KindNumber, Nullable: true},
	{Name: "longitude", Kind: KindNumber, Nullable: true},
	{Name: "propertyType", Kind: KindString},
	{Name: "propertySubType", Kind: KindString},
	{Name: "propertyUnitType", Kind: KindString},
	{Name: "state", Kind: KindString},
	{Name: "city", Kind: KindString},
	{Name: "street", Kind: KindString},
	{Name: "postalCode", Kind: KindString},
	{Name: "tenure", Kind: KindString},
	{Name: "completionYear", Kind: KindString},
	{Name: "titleType", Kind: KindString},
	{Name: "leaseYearsRemaining", Kind: KindString},
	{Name: "bumiLot", Kind: KindString},
}

var unitDetailsFields = []Param{
	{Name: "bedrooms", Kind: KindInteger, Nullable: true},
	{Name: "bathrooms", Kind: KindInteger, Nullable: true},
	{Name: "maidRooms", Kind: KindInteger},
	{Name: "builtUp", Kind: KindNumber, Nullable: true, Description: "Built-up area in sqft"},
	{Name: "builtUpWidth", Kind: KindNumber, Nullable: true},
	{Name: "builtUpLength", Kind: KindNumber, Nullable: true},
	{Name: "block", Kind: KindString},
	{Name: "floor", Kind: KindString},
	{Name: "unitNumber", Kind: KindString},
	{Name: "hideLocationDetails", Kind: KindBoolean},
	{Name: "parkingSpots", Kind: KindInteger},
	{Name: "furnishing", Kind: KindString, Enum: []string{"fully", "partial", "unfurnished"}},
	{Name: "features", Kind: KindArray, Description: "Replaces the feature tags"},
}

var pricingFields = []Param{
	{Name: "priceType", Kind: KindString, Enum: []string{"none", "negotiable", "fixed", "poa"}},
	{Name: "sellingPrice", Kind: KindNumber, Nullable: true},
	{Name: "maintenanceFee", Kind: KindNumber, Nullable: true},
	{Name: "pricePerSqft", Kind: KindNumber, Nullable: true, Description: "Overwritten when the selling price or built-up area changes"},
}

var platformFields = []Param{
	{Name: "publishIProperty", Kind: KindBoolean},
	{Name: "publishPropertyGuru", Kind: KindBoolean},
	{Name: "boost", Kind: KindBoolean},
	{Name: "scheduledPublish", Kind: KindBoolean},
	{Name: "scheduledDate", Kind: KindString, Nullable: true},
}

// DecodeListingType builds a listing-type patch from camelCase keys.
func DecodeListingType(raw map[string]any) (listing.ListingTypePatch, error) {
	var p listing.ListingTypePatch
	a := newArgs(raw)
	setText(a, "propertyCategory", &p.PropertyCategory)
	setText(a, "listingPurpose", &p.ListingPurpose)
	setBool(a, "auctioned", &p.Auctioned)
	setText(a, "availabilityMode", &p.AvailabilityMode)
	setTextPtr(a, "availableDate", &p.AvailableDate)
	setBool(a, "coAgency", &p.CoAgency)
	setText(a, "referenceNumber", &p.ReferenceNumber)
	return p, a.err()
}

// DecodeLocation builds a partial location patch.
func DecodeLocation(raw map[string]any) (listing.LocationPatch, error) {
	var p listing.LocationPatch
	a := newArgs(raw)
	setText(a, "searchTerm", &p.SearchTerm)
	setText(a, "developmentName", &p.DevelopmentName)
	setText(a, "address", &p.Address)
	setFloatPtr(a, "latitude", &p.Latitude)
	setFloatPtr(a, "longitude", &p.Longitude)
	setText(a, "propertyType", &p.PropertyType)
	setText(a, "propertySubType", &p.PropertySubType)
	setText(a, "propertyUnitType", &p.PropertyUnitType)
	setText(a, "state", &p.State)
	setText(a, "city", &p.City)
	setText(a, "street", &p.Street)
	setText(a, "postalCode", &p.PostalCode)
	setText(a, "tenure", &p.Tenure)
	setText(a, "completionYear", &p.CompletionYear)
	setText(a, "titleType", &p.TitleType)
	setText(a, "leaseYearsRemaining", &p.LeaseYearsRemaining)
	setText(a, "bumiLot", &p.BumiLot)
	return p, a.err()
}

// DecodeUnitDetails builds a unit-details patch.
func DecodeUnitDetails(raw map[string]any) (listing.UnitDetailsPatch, error) {
	var p listing.UnitDetailsPatch
	a := newArgs(raw)
	setIntPtr(a, "bedrooms", &p.Bedrooms)
	setIntPtr(a, "bathrooms", &p.Bathrooms)
	setInt(a, "maidRooms", &p.MaidRooms)
	setFloatPtr(a, "builtUp", &p.BuiltUp)
	setFloatPtr(a, "builtUpWidth", &p.BuiltUpWidth)
	setFloatPtr(a, "builtUpLength", &p.BuiltUpLength)
	setText(a, "block", &p.Block)
	setText(a, "floor", &p.Floor)
	setText(a, "unitNumber", &p.UnitNumber)
	setBool(a, "hideLocationDetails", &p.HideLocationDetails)
	setInt(a, "parkingSpots", &p.ParkingSpots)
	setText(a, "furnishing", &p.Furnishing)
	if features, ok := a.list("features"); ok {
		p.Features = listing.Some(features)
	}
	return p, a.err()
}

// DecodePricing builds a pricing patch.
func DecodePricing(raw map[string]any) (listing.PricingPatch, error) {
	var p listing.PricingPatch
	a := newArgs(raw)
	setText(a, "priceType", &p.PriceType)
	setFloatPtr(a, "sellingPrice", &p.SellingPrice)
	setFloatPtr(a, "maintenanceFee", &p.MaintenanceFee)
	setFloatPtr(a, "pricePerSqft", &p.PricePerSqft)
	return p, a.err()
}

// DecodePlatform builds a platform settings patch.
func DecodePlatform(raw map[string]any) (listing.PlatformPatch, error) {
	var p listing.PlatformPatch
	a := newArgs(raw)
	setBool(a, "publishIProperty", &p.PublishIProperty)
	setBool(a, "publishPropertyGuru", &p.PublishPropertyGuru)
	setBool(a, "boost", &p.Boost)
	setBool(a, "scheduledPublish", &p.ScheduledPublish)
	setTextPtr(a, "scheduledDate", &p.ScheduledDate)
	return p, a.err()
}
