package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mark3labs/listwiz/internal/listing"
)

// Shapes checked by the structural rules. Field names follow the draft's JSON keys.

type listingTypeShape struct {
	PropertyCategory string `json:"propertyCategory" validate:"omitempty,oneof=residential commercial industrial"`
	ListingPurpose   string `json:"listingPurpose" validate:"omitempty,oneof=sale rent"`
	AvailabilityMode string `json:"availabilityMode" validate:"omitempty,oneof=immediate scheduled"`
}

type locationShape struct {
	SearchTerm       string `json:"searchTerm" validate:"required"`
	DevelopmentName  string `json:"developmentName" validate:"required"`
	PropertyType     string `json:"propertyType" validate:"required"`
	PropertySubType  string `json:"propertySubType" validate:"required"`
	PropertyUnitType string `json:"propertyUnitType" validate:"required"`
}

type unitDetailsShape struct {
	Bedrooms      *int     `json:"bedrooms" validate:"required,gte=0"`
	Bathrooms     *int     `json:"bathrooms" validate:"required,gte=0"`
	MaidRooms     int      `json:"maidRooms" validate:"gte=0"`
	BuiltUp       *float64 `json:"builtUp" validate:"required,gt=0"`
	BuiltUpWidth  *float64 `json:"builtUpWidth" validate:"omitnil,gt=0"`
	BuiltUpLength *float64 `json:"builtUpLength" validate:"omitnil,gt=0"`
	Block         string   `json:"block" validate:"max=20"`
	Floor         string   `json:"floor" validate:"max=20"`
	UnitNumber    string   `json:"unitNumber" validate:"max=20"`
	ParkingSpots  int      `json:"parkingSpots" validate:"gte=0"`
	Furnishing    string   `json:"furnishing" validate:"required,oneof=fully partial unfurnished"`
}

type pricingShape struct {
	PriceType      string   `json:"priceType" validate:"omitempty,oneof=none negotiable fixed poa"`
	SellingPrice   *float64 `json:"sellingPrice" validate:"required,gt=0"`
	MaintenanceFee *float64 `json:"maintenanceFee" validate:"omitnil,gte=0"`
	PricePerSqft   *float64 `json:"pricePerSqft" validate:"omitnil,gte=0"`
}

const tagFixedPrice = "fixedprice"

var structural = newStructural()

func newStructural() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		p := sl.Current().Interface().(pricingShape)
		if p.PriceType == string(listing.PriceFixed) && (p.SellingPrice == nil || *p.SellingPrice == 0) {
			sl.ReportError(p.SellingPrice, "sellingPrice", "SellingPrice", tagFixedPrice, "")
		}
	}, pricingShape{})
	return v
}

var labels = map[string]string{
	"propertyCategory": "Property category",
	"listingPurpose":   "Listing purpose",
	"availabilityMode": "Availability mode",
	"bedrooms":         "Bedrooms",
	"bathrooms":        "Bathrooms",
	"maidRooms":        "Maid rooms",
	"builtUp":          "Built-up size",
	"builtUpWidth":     "Built-up width",
	"builtUpLength":    "Built-up length",
	"block":            "Block",
	"floor":            "Floor",
	"unitNumber":       "Unit number",
	"parkingSpots":     "Parking spots",
	"furnishing":       "Furnishing",
	"priceType":        "Price type",
	"sellingPrice":     "Selling price",
	"maintenanceFee":   "Maintenance fee",
	"pricePerSqft":     "Price per sqft",
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	label, ok := labels[field]
	if !ok {
		label = field
	}
	switch fe.Tag() {
	case "required":
		return label + " cannot be empty"
	case "gte":
		return fmt.Sprintf("%s must be %s or more", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case tagFixedPrice:
		return "Selling price required for fixed listings"
	default:
		return label + " is invalid"
	}
}

// checkShape runs the structural validator over shape and records each
// violation on fields not already flagged.
func checkShape(shape any, errs *Errors) bool {
	err := structural.Struct(shape)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("form", err.Error())
		return false
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), fieldMessage(fe))
	}
	return false
}

// shapeValid reports whether shape passes without recording anything.
func shapeValid(shape any) bool {
	return structural.Struct(shape) == nil
}
