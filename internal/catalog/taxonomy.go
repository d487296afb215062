package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// PropertyType is one top-level entry of the taxonomy with its subtypes.
type PropertyType struct {
	Name     string
	SubTypes []string
}

// Taxonomy is the three-level lookup table property type -> subtype -> unit type.
type Taxonomy struct {
	types     []PropertyType
	unitTypes map[string][]string
}

var baseUnitTypes = []string{
	"Intermediate",
	"Corner Lot",
	"End Lot",
	"Duplex",
	"Triplex",
	"Penthouse",
	"Studio",
	"Soho",
	"Loft",
	"Dual Key",
	"Prefer not to say",
}

var defaultTypes = []PropertyType{
	{
		Name: "Bungalow / Villa",
		SubTypes: []string{
			"Bungalow",
			"Zero-Lot Bungalow",
			"Link Bungalow",
			"Bungalow Land",
			"Twin Villas",
		},
	},
	{
		Name:     "Apartment / Condo / Service Residence",
		SubTypes: []string{"Flat", "Apartment", "Service Residence", "Condominium"},
	},
	{
		Name:     "Semi-Detached House",
		SubTypes: []string{"Semi-Detached House", "Cluster House"},
	},
	{
		Name: "Terrace / Link House",
		SubTypes: []string{
			"Terraced House",
			"1-storey Terraced House",
			"1.5-storey Terraced House",
			"2-storey Terrace House",
			"2.5-storey Terraced House",
			"3-storey Terraced House",
			"3.5-storey Terraced House",
			"4-storey Terraced House",
			"4.5-storey Terraced House",
			"Townhouse",
		},
	},
	{
		Name:     "Residential Land",
		SubTypes: []string{"Residential Land"},
	},
	{
		Name:     "Commercial",
		SubTypes: []string{"Office", "Retail", "Shop House", "Commercial Land"},
	},
	{
		Name:     "Industrial",
		SubTypes: []string{"Factory", "Warehouse", "Industrial Land"},
	},
}

// NewTaxonomy builds a taxonomy where every subtype shares the given unit types.
func NewTaxonomy(types []PropertyType, unitTypes []string) *Taxonomy {
	t := &Taxonomy{unitTypes: make(map[string][]string)}
	for _, pt := range types {
		t.types = append(t.types, PropertyType{Name: pt.Name, SubTypes: slices.Clone(pt.SubTypes)})
		for _, sub := range pt.SubTypes {
			t.unitTypes[sub] = slices.Clone(unitTypes)
		}
	}
	return t
}

// DefaultTaxonomy returns the built-in property taxonomy.
func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy(defaultTypes, baseUnitTypes)
}

// Types lists property types in display order.
func (t *Taxonomy) Types() []string {
	names := make([]string, len(t.types))
	for i, pt := range t.types {
		names[i] = pt.Name
	}
	return names
}

// SubTypes lists the subtypes of a property type, or nil for an unknown type.
func (t *Taxonomy) SubTypes(propertyType string) []string {
	for _, pt := range t.types {
		if pt.Name == propertyType {
			return slices.Clone(pt.SubTypes)
		}
	}
	return nil
}

// UnitTypes lists the unit types of a subtype, or nil for an unknown subtype.
func (t *Taxonomy) UnitTypes(subType string) []string {
	return slices.Clone(t.unitTypes[subType])
}

// ValidSubType reports whether subType belongs to propertyType.
func (t *Taxonomy) ValidSubType(propertyType, subType string) bool {
	return slices.Contains(t.SubTypes(propertyType), subType)
}

// ValidUnitType reports whether unitType belongs to subType.
func (t *Taxonomy) ValidUnitType(subType, unitType string) bool {
	return slices.Contains(t.unitTypes[subType], unitType)
}

// Selection is a resolved property type triple.
type Selection struct {
	Type     string
	SubType  string
	UnitType string
}

// WithType changes the property type and resets subtype and unit type to the
// first valid options. An unknown type yields empty dependents.
func (t *Taxonomy) WithType(propertyType string) Selection {
	sel := Selection{Type: propertyType}
	if subs := t.SubTypes(propertyType); len(subs) > 0 {
		sel.SubType = subs[0]
	}
	sel.UnitType = first(t.unitTypes[sel.SubType])
	return sel
}

// WithSubType changes the subtype of cur and resets the unit type to the
// first valid option.
func (t *Taxonomy) WithSubType(cur Selection, subType string) Selection {
	cur.SubType = subType
	cur.UnitType = first(t.unitTypes[subType])
	return cur
}

// Check verifies that every type has subtypes and every subtype has unit types.
func (t *Taxonomy) Check() error {
	if len(t.types) == 0 {
		return errors.New("taxonomy has no property types")
	}
	var errs []error
	for _, pt := range t.types {
		if len(pt.SubTypes) == 0 {
			errs = append(errs, fmt.Errorf("property type %q has no subtypes", pt.Name))
			continue
		}
		for _, sub := range pt.SubTypes {
			if len(t.unitTypes[sub]) == 0 {
				errs = append(errs, fmt.Errorf("subtype %q of %q has no unit types", sub, pt.Name))
			}
		}
	}
	return errors.Join(errs...)
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
