package session

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/mmcloughlin/geohash"

	"github.com/mark3labs/listwiz/internal/catalog"
	"github.com/mark3labs/listwiz/internal/listing"
)

// geohashPrecision gives cells of roughly 150m, enough to group units of one
// development.
const geohashPrecision = 7

// mutate applies fn to a copy of the draft, stamps updatedAt and installs the
// copy as the live draft.
func (s *Store) mutate(kind EventKind, action string, fn func(d *listing.Draft)) State {
	d := s.draft.Clone()
	fn(d)
	d.UpdatedAt = s.clock()
	s.draft = d
	s.releaseOrphans()
	s.emit(kind, action, s.current, "")
	return s.State()
}

// UpdateListingType merges p into the listing-type fields.
func (s *Store) UpdateListingType(p listing.ListingTypePatch) State {
	return s.mutate(KindDraft, "listing-type", func(d *listing.Draft) {
		p.PropertyCategory.Apply(&d.PropertyCategory)
		p.ListingPurpose.Apply(&d.ListingPurpose)
		p.Auctioned.Apply(&d.Auctioned)
		p.AvailabilityMode.Apply(&d.AvailabilityMode)
		p.AvailableDate.Apply(&d.AvailableDate)
		p.CoAgency.Apply(&d.CoAgency)
		p.ReferenceNumber.Apply(&d.ReferenceNumber)
	})
}

// ReplaceLocation installs loc as the whole location. A nil loc clears it.
func (s *Store) ReplaceLocation(loc *listing.LocationSelection) State {
	return s.mutate(KindDraft, "location", func(d *listing.Draft) {
		if loc == nil {
			d.Location = nil
			return
		}
		next := loc.Clone()
		geocode(&next)
		d.Location = &next
	})
}

// UpdateLocationFields merges p into the current location, or into an empty
// one when the draft has none yet.
func (s *Store) UpdateLocationFields(p listing.LocationPatch) State {
	return s.mutate(KindDraft, "location-fields", func(d *listing.Draft) {
		next := listing.EmptyLocation()
		if d.Location != nil {
			next = d.Location.Clone()
		}
		p.Apply(&next)
		geocode(&next)
		d.Location = &next
	})
}

// SelectLocation fills the location from the catalog entry named name.
func (s *Store) SelectLocation(name string) (State, error) {
	loc, ok := s.catalog.FindLocation(name)
	if !ok {
		return s.State(), fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}
	sel := loc.Selection(loc.DevelopmentName)
	return s.ReplaceLocation(&sel), nil
}

// SetPropertyType changes the property type and resets subtype and unit type
// to the first valid options.
func (s *Store) SetPropertyType(propertyType string) State {
	return s.applySelection("property-type", s.catalog.Taxonomy.WithType(propertyType))
}

// SetPropertySubType changes the subtype and resets the unit type.
func (s *Store) SetPropertySubType(subType string) State {
	return s.applySelection("property-subtype", s.catalog.Taxonomy.WithSubType(s.selection(), subType))
}

// SetPropertyUnitType sets the unit type alone.
func (s *Store) SetPropertyUnitType(unitType string) State {
	sel := s.selection()
	sel.UnitType = unitType
	return s.applySelection("property-unit-type", sel)
}

func (s *Store) selection() catalog.Selection {
	if s.draft.Location == nil {
		return catalog.Selection{}
	}
	return catalog.Selection{
		Type:     s.draft.Location.PropertyType,
		SubType:  s.draft.Location.PropertySubType,
		UnitType: s.draft.Location.PropertyUnitType,
	}
}

func (s *Store) applySelection(action string, sel catalog.Selection) State {
	return s.mutate(KindDraft, action, func(d *listing.Draft) {
		next := listing.EmptyLocation()
		if d.Location != nil {
			next = d.Location.Clone()
		}
		next.PropertyType = sel.Type
		next.PropertySubType = sel.SubType
		next.PropertyUnitType = sel.UnitType
		d.Location = &next
	})
}

func geocode(loc *listing.LocationSelection) {
	loc.Geohash = ""
	if loc.Latitude == nil || loc.Longitude == nil {
		return
	}
	lat, lng := *loc.Latitude, *loc.Longitude
	if math.IsNaN(lat) || math.IsNaN(lng) || math.Abs(lat) > 90 || math.Abs(lng) > 180 {
		return
	}
	loc.Geohash = geohash.EncodeWithPrecision(lat, lng, geohashPrecision)
}

// UpdateUnitDetails merges p into the unit details. A built-up change
// recomputes the price per sqft.
func (s *Store) UpdateUnitDetails(p listing.UnitDetailsPatch) State {
	return s.mutate(KindDraft, "unit-details", func(d *listing.Draft) {
		if p.Apply(&d.UnitDetails) {
			d.Pricing.PricePerSqft = pricePerSqft(d.Pricing.SellingPrice, d.UnitDetails.BuiltUp)
		}
	})
}

// ToggleFeature adds tag to the unit features or removes it when present.
func (s *Store) ToggleFeature(tag string) State {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return s.State()
	}
	return s.mutate(KindDraft, "feature", func(d *listing.Draft) {
		features := d.UnitDetails.Features
		if slices.Contains(features, tag) {
			features = slices.DeleteFunc(features, func(f string) bool { return f == tag })
		} else {
			features = append(features, tag)
		}
		d.UnitDetails.Features = listing.NormalizeFeatures(features)
	})
}

// UpdatePricing merges p into the pricing. A selling price change recomputes
// the price per sqft, overriding any value in p.
func (s *Store) UpdatePricing(p listing.PricingPatch) State {
	return s.mutate(KindDraft, "pricing", func(d *listing.Draft) {
		if p.Apply(&d.Pricing) {
			d.Pricing.PricePerSqft = pricePerSqft(d.Pricing.SellingPrice, d.UnitDetails.BuiltUp)
		}
	})
}

// RecalculatePricePerSqft derives the price per sqft from the current selling
// price and built-up area.
func (s *Store) RecalculatePricePerSqft() State {
	return s.mutate(KindDraft, "price-per-sqft", func(d *listing.Draft) {
		d.Pricing.PricePerSqft = pricePerSqft(d.Pricing.SellingPrice, d.UnitDetails.BuiltUp)
	})
}

// pricePerSqft is price/builtUp rounded to two decimals, or nil when either is
// missing or the area is not positive.
func pricePerSqft(price, builtUp *float64) *float64 {
	if price == nil || builtUp == nil {
		return nil
	}
	if math.IsNaN(*price) || math.IsNaN(*builtUp) || *builtUp <= 0 {
		return nil
	}
	return listing.Ptr(math.Round(*price / *builtUp * 100) / 100)
}

// UpdateNarrative sets the headline and description when present.
func (s *Store) UpdateNarrative(headline, description listing.Value[string]) State {
	return s.mutate(KindDraft, "narrative", func(d *listing.Draft) {
		headline.Apply(&d.Headline)
		description.Apply(&d.Description)
	})
}

// UpdatePlatformSettings merges p into the platform settings.
func (s *Store) UpdatePlatformSettings(p listing.PlatformPatch) State {
	return s.mutate(KindDraft, "platform", func(d *listing.Draft) {
		p.Apply(&d.PlatformSettings)
	})
}

// ApplyTemplate prefills the narrative from t and adds its photos that are not
// already in the gallery.
func (s *Store) ApplyTemplate(t catalog.Template) State {
	return s.mutate(KindDraft, "template", func(d *listing.Draft) {
		d.Headline = t.Headline
		d.Description = t.Description
		d.Media = s.editor.AddFromLibrary(d.Media, t.Photos, len(t.Photos))
	})
}
