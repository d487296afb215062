package tui

import (
	"fmt"
	"strings"

	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/preview"
	"github.com/mark3labs/listwiz/internal/tui/theme"
	"github.com/mark3labs/listwiz/internal/validation"
	"github.com/mark3labs/listwiz/internal/wizard"
)

// renderMain builds the main panel body: the step description, a summary of
// the draft section the step edits, and the displayed field errors.
func renderMain(d *listing.Draft, v wizard.View, handles int, width int) string {
	s := theme.Current().S()
	var b strings.Builder
	b.WriteString(s.Subtitle.Render(v.Meta.Description))
	b.WriteString("\n\n")

	switch v.Step {
	case listing.StepListingType:
		listingTypeSummary(&b, d)
	case listing.StepLocation:
		locationSummary(&b, d)
	case listing.StepUnitDetails:
		unitSummary(&b, d)
	case listing.StepPrice:
		priceSummary(&b, d)
	case listing.StepGallery:
		gallerySummary(&b, d, handles)
	case listing.StepPreview:
		b.WriteString(previewBody(d, width))
	}

	if v.Errors != nil && !v.Errors.Empty() {
		b.WriteString("\n\n")
		v.Errors.Each(func(field, msg string) {
			b.WriteString(s.FieldError.Render("✗ "+field+": "+msg) + "\n")
		})
	}
	return strings.TrimRight(b.String(), "\n")
}

func row(b *strings.Builder, label, value string) {
	s := theme.Current().S()
	if value == "" {
		value = s.Muted.Render("-")
	} else {
		value = s.Value.Render(value)
	}
	b.WriteString(s.Label.Render(label) + value + "\n")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func intValue(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func floatValue(v *float64, suffix string) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g%s", *v, suffix)
}

func money(v *float64) string {
	if v == nil {
		return ""
	}
	return preview.FormatPrice(*v)
}

func listingTypeSummary(b *strings.Builder, d *listing.Draft) {
	row(b, "Category", string(d.PropertyCategory))
	row(b, "Purpose", string(d.ListingPurpose))
	row(b, "Auctioned", yesNo(d.Auctioned))
	availability := string(d.AvailabilityMode)
	if d.AvailableDate != nil {
		availability += " from " + *d.AvailableDate
	}
	row(b, "Availability", availability)
	row(b, "Co-agency", yesNo(d.CoAgency))
	row(b, "Reference", d.ReferenceNumber)
}

func locationSummary(b *strings.Builder, d *listing.Draft) {
	loc := d.Location
	if loc == nil {
		b.WriteString(theme.Current().S().Muted.Render(
			"No development selected. Try: search-locations term=<text>, then select-location name=<development>"))
		return
	}
	row(b, "Development", loc.DevelopmentName)
	row(b, "Address", loc.Address)
	coords := ""
	if loc.Latitude != nil && loc.Longitude != nil {
		coords = fmt.Sprintf("%.4f, %.4f", *loc.Latitude, *loc.Longitude)
		if loc.Geohash != "" {
			coords += " (" + loc.Geohash + ")"
		}
	}
	row(b, "Coordinates", coords)
	row(b, "Property type", loc.PropertyType)
	row(b, "Subtype", loc.PropertySubType)
	row(b, "Unit type", loc.PropertyUnitType)
	row(b, "City", strings.Trim(loc.City+", "+loc.State, ", "))
	row(b, "Postal code", loc.PostalCode)
	row(b, "Tenure", loc.Tenure)
	row(b, "Title", loc.TitleType)
	row(b, "Completion", loc.CompletionYear)
	row(b, "Bumi lot", loc.BumiLot)
}

func unitSummary(b *strings.Builder, d *listing.Draft) {
	u := d.UnitDetails
	row(b, "Bedrooms", intValue(u.Bedrooms))
	row(b, "Bathrooms", intValue(u.Bathrooms))
	row(b, "Maid rooms", fmt.Sprint(u.MaidRooms))
	row(b, "Built-up", floatValue(u.BuiltUp, " sqft"))
	row(b, "Furnishing", string(u.Furnishing))
	row(b, "Parking", fmt.Sprint(u.ParkingSpots))
	row(b, "Features", strings.Join(u.Features, ", "))
}

func priceSummary(b *strings.Builder, d *listing.Draft) {
	p := d.Pricing
	row(b, "Price type", string(p.PriceType))
	row(b, "Selling price", money(p.SellingPrice))
	row(b, "Maintenance", money(p.MaintenanceFee))
	row(b, "Per sqft", money(p.PricePerSqft))
}

func gallerySummary(b *strings.Builder, d *listing.Draft, handles int) {
	s := theme.Current().S()
	m := d.Media
	fmt.Fprintf(b, "%s\n", s.Text.Render(fmt.Sprintf("%d of %d photos", len(m.Photos), validation.MinPhotos)))
	for _, p := range m.Photos {
		marker := "  "
		if p.ID == m.Cover() {
			marker = s.StatusInProgress.Render("★ ")
		}
		fmt.Fprintf(b, "%s%d. %s %s\n", marker, p.Order+1, s.Value.Render(p.FileName), s.Muted.Render(p.ID))
	}
	b.WriteString("\n")
	row(b, "Project photos", fmt.Sprint(len(m.ProjectPhotos)))
	if handles > 0 {
		row(b, "Uploads held", fmt.Sprint(handles))
	}
}

func previewBody(d *listing.Draft, width int) string {
	report, err := validation.Readiness(d)
	if err != nil {
		return theme.Current().S().FieldError.Render(err.Error())
	}
	return preview.Render(preview.Markdown(d, report), width)
}
