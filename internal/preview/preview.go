// Package preview renders a listing draft for review: a markdown summary, a
// URL slug and terminal output.
package preview

import (
	"fmt"
	"strings"

	"charm.land/glamour/v2"
	"charm.land/lipgloss/v2"
	"github.com/gosimple/slug"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/validation"
)

// Currency prefixes every price figure.
const Currency = "RM"

const maxRenderWidth = 120

var printer = message.NewPrinter(language.English)

// FormatPrice groups v by thousands, e.g. "RM 1,500,000". Fractions are kept
// to two places only when present.
func FormatPrice(v float64) string {
	if v == float64(int64(v)) {
		return printer.Sprintf("%s %d", Currency, int64(v))
	}
	return printer.Sprintf("%s %.2f", Currency, v)
}

// Slug builds a stable URL slug from the headline, falling back to the
// development name, suffixed with the start of the draft id.
func Slug(d *listing.Draft) string {
	base := strings.TrimSpace(d.Headline)
	if base == "" && d.Location != nil {
		base = strings.TrimSpace(d.Location.DevelopmentName)
	}
	s := slug.Make(base)
	if s == "" {
		s = "untitled-listing"
	}
	id := slug.Make(d.ID)
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		return s
	}
	return s + "-" + id
}

// Markdown summarises d with its readiness report.
func Markdown(d *listing.Draft, report validation.Report) string {
	var b strings.Builder

	title := strings.TrimSpace(d.Headline)
	if title == "" {
		title = "Untitled listing"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "`%s`\n\n", Slug(d))
	if line := summaryLine(d); line != "" {
		fmt.Fprintf(&b, "%s\n\n", line)
	}
	if desc := strings.TrimSpace(d.Description); desc != "" {
		fmt.Fprintf(&b, "%s\n\n", desc)
	}

	b.WriteString("## Location\n\n")
	if loc := d.Location; loc == nil || loc.DevelopmentName == "" {
		b.WriteString("_No development selected._\n\n")
	} else {
		fmt.Fprintf(&b, "**%s**", loc.DevelopmentName)
		if loc.Address != "" {
			fmt.Fprintf(&b, ", %s", loc.Address)
		}
		b.WriteString("\n\n")
		bullet(&b, "Type", joinNonEmpty(" / ", loc.PropertyType, loc.PropertySubType, loc.PropertyUnitType))
		bullet(&b, "Tenure", loc.Tenure)
		bullet(&b, "Completion", loc.CompletionYear)
		bullet(&b, "Geohash", loc.Geohash)
		b.WriteString("\n")
	}

	b.WriteString("## Unit\n\n")
	u := d.UnitDetails
	bullet(&b, "Bedrooms", intText(u.Bedrooms))
	bullet(&b, "Bathrooms", intText(u.Bathrooms))
	if u.BuiltUp != nil {
		bullet(&b, "Built-up", printer.Sprintf("%.0f sqft", *u.BuiltUp))
	}
	bullet(&b, "Furnishing", string(u.Furnishing))
	bullet(&b, "Features", strings.Join(u.Features, ", "))
	b.WriteString("\n")

	b.WriteString("## Pricing\n\n")
	p := d.Pricing
	if p.SellingPrice != nil {
		bullet(&b, "Price", FormatPrice(*p.SellingPrice))
	} else {
		bullet(&b, "Price", "not set")
	}
	bullet(&b, "Price type", string(p.PriceType))
	if p.PricePerSqft != nil {
		bullet(&b, "Per sqft", FormatPrice(*p.PricePerSqft))
	}
	if p.MaintenanceFee != nil {
		bullet(&b, "Maintenance", FormatPrice(*p.MaintenanceFee)+" / month")
	}
	b.WriteString("\n")

	b.WriteString("## Gallery\n\n")
	fmt.Fprintf(&b, "%d photos, %d project photos", len(d.Media.Photos), len(d.Media.ProjectPhotos))
	if cover, ok := d.Media.Photo(d.Media.Cover()); ok {
		fmt.Fprintf(&b, ", cover: %s", cover.FileName)
	}
	b.WriteString("\n\n")

	b.WriteString("## Readiness\n\n")
	if report.Ready {
		b.WriteString("Ready to publish.\n")
	} else {
		report.Issues.Each(func(field, msg string) {
			fmt.Fprintf(&b, "- `%s`: %s\n", field, msg)
		})
	}
	return b.String()
}

func summaryLine(d *listing.Draft) string {
	var parts []string
	switch d.ListingPurpose {
	case listing.PurposeSale:
		parts = append(parts, "**For sale**")
	case listing.PurposeRent:
		parts = append(parts, "**For rent**")
	}
	if d.PropertyCategory != "" {
		parts = append(parts, strings.ToUpper(string(d.PropertyCategory[:1]))+string(d.PropertyCategory[1:]))
	}
	switch d.AvailabilityMode {
	case listing.AvailabilityImmediate:
		parts = append(parts, "available immediately")
	case listing.AvailabilityScheduled:
		if d.AvailableDate != nil && *d.AvailableDate != "" {
			parts = append(parts, "available from "+*d.AvailableDate)
		}
	}
	if d.Auctioned {
		parts = append(parts, "auction")
	}
	return strings.Join(parts, " · ")
}

func bullet(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

func intText(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// Render formats markdown for a terminal of the given width. It falls back to
// plain wrapped text if glamour fails.
func Render(md string, width int) string {
	if width <= 0 || width > maxRenderWidth {
		width = maxRenderWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return wrap(md, width)
	}
	out, err := r.Render(md)
	if err != nil {
		return wrap(md, width)
	}
	return strings.TrimRight(out, " \n")
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
