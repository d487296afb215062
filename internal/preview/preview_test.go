package preview

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/validation"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1500000, "RM 1,500,000"},
		{1200, "RM 1,200"},
		{333.33, "RM 333.33"},
		{0, "RM 0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.in))
		})
	}
}

func TestSlug(t *testing.T) {
	d := listing.NewDraft("3f2b9c1e-aaaa-bbbb-cccc-000000000000", time.Now())

	t.Run("untitled draft", func(t *testing.T) {
		assert.Equal(t, "untitled-listing-3f2b9c1e", Slug(d))
	})

	t.Run("development name when there is no headline", func(t *testing.T) {
		d := d.Clone()
		d.Location = &listing.LocationSelection{DevelopmentName: "Skyline Residences"}
		assert.Equal(t, "skyline-residences-3f2b9c1e", Slug(d))
	})

	t.Run("headline wins", func(t *testing.T) {
		d := d.Clone()
		d.Location = &listing.LocationSelection{DevelopmentName: "Skyline Residences"}
		d.Headline = "Luxurious 3-Bedroom Condo!"
		assert.Equal(t, "luxurious-3-bedroom-condo-3f2b9c1e", Slug(d))
	})
}

func TestMarkdown(t *testing.T) {
	d := listing.NewDraft("id1", time.Now())
	d.Headline = "Corner unit with park view"
	d.ListingPurpose = listing.PurposeSale
	d.PropertyCategory = listing.CategoryResidential
	d.Location = &listing.LocationSelection{DevelopmentName: "Skyline Residences", PropertyType: "Apartment / Condo / Service Residence"}
	d.Pricing.SellingPrice = listing.Ptr(1500000.0)
	d.UnitDetails.Features = []string{"Gym", "Pool"}

	t.Run("ready draft", func(t *testing.T) {
		md := Markdown(d, validation.Report{Ready: true, Issues: validation.NewErrors()})
		assert.True(t, strings.HasPrefix(md, "# Corner unit with park view\n"))
		assert.Contains(t, md, "**For sale** · Residential · available immediately")
		assert.Contains(t, md, "**Skyline Residences**")
		assert.Contains(t, md, "- Price: RM 1,500,000")
		assert.Contains(t, md, "- Features: Gym, Pool")
		assert.Contains(t, md, "Ready to publish.")
	})

	t.Run("issues are listed in order", func(t *testing.T) {
		issues := validation.ErrorsFrom("headline", "too short", "media.photos", "Add at least 5 photos.")
		md := Markdown(d, validation.Report{Issues: issues})
		i := strings.Index(md, "- `headline`: too short")
		j := strings.Index(md, "- `media.photos`: Add at least 5 photos.")
		require.GreaterOrEqual(t, i, 0)
		assert.Greater(t, j, i)
		assert.NotContains(t, md, "Ready to publish.")
	})

	t.Run("missing location", func(t *testing.T) {
		empty := listing.NewDraft("id2", time.Now())
		md := Markdown(empty, validation.Report{Issues: validation.NewErrors()})
		assert.Contains(t, md, "# Untitled listing")
		assert.Contains(t, md, "_No development selected._")
		assert.Contains(t, md, "- Price: not set")
	})
}

func TestRender(t *testing.T) {
	out := Render("# Title\n\nSome body text.", 40)
	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Title")
	assert.Contains(t, plain, "body")
	assert.False(t, strings.HasSuffix(out, "\n"))

	t.Run("trailing blank lines are dropped", func(t *testing.T) {
		out := Render("# Title\n\n- one\n- two\n\nClosing paragraph.\n\n", 40)
		assert.False(t, strings.HasSuffix(out, "\n"))
		assert.True(t, strings.HasSuffix(strings.TrimSpace(ansi.Strip(out)), "paragraph."))
	})
}
