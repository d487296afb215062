package command

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/session"
	"github.com/mark3labs/listwiz/internal/wizard"
)

func newDispatcher(t *testing.T, strict bool) *Dispatcher {
	t.Helper()
	n := 0
	store := session.New(session.Options{
		StrictValidation: strict,
		NewID: func() string {
			n++
			return fmt.Sprintf("id%d", n)
		},
	})
	ctl := wizard.New(store)
	t.Cleanup(ctl.Close)
	return NewDispatcher(ctl, 0)
}

func run(t *testing.T, d *Dispatcher, line string) Result {
	t.Helper()
	res, err := d.DispatchLine(line)
	require.NoError(t, err, line)
	return res
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantName string
		wantArgs map[string]any
	}{
		{"bare command", "next", "next", map[string]any{}},
		{"integer", "pricing sellingPrice=1500000", "pricing", map[string]any{"sellingPrice": 1500000}},
		{"float and bool", "unit-details builtUp=1250.5 hideLocationDetails=true", "unit-details",
			map[string]any{"builtUp": 1250.5, "hideLocationDetails": true}},
		{"null", "listing-type availableDate=null", "listing-type", map[string]any{"availableDate": nil}},
		{"quoted with spaces", `narrative headline="Corner unit, park view"`, "narrative",
			map[string]any{"headline": "Corner unit, park view"}},
		{"single quotes", `select-location name='Skyline Residences'`, "select-location",
			map[string]any{"name": "Skyline Residences"}},
		{"flow list", "unit-details features=[Pool, Gym]", "unit-details",
			map[string]any{"features": []any{"Pool", "Gym"}}},
		{"dates stay text", "listing-type availableDate=2025-06-01", "listing-type",
			map[string]any{"availableDate": "2025-06-01"}},
		{"empty value", "location address=", "location", map[string]any{"address": ""}},
		{"extra whitespace", "  goto   step=price  ", "goto", map[string]any{"step": "price"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, raw, err := ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, raw)
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"blank", "   "},
		{"missing equals", "goto price"},
		{"unterminated quote", `narrative headline="oops`},
		{"unbalanced bracket", "unit-details features=[Pool"},
		{"duplicate key", "goto step=price step=gallery"},
		{"argument first", "step=price"},
		{"nested object", "location x={a: 1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseLine(tt.line)
			assert.Error(t, err)
		})
	}
	_, _, err := ParseLine("")
	assert.ErrorIs(t, err, ErrEmptyLine)
}

func TestDecodePatches(t *testing.T) {
	t.Run("numbers arrive as int or float64", func(t *testing.T) {
		p, err := DecodeUnitDetails(map[string]any{"bedrooms": 3, "bathrooms": 2.0, "builtUp": 1250})
		require.NoError(t, err)
		assert.Equal(t, 3, *p.Bedrooms.V)
		assert.Equal(t, 2, *p.Bathrooms.V)
		assert.Equal(t, 1250.0, *p.BuiltUp.V)
		assert.False(t, p.Furnishing.Set)
	})

	t.Run("null clears nullable fields", func(t *testing.T) {
		p, err := DecodePricing(map[string]any{"maintenanceFee": nil})
		require.NoError(t, err)
		assert.True(t, p.MaintenanceFee.Set)
		assert.Nil(t, p.MaintenanceFee.V)
	})

	t.Run("null is rejected for plain fields", func(t *testing.T) {
		_, err := DecodeListingType(map[string]any{"coAgency": nil})
		assert.Error(t, err)
	})

	t.Run("unknown keys are errors", func(t *testing.T) {
		_, err := DecodePlatform(map[string]any{"boost": true, "sparkle": true})
		assert.ErrorContains(t, err, `unknown argument "sparkle"`)
	})

	t.Run("fractional counts are rejected", func(t *testing.T) {
		_, err := DecodeUnitDetails(map[string]any{"bedrooms": 2.5})
		assert.Error(t, err)
	})

	t.Run("features accept a comma list", func(t *testing.T) {
		p, err := DecodeUnitDetails(map[string]any{"features": "Pool, Gym"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Pool", "Gym"}, p.Features.V)
	})

	t.Run("every advertised field decodes", func(t *testing.T) {
		for _, cmd := range All() {
			if !cmd.IsPatch() {
				continue
			}
			for _, f := range cmd.Fields {
				raw := map[string]any{f.Name: sampleValue(f)}
				_, err := decoderFor(cmd.Name)(raw)
				assert.NoError(t, err, "%s.%s", cmd.Name, f.Name)
			}
		}
	})
}

func decoderFor(name string) func(map[string]any) (any, error) {
	wrap := func(p any, err error) (any, error) { return p, err }
	switch name {
	case "listing-type":
		return func(raw map[string]any) (any, error) { return wrap(DecodeListingType(raw)) }
	case "location":
		return func(raw map[string]any) (any, error) { return wrap(DecodeLocation(raw)) }
	case "unit-details":
		return func(raw map[string]any) (any, error) { return wrap(DecodeUnitDetails(raw)) }
	case "pricing":
		return func(raw map[string]any) (any, error) { return wrap(DecodePricing(raw)) }
	default:
		return func(raw map[string]any) (any, error) { return wrap(DecodePlatform(raw)) }
	}
}

func sampleValue(p Param) any {
	switch p.Kind {
	case KindBoolean:
		return true
	case KindInteger:
		return 1
	case KindNumber:
		return 1.5
	case KindArray:
		return []any{"x"}
	default:
		if len(p.Enum) > 0 {
			return p.Enum[0]
		}
		return "x"
	}
}

func TestScheduledDateFromCommandLine(t *testing.T) {
	d := newDispatcher(t, true)

	run(t, d, "listing-type propertyCategory=residential listingPurpose=sale availabilityMode=scheduled availableDate=2025-06-01")
	draft := d.Controller().Store().Draft()
	require.NotNil(t, draft.AvailableDate)
	assert.Equal(t, "2025-06-01", *draft.AvailableDate)

	res := run(t, d, "next")
	assert.Equal(t, listing.StepLocation, res.View.Step)
}

func TestIntegerArgumentRange(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want int
		ok   bool
	}{
		{"whole float", 3.0, 3, true},
		{"fraction", 2.5, 0, false},
		{"beyond int range", 1e19, 0, false},
		{"below int range", -1e19, 0, false},
		{"uint64 overflow", uint64(1) << 63, 0, false},
		{"text", "3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := asInt(tt.v)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n)
		})
	}

	d := newDispatcher(t, false)
	_, err := d.DispatchLine("unit-details bedrooms=1e19")
	assert.Error(t, err)
}

func TestDispatchUnknownCommand(t *testing.T) {
	d := newDispatcher(t, true)
	_, err := d.Dispatch("fly", nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRejectedCommandsChangeNothing(t *testing.T) {
	d := newDispatcher(t, true)
	before := d.Controller().Store().State()

	for _, line := range []string{
		"pricing sellingPrice=lots",
		"unit-details bedrooms=3 colour=blue",
		"goto step=nowhere",
		"bypass",
		"move-photo id=x direction=up",
		"next extra=1",
	} {
		_, err := d.DispatchLine(line)
		assert.Error(t, err, line)
	}
	assert.Equal(t, before, d.Controller().Store().State())
}

func TestStrictWalkthrough(t *testing.T) {
	d := newDispatcher(t, true)

	res := run(t, d, "next")
	assert.Equal(t, "Listing Type is blocked: Select a property category to proceed.", res.Message)
	assert.Equal(t, listing.StatusBlocked, res.View.Statuses[listing.StepListingType])

	run(t, d, "listing-type propertyCategory=residential listingPurpose=sale")
	res = run(t, d, "next")
	assert.Equal(t, "Listing Type complete. Now on Location.", res.Message)

	res = run(t, d, "search-locations term=road")
	assert.Contains(t, res.Message, "Skyline Residences")

	run(t, d, `select-location name="Skyline Residences"`)
	run(t, d, "next")

	run(t, d, "unit-details bedrooms=3 bathrooms=2 builtUp=1250 furnishing=fully features=[Pool, Gym]")
	res = run(t, d, "feature tag=Balcony")
	assert.Equal(t, "Features: Balcony, Gym, Pool", res.Message)
	run(t, d, "next")

	res = run(t, d, "pricing sellingPrice=1500000")
	assert.Equal(t, "Pricing updated. RM 1,200 per sqft.", res.Message)
	run(t, d, "next")

	res = run(t, d, "add-samples count=4")
	assert.Equal(t, "Added 4 sample photos. 4 in gallery.", res.Message)
	res = run(t, d, "next")
	assert.Contains(t, res.Message, "Gallery is blocked")
	assert.True(t, res.View.Errors.Has("photos"))

	res = run(t, d, "add-samples")
	assert.Equal(t, "Added 5 sample photos. 9 in gallery.", res.Message)
	assert.True(t, res.View.Errors.Empty(), "persisted errors clear once the step validates")
	res = run(t, d, "next")
	assert.Equal(t, listing.StepPreview, res.View.Step)

	res = run(t, d, "next")
	assert.Equal(t, "Already on the last step.", res.Message)

	res = run(t, d, "preview")
	assert.Contains(t, res.Message, "## Readiness")
	assert.Contains(t, res.Message, "RM 1,500,000")
}

func TestNavigationCommands(t *testing.T) {
	d := newDispatcher(t, false)
	res := run(t, d, "back")
	assert.Equal(t, "Already on the first step.", res.Message)

	res = run(t, d, "goto step=gallery")
	assert.Equal(t, "Gallery is not available yet.", res.Message)

	run(t, d, "next")
	res = run(t, d, "goto step=listingType")
	assert.Equal(t, "Opened Listing Type.", res.Message)

	res = run(t, d, "validate step=price")
	assert.Contains(t, res.Message, "Price is invalid")
	assert.Contains(t, res.Message, "sellingPrice")

	res = run(t, d, "status")
	assert.Contains(t, res.Message, "Step 1/6: Listing Type")
	assert.Contains(t, res.Message, "validation bypassed")

	res = run(t, d, "bypass enabled=false")
	assert.Equal(t, "Validation bypass off.", res.Message)
	assert.Equal(t, listing.StatusBlocked, res.View.Statuses[listing.StepListingType])
}

func TestPropertyTypeCommands(t *testing.T) {
	d := newDispatcher(t, true)
	res := run(t, d, "property-type value=Commercial")
	assert.Equal(t, "Property type: Commercial / Office / Intermediate.", res.Message)
	res = run(t, d, `property-subtype value="Shop House"`)
	assert.Equal(t, "Property type: Commercial / Shop House / Intermediate.", res.Message)
	res = run(t, d, `unit-type value="Corner Lot"`)
	assert.Equal(t, "Property type: Commercial / Shop House / Corner Lot.", res.Message)
}

func TestGalleryCommands(t *testing.T) {
	d := newDispatcher(t, true)
	run(t, d, "add-samples count=3")
	photos := d.Controller().Store().Draft().Media.Photos
	require.Len(t, photos, 3)

	res := run(t, d, "move-photo id="+photos[0].ID+" direction=left")
	assert.Contains(t, res.Message, "position 1")
	res = run(t, d, "move-photo id="+photos[0].ID+" direction=right")
	assert.Contains(t, res.Message, "position 2")

	res = run(t, d, "cover-photo id="+photos[2].ID)
	assert.Equal(t, "Cover photo set.", res.Message)
	res = run(t, d, "cover-photo id=missing")
	assert.Equal(t, "No photo with id missing.", res.Message)

	res = run(t, d, "remove-photo id="+photos[2].ID)
	assert.Equal(t, "2 photos in gallery.", res.Message)

	res = run(t, d, "project-photos")
	assert.Equal(t, "3 project photos selected.", res.Message)
	res = run(t, d, "project-photo id=project-photo-1 selected=false")
	assert.Equal(t, "2 project photos selected.", res.Message)
	res = run(t, d, "project-photos selected=false")
	assert.Equal(t, "0 project photos selected.", res.Message)
}

func TestUploadCommand(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "living.png")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00"), 0o644))
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o644))

	d := newDispatcher(t, true)
	_, err := d.DispatchLine("upload paths=" + txt)
	assert.Error(t, err)
	assert.Empty(t, d.Controller().Store().OutstandingHandles())

	res := run(t, d, "upload paths="+png)
	assert.Equal(t, "Uploaded 1 photos. 1 in gallery.", res.Message)
	assert.Len(t, d.Controller().Store().OutstandingHandles(), 1)
}

func TestTemplateAndReset(t *testing.T) {
	d := newDispatcher(t, true)
	res := run(t, d, "template")
	assert.Equal(t, "Template applied. 5 photos in gallery.", res.Message)

	run(t, d, `narrative headline="Short"`)
	assert.Equal(t, "Short", d.Controller().Store().Draft().Headline)

	res = run(t, d, "reset")
	assert.Equal(t, "Started a new draft.", res.Message)
	assert.Empty(t, d.Controller().Store().Draft().Media.Photos)
}
