package listing

import (
	"encoding/json"
	"slices"
	"testing"
	"time"
)

func TestNewDraftDefaults(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	d := NewDraft("draft-1", now)

	if d.AvailabilityMode != AvailabilityImmediate {
		t.Errorf("expected immediate availability, got %q", d.AvailabilityMode)
	}
	if d.Pricing.PriceType != PriceNone {
		t.Errorf("expected price type none, got %q", d.Pricing.PriceType)
	}
	if !d.PlatformSettings.PublishIProperty || d.PlatformSettings.PublishPropertyGuru {
		t.Errorf("unexpected platform defaults: %+v", d.PlatformSettings)
	}
	if d.Location != nil {
		t.Error("fresh draft should have no location")
	}
	if d.Media.CoverPhotoID != nil || len(d.Media.Photos) != 0 {
		t.Errorf("fresh draft should have empty media, got %+v", d.Media)
	}
	if !d.UpdatedAt.Equal(now) {
		t.Errorf("expected updatedAt %v, got %v", now, d.UpdatedAt)
	}
}

func TestDraftCloneIsDeep(t *testing.T) {
	d := NewDraft("draft-1", time.Now())
	d.UnitDetails.Bedrooms = Ptr(3)
	d.UnitDetails.Features = []string{"Balcony"}
	d.Pricing.SellingPrice = Ptr(1500000.0)
	loc := EmptyLocation()
	loc.Latitude = Ptr(1.33)
	d.Location = &loc
	d.Media.Photos = []MediaAsset{{ID: "a", Order: 0}}
	d.Media.CoverPhotoID = Ptr("a")

	c := d.Clone()
	*c.UnitDetails.Bedrooms = 9
	c.UnitDetails.Features[0] = "Pool"
	*c.Pricing.SellingPrice = 1
	*c.Location.Latitude = 0
	c.Media.Photos[0].ID = "b"
	*c.Media.CoverPhotoID = "b"

	if *d.UnitDetails.Bedrooms != 3 {
		t.Error("bedrooms aliased")
	}
	if d.UnitDetails.Features[0] != "Balcony" {
		t.Error("features aliased")
	}
	if *d.Pricing.SellingPrice != 1500000 {
		t.Error("selling price aliased")
	}
	if *d.Location.Latitude != 1.33 {
		t.Error("location aliased")
	}
	if d.Media.Photos[0].ID != "a" || d.Media.Cover() != "a" {
		t.Error("media aliased")
	}
}

func TestNormalizeFeatures(t *testing.T) {
	got := NormalizeFeatures([]string{"Smart lock", "Balcony", " Balcony ", "", "Maid room"})
	want := []string{"Balcony", "Maid room", "Smart lock"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := NormalizeFeatures(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestDraftJSONUsesCamelCase(t *testing.T) {
	d := NewDraft("draft-1", time.Unix(0, 0).UTC())
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "availabilityMode", "unitDetails", "pricing", "media", "platformSettings", "updatedAt"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if m["location"] != nil {
		t.Errorf("location should be null, got %v", m["location"])
	}
}

func TestPatchApply(t *testing.T) {
	t.Run("zero value leaves field untouched", func(t *testing.T) {
		u := UnitDetails{Bedrooms: Ptr(2)}
		UnitDetailsPatch{}.Apply(&u)
		if u.Bedrooms == nil || *u.Bedrooms != 2 {
			t.Errorf("expected bedrooms 2, got %v", u.Bedrooms)
		}
	})

	t.Run("Some(nil) clears nullable field", func(t *testing.T) {
		u := UnitDetails{Bedrooms: Ptr(2)}
		UnitDetailsPatch{Bedrooms: Some[*int](nil)}.Apply(&u)
		if u.Bedrooms != nil {
			t.Errorf("expected bedrooms cleared, got %v", *u.Bedrooms)
		}
	})

	t.Run("reports built-up and price changes", func(t *testing.T) {
		u := UnitDetails{}
		if !(UnitDetailsPatch{BuiltUp: Some(Ptr(1250.0))}).Apply(&u) {
			t.Error("expected builtUp change to be reported")
		}
		if (UnitDetailsPatch{Block: Some("A")}).Apply(&u) {
			t.Error("block change must not be reported as builtUp change")
		}
		p := Pricing{}
		if !(PricingPatch{SellingPrice: Some(Ptr(10.0))}).Apply(&p) {
			t.Error("expected selling price change to be reported")
		}
	})

	t.Run("features are normalized", func(t *testing.T) {
		u := UnitDetails{}
		UnitDetailsPatch{Features: Some([]string{"b", "a", "b"})}.Apply(&u)
		if !slices.Equal(u.Features, []string{"a", "b"}) {
			t.Errorf("unexpected features %v", u.Features)
		}
	})
}

func TestStepOrder(t *testing.T) {
	order := Order()
	want := []Step{StepListingType, StepLocation, StepUnitDetails, StepPrice, StepGallery, StepPreview}
	if !slices.Equal(order, want) {
		t.Fatalf("unexpected order %v", order)
	}

	order[0] = StepPreview
	if Order()[0] != StepListingType {
		t.Error("Order must return a copy")
	}

	if !StepPlatform.Known() || StepPlatform.InOrder() {
		t.Error("platform is known but outside the order")
	}
	if _, ok := ParseStep("bogus"); ok {
		t.Error("bogus step should not parse")
	}
	if StepPrice.Index() != 3 {
		t.Errorf("expected price at index 3, got %d", StepPrice.Index())
	}
	if StepGallery.Meta().Title != "Gallery" {
		t.Errorf("unexpected gallery metadata %+v", StepGallery.Meta())
	}
}

func TestInitialStatuses(t *testing.T) {
	statuses := InitialStatuses()
	for i, step := range Order() {
		want := StatusNotStarted
		if i == 0 {
			want = StatusInProgress
		}
		if statuses[step] != want {
			t.Errorf("step %s: expected %s, got %s", step, want, statuses[step])
		}
	}
	if _, ok := statuses[StepPlatform]; ok {
		t.Error("platform should not have a status entry")
	}
}
