package command

import (
	"fmt"
	"strings"

	"github.com/mark3labs/listwiz/internal/catalog"
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/media"
	"github.com/mark3labs/listwiz/internal/preview"
	"github.com/mark3labs/listwiz/internal/validation"
)

var stepNames = func() []string {
	var names []string
	for _, s := range listing.Order() {
		names = append(names, string(s))
	}
	return names
}()

var registry = []Command{
	{Name: "status", Description: "Show the current step and its errors", handler: runStatus},
	{Name: "next", Description: "Complete the current step and advance", handler: runNext},
	{Name: "back", Description: "Return to the previous step", handler: runBack},
	{
		Name:        "goto",
		Description: "Open a complete, in-progress or blocked step",
		Params:      []Param{{Name: "step", Kind: KindString, Required: true, Enum: stepNames}},
		handler:     runGoto,
	},
	{
		Name:        "validate",
		Description: "Validate a step without changing anything",
		Params:      []Param{{Name: "step", Kind: KindString, Description: "Defaults to the current step", Enum: stepNames}},
		handler:     runValidate,
	},
	{
		Name:        "bypass",
		Description: "Turn validation bypass on or off",
		Params:      []Param{{Name: "enabled", Kind: KindBoolean, Required: true}},
		handler:     runBypass,
	},
	{Name: "listing-type", Description: "Update category, purpose and availability", Fields: listingTypeFields, handler: runListingType},
	{Name: "location", Description: "Update location fields", Fields: locationFields, handler: runLocation},
	{
		Name:        "search-locations",
		Description: "Search the development catalog",
		Params:      []Param{{Name: "term", Kind: KindString}},
		handler:     runSearchLocations,
	},
	{
		Name:        "select-location",
		Description: "Fill the location from a catalog development",
		Params:      []Param{{Name: "name", Kind: KindString, Required: true, Description: "Development name"}},
		handler:     runSelectLocation,
	},
	{
		Name:        "property-type",
		Description: "Set the property type and reset subtype and unit type",
		Params:      []Param{{Name: "value", Kind: KindString, Required: true}},
		handler:     runPropertyType,
	},
	{
		Name:        "property-subtype",
		Description: "Set the property subtype and reset the unit type",
		Params:      []Param{{Name: "value", Kind: KindString, Required: true}},
		handler:     runPropertySubType,
	},
	{
		Name:        "unit-type",
		Description: "Set the property unit type",
		Params:      []Param{{Name: "value", Kind: KindString, Required: true}},
		handler:     runUnitType,
	},
	{Name: "unit-details", Description: "Update rooms, size and furnishing", Fields: unitDetailsFields, handler: runUnitDetails},
	{
		Name:        "feature",
		Description: "Toggle a unit feature tag",
		Params:      []Param{{Name: "tag", Kind: KindString, Required: true}},
		handler:     runFeature,
	},
	{Name: "pricing", Description: "Update pricing", Fields: pricingFields, handler: runPricing},
	{
		Name:        "narrative",
		Description: "Set the headline and description",
		Params: []Param{
			{Name: "headline", Kind: KindString},
			{Name: "description", Kind: KindString},
		},
		handler: runNarrative,
	},
	{Name: "template", Description: "Prefill narrative and photos from the premium residence template", handler: runTemplate},
	{Name: "platform", Description: "Update publishing channels and schedule", Fields: platformFields, handler: runPlatform},
	{
		Name:        "add-samples",
		Description: "Add photos from the sample library",
		Params:      []Param{{Name: "count", Kind: KindInteger}},
		handler:     runAddSamples,
	},
	{
		Name:        "upload",
		Description: "Add local image files to the gallery",
		Params:      []Param{{Name: "paths", Kind: KindArray, Required: true, Description: "Image file paths"}},
		handler:     runUpload,
	},
	{
		Name:        "remove-photo",
		Description: "Remove a gallery photo",
		Params:      []Param{{Name: "id", Kind: KindString, Required: true}},
		handler:     runRemovePhoto,
	},
	{
		Name:        "move-photo",
		Description: "Move a gallery photo one position",
		Params: []Param{
			{Name: "id", Kind: KindString, Required: true},
			{Name: "direction", Kind: KindString, Required: true, Enum: []string{string(media.Left), string(media.Right)}},
		},
		handler: runMovePhoto,
	},
	{
		Name:        "cover-photo",
		Description: "Make a gallery photo the cover",
		Params:      []Param{{Name: "id", Kind: KindString, Required: true}},
		handler:     runCoverPhoto,
	},
	{
		Name:        "project-photo",
		Description: "Select or deselect one project photo",
		Params: []Param{
			{Name: "id", Kind: KindString, Required: true, Description: "Project library id"},
			{Name: "selected", Kind: KindBoolean, Description: "Defaults to true"},
		},
		handler: runProjectPhoto,
	},
	{
		Name:        "project-photos",
		Description: "Select or clear every project photo",
		Params:      []Param{{Name: "selected", Kind: KindBoolean, Description: "Defaults to true"}},
		handler:     runProjectPhotos,
	},
	{Name: "preview", Description: "Summarise the draft and its publish readiness", handler: runPreview},
	{Name: "reset", Description: "Discard the draft and start over", handler: runReset},
}

func runStatus(d *Dispatcher, a *args) (string, error) {
	if err := a.err(); err != nil {
		return "", err
	}
	v := d.ctl.View()
	msg := fmt.Sprintf("Step %d/%d: %s (%s)", v.Index+1, len(v.Order), v.Meta.Title, v.Statuses[v.Step])
	if v.Bypass {
		msg += ", validation bypassed"
	}
	if v.Banner != "" {
		msg += "\n" + v.Banner
	}
	return msg, nil
}

func runNext(d *Dispatcher, a *args) (string, error) {
	if err := a.err(); err != nil {
		return "", err
	}
	from := d.ctl.Store().CurrentStep()
	if d.ctl.Next() {
		to := d.ctl.Store().CurrentStep()
		return fmt.Sprintf("%s complete. Now on %s.", from.Meta().Title, to.Meta().Title), nil
	}
	v := d.ctl.View()
	if v.IsLast {
		return "Already on the last step.", nil
	}
	return fmt.Sprintf("%s is blocked: %s", from.Meta().Title, v.Banner), nil
}

func runBack(d *Dispatcher, a *args) (string, error) {
	if err := a.err(); err != nil {
		return "", err
	}
	if !d.ctl.Back() {
		return "Already on the first step.", nil
	}
	return "Back to " + d.ctl.Store().CurrentStep().Meta().Title + ".", nil
}

func stepArg(a *args, key string, required bool) (listing.Step, bool) {
	var name string
	if required {
		name = a.requireText(key)
	} else if s, ok := a.text(key); ok {
		name = s
	}
	if name == "" {
		return "", false
	}
	step, ok := listing.ParseStep(name)
	if !ok {
		a.failf("%s: unknown step %q", key, name)
		return "", false
	}
	return step, true
}

func runGoto(d *Dispatcher, a *args) (string, error) {
	step, _ := stepArg(a, "step", true)
	if err := a.err(); err != nil {
		return "", err
	}
	if !d.ctl.Navigate(step) {
		return fmt.Sprintf("%s is not available yet.", step.Meta().Title), nil
	}
	return "Opened " + step.Meta().Title + ".", nil
}

func runValidate(d *Dispatcher, a *args) (string, error) {
	step, ok := stepArg(a, "step", false)
	if err := a.err(); err != nil {
		return "", err
	}
	if !ok {
		step = d.ctl.Store().CurrentStep()
	}
	res := d.ctl.Store().ValidateStep(step)
	return formatResult(step, res), nil
}

func formatResult(step listing.Step, res validation.Result) string {
	var b strings.Builder
	status := "valid"
	if !res.Valid {
		status = "invalid"
	}
	fmt.Fprintf(&b, "%s is %s: %s", step.Meta().Title, status, res.Message)
	res.Errors.Each(func(field, msg string) {
		fmt.Fprintf(&b, "\n  %s: %s", field, msg)
	})
	return b.String()
}

func runBypass(d *Dispatcher, a *args) (string, error) {
	a.require("enabled")
	enabled, _ := a.boolean("enabled")
	if err := a.err(); err != nil {
		return "", err
	}
	d.ctl.SetValidationBypass(enabled)
	if enabled {
		return "Validation bypass on.", nil
	}
	return "Validation bypass off.", nil
}

func runListingType(d *Dispatcher, a *args) (string, error) {
	p, err := DecodeListingType(a.raw)
	if err != nil {
		return "", err
	}
	d.ctl.Store().UpdateListingType(p)
	return "Listing type updated.", nil
}

func runLocation(d *Dispatcher, a *args) (string, error) {
	p, err := DecodeLocation(a.raw)
	if err != nil {
		return "", err
	}
	d.ctl.Store().UpdateLocationFields(p)
	return "Location updated.", nil
}

func runSearchLocations(d *Dispatcher, a *args) (string, error) {
	term, _ := a.text("term")
	if err := a.err(); err != nil {
		return "", err
	}
	found := d.ctl.Store().Catalog().SearchLocations(term)
	if len(found) == 0 {
		return fmt.Sprintf("No developments match %q.", term), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d developments:", len(found))
	for _, loc := range found {
		fmt.Fprintf(&b, "\n  %s (%s)", loc.DevelopmentName, loc.Address)
	}
	return b.String(), nil
}

func runSelectLocation(d *Dispatcher, a *args) (string, error) {
	name := a.requireText("name")
	if err := a.err(); err != nil {
		return "", err
	}
	st, err := d.ctl.Store().SelectLocation(name)
	if err != nil {
		return "", err
	}
	return "Selected " + st.Draft.Location.DevelopmentName + ".", nil
}

func runPropertyType(d *Dispatcher, a *args) (string, error) {
	value := a.requireText("value")
	if err := a.err(); err != nil {
		return "", err
	}
	st := d.ctl.Store().SetPropertyType(value)
	return describeSelection(st.Draft.Location), nil
}

func runPropertySubType(d *Dispatcher, a *args) (string, error) {
	value := a.requireText("value")
	if err := a.err(); err != nil {
		return "", err
	}
	st := d.ctl.Store().SetPropertySubType(value)
	return describeSelection(st.Draft.Location), nil
}

func runUnitType(d *Dispatcher, a *args) (string, error) {
	value := a.requireText("value")
	if err := a.err(); err != nil {
		return "", err
	}
	st := d.ctl.Store().SetPropertyUnitType(value)
	return describeSelection(st.Draft.Location), nil
}

func describeSelection(loc *listing.LocationSelection) string {
	if loc == nil {
		return "Property type cleared."
	}
	return fmt.Sprintf("Property type: %s / %s / %s.", loc.PropertyType, loc.PropertySubType, loc.PropertyUnitType)
}

func runUnitDetails(d *Dispatcher, a *args) (string, error) {
	p, err := DecodeUnitDetails(a.raw)
	if err != nil {
		return "", err
	}
	d.ctl.Store().UpdateUnitDetails(p)
	return "Unit details updated.", nil
}

func runFeature(d *Dispatcher, a *args) (string, error) {
	tag := a.requireText("tag")
	if err := a.err(); err != nil {
		return "", err
	}
	st := d.ctl.Store().ToggleFeature(tag)
	return "Features: " + strings.Join(st.Draft.UnitDetails.Features, ", "), nil
}

func runPricing(d *Dispatcher, a *args) (string, error) {
	p, err := DecodePricing(a.raw)
	if err != nil {
		return "", err
	}
	st := d.ctl.Store().UpdatePricing(p)
	if pps := st.Draft.Pricing.PricePerSqft; pps != nil {
		return "Pricing updated. " + preview.FormatPrice(*pps) + " per sqft.", nil
	}
	return "Pricing updated.", nil
}

func runNarrative(d *Dispatcher, a *args) (string, error) {
	var headline, description listing.Value[string]
	setText(a, "headline", &headline)
	setText(a, "description", &description)
	if err := a.err(); err != nil {
		return "", err
	}
	d.ctl.Store().UpdateNarrative(headline, description)
	return "Narrative updated.", nil
}

func runTemplate(d *Dispatcher, a *args) (string, error) {
	if err := a.err(); err != nil {
		return "", err
	}
	st := d.ctl.Store().ApplyTemplate(catalog.PremiumResidence())
	return fmt.Sprintf("Template applied. %d photos in gallery.", len(st.Draft.Media.Photos)), nil
}

func runPlatform(d *Dispatcher, a *args) (string, error) {
	p, err := DecodePlatform(a.raw)
	if err != nil {
		return "", err
	}
	d.ctl.Store().UpdatePlatformSettings(p)
	return "Platform settings updated.", nil
}

func runAddSamples(d *Dispatcher, a *args) (string, error) {
	count, ok := a.integer("count")
	if err := a.err(); err != nil {
		return "", err
	}
	if !ok {
		count = d.sampleBatch
	}
	before := len(d.ctl.Store().Draft().Media.Photos)
	st := d.ctl.Store().AddSamplePhotos(count)
	added := len(st.Draft.Media.Photos) - before
	return fmt.Sprintf("Added %d sample photos. %d in gallery.", added, len(st.Draft.Media.Photos)), nil
}

func runUpload(d *Dispatcher, a *args) (string, error) {
	a.require("paths")
	paths, _ := a.list("paths")
	if err := a.err(); err != nil {
		return "", err
	}
	uploads := make([]media.Upload, 0, len(paths))
	for _, path := range paths {
		u, err := media.InspectFile(path)
		if err != nil {
			return "", err
		}
		uploads = append(uploads, u)
	}
	st := d.ctl.Store().UploadPhotos(uploads)
	return fmt.Sprintf("Uploaded %d photos. %d in gallery.", len(uploads), len(st.Draft.Media.Photos)), nil
}

func runRemovePhoto(d *Dispatcher, a *args) (string, error) {
	id := a.requireText("id")
	if err := a.err(); err != nil {
		return "", err
	}
	st := d.ctl.Store().RemovePhoto(id)
	return fmt.Sprintf("%d photos in gallery.", len(st.Draft.Media.Photos)), nil
}

func runMovePhoto(d *Dispatcher, a *args) (string, error) {
	id := a.requireText("id")
	dir := media.Direction(a.requireText("direction"))
	if dir != "" && dir != media.Left && dir != media.Right {
		a.failf("direction: expected left or right, got %q", dir)
	}
	if err := a.err(); err != nil {
		return "", err
	}
	st := d.ctl.Store().MovePhoto(id, dir)
	if p, ok := st.Draft.Media.Photo(id); ok {
		return fmt.Sprintf("%s is at position %d.", p.FileName, p.Order+1), nil
	}
	return "No photo with id " + id + ".", nil
}

func runCoverPhoto(d *Dispatcher, a *args) (string, error) {
	id := a.requireText("id")
	if err := a.err(); err != nil {
		return "", err
	}
	st := d.ctl.Store().SetCoverPhoto(id)
	if st.Draft.Media.Cover() != id {
		return "No photo with id " + id + ".", nil
	}
	return "Cover photo set.", nil
}

func runProjectPhoto(d *Dispatcher, a *args) (string, error) {
	id := a.requireText("id")
	selected, ok := a.boolean("selected")
	if !ok {
		selected = true
	}
	if err := a.err(); err != nil {
		return "", err
	}
	st := d.ctl.Store().ToggleProjectPhoto(id, selected)
	return fmt.Sprintf("%d project photos selected.", len(st.Draft.Media.ProjectPhotos)), nil
}

func runProjectPhotos(d *Dispatcher, a *args) (string, error) {
	selected, ok := a.boolean("selected")
	if !ok {
		selected = true
	}
	if err := a.err(); err != nil {
		return "", err
	}
	st := d.ctl.Store().SelectAllProjectPhotos(selected)
	return fmt.Sprintf("%d project photos selected.", len(st.Draft.Media.ProjectPhotos)), nil
}

func runPreview(d *Dispatcher, a *args) (string, error) {
	if err := a.err(); err != nil {
		return "", err
	}
	draft := d.ctl.Store().Draft()
	report, err := validation.Readiness(draft)
	if err != nil {
		return "", err
	}
	return preview.Markdown(draft, report), nil
}

func runReset(d *Dispatcher, a *args) (string, error) {
	if err := a.err(); err != nil {
		return "", err
	}
	d.ctl.Store().Reset()
	return "Started a new draft.", nil
}
