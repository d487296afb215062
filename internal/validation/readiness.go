package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mark3labs/listwiz/internal/listing"
)

//go:embed schema/listing.json
var listingSchemaJSON []byte

const listingSchemaURL = "listing.json"

var compileListingSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(listingSchemaURL, bytes.NewReader(listingSchemaJSON)); err != nil {
		return nil, fmt.Errorf("adding listing schema: %w", err)
	}
	schema, err := compiler.Compile(listingSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling listing schema: %w", err)
	}
	return schema, nil
})

// Report is the publish readiness of a whole draft. Issues are keyed by
// dotted field path, e.g. "media.photos".
type Report struct {
	Ready  bool    `json:"ready"`
	Issues *Errors `json:"issues"`
}

// readinessMessages replaces schema wording for the fields a user fixes most.
// The longest matching path prefix wins.
var readinessMessages = map[string]string{
	"propertyCategory":               "Select a property category.",
	"listingPurpose":                 "Select whether the listing is for sale or rent.",
	"referenceNumber":                "Reference number must be 250 characters or fewer.",
	"location":                       "Choose a development and property type.",
	"unitDetails.bedrooms":           "Enter the number of bedrooms.",
	"unitDetails.bathrooms":          "Enter the number of bathrooms.",
	"unitDetails.builtUp":            "Provide the built-up size in sqft.",
	"unitDetails.furnishing":         "Select a furnishing option.",
	"pricing.sellingPrice":           "Provide the selling price.",
	"headline":                       "Headline must be between 10 and 70 characters.",
	"description":                    "Description must be between 20 and 2000 characters.",
	"media.photos":                   "Add at least 5 photos.",
	"platformSettings.scheduledDate": "Provide a publish date when scheduling.",
}

// Readiness checks the complete draft against the publishable listing schema
// and the cover photo rule. It is informational and never blocks navigation.
func Readiness(d *listing.Draft) (Report, error) {
	schema, err := compileListingSchema()
	if err != nil {
		return Report{}, err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return Report{}, fmt.Errorf("encoding draft: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Report{}, fmt.Errorf("decoding draft: %w", err)
	}

	issues := NewErrors()
	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return Report{}, fmt.Errorf("validating draft: %w", err)
		}
		leaves := leafErrors(verr, nil)
		sort.SliceStable(leaves, func(i, j int) bool { return leaves[i].InstanceLocation < leaves[j].InstanceLocation })
		for _, leaf := range leaves {
			field := fieldPath(leaf.InstanceLocation)
			issues.Add(field, readinessMessage(field, leaf.Message))
		}
	}
	if len(d.Media.Photos) > 0 && !d.Media.HasPhoto(d.Media.Cover()) {
		issues.Add("media.coverPhotoId", "Select a cover photo.")
	}
	return Report{Ready: issues.Empty(), Issues: issues}, nil
}

func leafErrors(e *jsonschema.ValidationError, acc []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(e.Causes) == 0 {
		return append(acc, e)
	}
	for _, c := range e.Causes {
		acc = leafErrors(c, acc)
	}
	return acc
}

func fieldPath(instanceLocation string) string {
	p := strings.TrimLeft(instanceLocation, "#/")
	if p == "" {
		return "draft"
	}
	return strings.ReplaceAll(p, "/", ".")
}

func readinessMessage(field, fallback string) string {
	best := ""
	for prefix := range readinessMessages {
		if (field == prefix || strings.HasPrefix(field, prefix+".")) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return fallback
	}
	return readinessMessages[best]
}
