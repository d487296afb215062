package listing

import "slices"

// Step identifies one stage of the wizard.
type Step string

const (
	StepListingType Step = "listingType"
	StepLocation    Step = "location"
	StepUnitDetails Step = "unitDetails"
	StepPrice       Step = "price"
	StepGallery     Step = "gallery"
	StepPlatform    Step = "platform"
	StepPreview     Step = "preview"
)

// StepStatus is the progress state of a single step.
type StepStatus string

const (
	StatusNotStarted StepStatus = "not-started"
	StatusInProgress StepStatus = "in-progress"
	StatusComplete   StepStatus = "complete"
	StatusBlocked    StepStatus = "blocked"
)

// Order is the fixed navigation sequence. StepPlatform is known but not part of it.
var order = []Step{
	StepListingType,
	StepLocation,
	StepUnitDetails,
	StepPrice,
	StepGallery,
	StepPreview,
}

// Order returns a copy of the fixed step sequence.
func Order() []Step {
	return slices.Clone(order)
}

// Known reports whether s names any step, including ones outside the order.
func (s Step) Known() bool {
	_, ok := metadata[s]
	return ok
}

// InOrder reports whether s is part of the navigable sequence.
func (s Step) InOrder() bool {
	return slices.Contains(order, s)
}

// Index returns the position of s in the order, or -1.
func (s Step) Index() int {
	return slices.Index(order, s)
}

// Metadata is the display copy for a step.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var metadata = map[Step]Metadata{
	StepListingType: {
		Title:       "Listing Type",
		Description: "Choose property category, purpose, and availability.",
	},
	StepLocation: {
		Title:       "Location",
		Description: "Search for the development and confirm the map position.",
	},
	StepUnitDetails: {
		Title:       "Unit Details",
		Description: "Provide size, rooms, and furnishing details.",
	},
	StepPrice: {
		Title:       "Price",
		Description: "Capture pricing, maintenance, and display options.",
	},
	StepGallery: {
		Title:       "Gallery",
		Description: "Curate listing media, set the cover image, and manage project assets.",
	},
	StepPlatform: {
		Title:       "Platform Posting",
		Description: "Configure publication channels and scheduling (coming soon).",
	},
	StepPreview: {
		Title:       "Preview",
		Description: "Review all listing details before publishing.",
	},
}

// Meta returns the display copy for s. Unknown steps get an empty Metadata.
func (s Step) Meta() Metadata {
	return metadata[s]
}

// InitialStatuses returns the status map for a fresh session: the first step
// in progress and every other step not started.
func InitialStatuses() map[Step]StepStatus {
	statuses := make(map[Step]StepStatus, len(order))
	for i, step := range order {
		if i == 0 {
			statuses[step] = StatusInProgress
		} else {
			statuses[step] = StatusNotStarted
		}
	}
	return statuses
}

// ParseStep converts a step name into a known Step.
func ParseStep(name string) (Step, bool) {
	s := Step(name)
	return s, s.Known()
}
