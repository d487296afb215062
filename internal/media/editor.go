// Package media implements the gallery editor: ordered photo transforms with
// cover photo bookkeeping, curated library merging and upload handles.
package media

import (
	"slices"
	"sort"

	"github.com/google/uuid"

	"github.com/mark3labs/listwiz/internal/listing"
)

// Direction moves a photo one position in the gallery.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// DefaultSampleBatch is how many library photos one AddSamplePhotos call adds
// when the caller does not say.
const DefaultSampleBatch = 5

// Editor applies pure transforms to a MediaCollection. Every method returns a
// new collection and never modifies its input. Unknown ids are no-ops.
type Editor struct {
	Samples  []listing.SamplePhoto
	Projects []listing.SamplePhoto
	NewID    func() string
}

// NewEditor returns an editor over the given libraries using random UUIDs.
func NewEditor(samples, projects []listing.SamplePhoto) *Editor {
	return &Editor{Samples: samples, Projects: projects, NewID: uuid.NewString}
}

// Normalize sorts photos by their current order and renumbers them 0..n-1.
// Ties keep their relative position.
func Normalize(photos []listing.MediaAsset) []listing.MediaAsset {
	out := slices.Clone(photos)
	if out == nil {
		out = []listing.MediaAsset{}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	for i := range out {
		out[i].Order = i
	}
	return out
}

// withPhotos installs photos and keeps the cover if it still exists,
// otherwise falls back to the first photo or nil.
func withPhotos(m listing.MediaCollection, photos []listing.MediaAsset) listing.MediaCollection {
	out := m.Clone()
	out.Photos = photos
	if out.HasPhoto(m.Cover()) {
		return out
	}
	if len(photos) > 0 {
		out.CoverPhotoID = listing.Ptr(photos[0].ID)
	} else {
		out.CoverPhotoID = nil
	}
	return out
}

// AddPhotos appends assets to the gallery.
func (e *Editor) AddPhotos(m listing.MediaCollection, assets []listing.MediaAsset) listing.MediaCollection {
	if len(assets) == 0 {
		return m.Clone()
	}
	combined := append(slices.Clone(m.Photos), assets...)
	return withPhotos(m, Normalize(combined))
}

// AddSamplePhotos appends up to count library photos that are not already in
// the gallery. A non-positive count means DefaultSampleBatch.
func (e *Editor) AddSamplePhotos(m listing.MediaCollection, count int) listing.MediaCollection {
	if count <= 0 {
		count = DefaultSampleBatch
	}
	return e.AddFromLibrary(m, e.Samples, count)
}

// AddFromLibrary appends up to limit of the given library entries, skipping
// any whose id already appears as a photo referenceId. New photos start at
// the current photo count.
func (e *Editor) AddFromLibrary(m listing.MediaCollection, library []listing.SamplePhoto, limit int) listing.MediaCollection {
	present := make(map[string]bool, len(m.Photos))
	for _, p := range m.Photos {
		if p.ReferenceID != "" {
			present[p.ReferenceID] = true
		}
	}
	start := len(m.Photos)
	var added []listing.MediaAsset
	for _, sample := range library {
		if len(added) == limit {
			break
		}
		if present[sample.ID] {
			continue
		}
		present[sample.ID] = true
		added = append(added, e.fromSample(sample, start+len(added), listing.SourceSample))
	}
	return e.AddPhotos(m, added)
}

// RemovePhoto drops the photo with the given id.
func (e *Editor) RemovePhoto(m listing.MediaCollection, id string) listing.MediaCollection {
	if !m.HasPhoto(id) {
		return m.Clone()
	}
	remaining := slices.DeleteFunc(slices.Clone(m.Photos), func(a listing.MediaAsset) bool { return a.ID == id })
	return withPhotos(m, Normalize(remaining))
}

// MovePhoto swaps a photo with its neighbour. Moving past either end is a no-op.
func (e *Editor) MovePhoto(m listing.MediaCollection, id string, dir Direction) listing.MediaCollection {
	ordered := Normalize(m.Photos)
	i := slices.IndexFunc(ordered, func(a listing.MediaAsset) bool { return a.ID == id })
	if i < 0 {
		return m.Clone()
	}
	j := i + 1
	if dir == Left {
		j = i - 1
	} else if dir != Right {
		return m.Clone()
	}
	if j < 0 || j >= len(ordered) {
		return m.Clone()
	}
	ordered[i], ordered[j] = ordered[j], ordered[i]
	for k := range ordered {
		ordered[k].Order = k
	}
	return withPhotos(m, ordered)
}

// SetCoverPhoto makes id the cover when it names an existing photo.
func (e *Editor) SetCoverPhoto(m listing.MediaCollection, id string) listing.MediaCollection {
	if !m.HasPhoto(id) {
		return m.Clone()
	}
	out := m.Clone()
	out.Photos = Normalize(m.Photos)
	out.CoverPhotoID = listing.Ptr(id)
	return out
}

// ToggleProjectPhoto selects or deselects a curated project photo by its
// library id.
func (e *Editor) ToggleProjectPhoto(m listing.MediaCollection, sampleID string, selected bool) listing.MediaCollection {
	out := m.Clone()
	if !selected {
		out.ProjectPhotos = slices.DeleteFunc(out.ProjectPhotos, func(a listing.MediaAsset) bool {
			return a.ReferenceID == sampleID
		})
		if out.ProjectPhotos == nil {
			out.ProjectPhotos = []listing.MediaAsset{}
		}
		return out
	}
	if slices.ContainsFunc(m.ProjectPhotos, func(a listing.MediaAsset) bool { return a.ReferenceID == sampleID }) {
		return out
	}
	i := slices.IndexFunc(e.Projects, func(s listing.SamplePhoto) bool { return s.ID == sampleID })
	if i < 0 {
		return out
	}
	out.ProjectPhotos = append(out.ProjectPhotos, e.fromSample(e.Projects[i], len(m.ProjectPhotos), listing.SourceProject))
	return out
}

// SelectAllProjectPhotos replaces the project photos with the whole curated
// library, or clears them.
func (e *Editor) SelectAllProjectPhotos(m listing.MediaCollection, selected bool) listing.MediaCollection {
	out := m.Clone()
	out.ProjectPhotos = []listing.MediaAsset{}
	if !selected {
		return out
	}
	for i, sample := range e.Projects {
		out.ProjectPhotos = append(out.ProjectPhotos, e.fromSample(sample, i, listing.SourceProject))
	}
	return out
}

func (e *Editor) fromSample(sample listing.SamplePhoto, order int, source listing.MediaSource) listing.MediaAsset {
	newID := e.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return listing.MediaAsset{
		ID:          sample.ID + "-" + newID(),
		Kind:        listing.KindPhoto,
		FileName:    sample.FileName,
		URL:         sample.URL,
		AltText:     sample.Label,
		Order:       order,
		Tag:         sample.Tag,
		ReferenceID: sample.ID,
		Source:      source,
	}
}
