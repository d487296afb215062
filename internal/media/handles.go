package media

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/mark3labs/listwiz/internal/listing"
)

// HandlePrefix marks URLs that are ephemeral upload handles.
const HandlePrefix = "blob:listwiz/"

// Upload describes a file the user picked for the gallery.
type Upload struct {
	FileName    string `json:"fileName"`
	SizeBytes   int64  `json:"sizeBytes,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

// Handles tracks the ephemeral handles issued for uploaded files. A handle is
// acquired when a file is selected and must be released when its photo is
// removed or the gallery is torn down.
type Handles struct {
	newID func() string
	live  map[string]Upload
	order []string
}

// NewHandles returns an empty registry.
func NewHandles() *Handles {
	return &Handles{newID: uuid.NewString, live: make(map[string]Upload)}
}

// Acquire issues a new handle URL for u.
func (h *Handles) Acquire(u Upload) string {
	url := HandlePrefix + h.newID()
	h.live[url] = u
	h.order = append(h.order, url)
	return url
}

// Release frees one handle. Releasing an unknown or already released handle
// returns false.
func (h *Handles) Release(url string) bool {
	if _, ok := h.live[url]; !ok {
		return false
	}
	delete(h.live, url)
	h.order = slices.DeleteFunc(h.order, func(u string) bool { return u == url })
	return true
}

// ReleaseAll frees every outstanding handle and returns how many there were.
func (h *Handles) ReleaseAll() int {
	n := len(h.live)
	clear(h.live)
	h.order = nil
	return n
}

// Outstanding lists live handles in acquisition order.
func (h *Handles) Outstanding() []string {
	return slices.Clone(h.order)
}

// IsHandle reports whether url was issued by a Handles registry.
func IsHandle(url string) bool {
	return strings.HasPrefix(url, HandlePrefix)
}

// UploadAsset builds the gallery photo for an uploaded file.
func UploadAsset(id, url string, u Upload, order int) listing.MediaAsset {
	return listing.MediaAsset{
		ID:        id,
		Kind:      listing.KindPhoto,
		FileName:  u.FileName,
		URL:       url,
		SizeBytes: u.SizeBytes,
		AltText:   u.FileName,
		Order:     order,
		Source:    listing.SourceUpload,
	}
}

// InspectFile describes a local file as an Upload. Only images are accepted.
func InspectFile(path string) (Upload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Upload{}, fmt.Errorf("inspecting %s: %w", path, err)
	}
	if info.IsDir() {
		return Upload{}, fmt.Errorf("%s is a directory", path)
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return Upload{}, fmt.Errorf("detecting type of %s: %w", path, err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return Upload{}, fmt.Errorf("%s is %s, not an image", filepath.Base(path), mtype.String())
	}
	return Upload{
		FileName:    filepath.Base(path),
		SizeBytes:   info.Size(),
		ContentType: mtype.String(),
	}, nil
}
