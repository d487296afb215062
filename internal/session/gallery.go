package session

import (
	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/media"
)

func (s *Store) mutateMedia(action string, fn func(m listing.MediaCollection) listing.MediaCollection) State {
	return s.mutate(KindMedia, action, func(d *listing.Draft) {
		d.Media = fn(d.Media)
	})
}

// SetMedia replaces the whole media collection.
func (s *Store) SetMedia(m listing.MediaCollection) State {
	return s.mutateMedia("replace", func(listing.MediaCollection) listing.MediaCollection {
		return filled(m.Clone())
	})
}

// AddPhotos appends assets to the gallery.
func (s *Store) AddPhotos(assets []listing.MediaAsset) State {
	return s.mutateMedia("add", func(m listing.MediaCollection) listing.MediaCollection {
		return s.editor.AddPhotos(m, assets)
	})
}

// AddSamplePhotos adds up to count library photos. A non-positive count adds
// the default batch.
func (s *Store) AddSamplePhotos(count int) State {
	return s.mutateMedia("add-samples", func(m listing.MediaCollection) listing.MediaCollection {
		return s.editor.AddSamplePhotos(m, count)
	})
}

// UploadPhotos acquires a handle per file and adds the files as upload photos.
func (s *Store) UploadPhotos(uploads []media.Upload) State {
	if len(uploads) == 0 {
		return s.State()
	}
	start := len(s.draft.Media.Photos)
	assets := make([]listing.MediaAsset, 0, len(uploads))
	for i, u := range uploads {
		url := s.handles.Acquire(u)
		assets = append(assets, media.UploadAsset(s.opts.NewID(), url, u, start+i))
	}
	return s.mutateMedia("upload", func(m listing.MediaCollection) listing.MediaCollection {
		return s.editor.AddPhotos(m, assets)
	})
}

// RemovePhoto drops a photo and releases its upload handle, if any.
func (s *Store) RemovePhoto(id string) State {
	return s.mutateMedia("remove", func(m listing.MediaCollection) listing.MediaCollection {
		return s.editor.RemovePhoto(m, id)
	})
}

// MovePhoto swaps a photo with its neighbour in dir.
func (s *Store) MovePhoto(id string, dir media.Direction) State {
	return s.mutateMedia("move", func(m listing.MediaCollection) listing.MediaCollection {
		return s.editor.MovePhoto(m, id, dir)
	})
}

// SetCoverPhoto makes id the cover photo.
func (s *Store) SetCoverPhoto(id string) State {
	return s.mutateMedia("cover", func(m listing.MediaCollection) listing.MediaCollection {
		return s.editor.SetCoverPhoto(m, id)
	})
}

// ToggleProjectPhoto selects or deselects one curated project photo.
func (s *Store) ToggleProjectPhoto(sampleID string, selected bool) State {
	return s.mutateMedia("project-photo", func(m listing.MediaCollection) listing.MediaCollection {
		return s.editor.ToggleProjectPhoto(m, sampleID, selected)
	})
}

// SelectAllProjectPhotos selects or clears every curated project photo.
func (s *Store) SelectAllProjectPhotos(selected bool) State {
	return s.mutateMedia("project-photos", func(m listing.MediaCollection) listing.MediaCollection {
		return s.editor.SelectAllProjectPhotos(m, selected)
	})
}

// TeardownGallery releases every outstanding upload handle and returns how
// many were released. Upload photos keep their, now dead, URLs.
func (s *Store) TeardownGallery() int {
	return s.releaseAll("teardown")
}

func (s *Store) releaseAll(reason string) int {
	n := s.handles.ReleaseAll()
	if n > 0 {
		logger.Debug("session %s: released %d upload handles (%s)", s.id, n, reason)
		s.emit(KindMedia, "release", s.current, reason)
	}
	return n
}

// releaseOrphans frees handles no longer referenced by any photo.
func (s *Store) releaseOrphans() {
	live := make(map[string]bool, len(s.draft.Media.Photos))
	for _, p := range s.draft.Media.Photos {
		live[p.URL] = true
	}
	for _, url := range s.handles.Outstanding() {
		if !live[url] {
			s.handles.Release(url)
			logger.Debug("session %s: released upload handle %s", s.id, url)
		}
	}
}

// filled allocates any nil asset array so a replaced collection encodes the
// same way as a fresh one.
func filled(m listing.MediaCollection) listing.MediaCollection {
	for _, arr := range []*[]listing.MediaAsset{&m.Photos, &m.Videos, &m.Floorplans, &m.VirtualTours, &m.ProjectPhotos} {
		if *arr == nil {
			*arr = []listing.MediaAsset{}
		}
	}
	return m
}
