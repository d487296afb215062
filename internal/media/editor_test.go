package media

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/listwiz/internal/catalog"
	"github.com/mark3labs/listwiz/internal/listing"
)

func newTestEditor() *Editor {
	n := 0
	return &Editor{
		Samples:  catalog.SamplePhotos(),
		Projects: catalog.ProjectPhotos(),
		NewID: func() string {
			n++
			return fmt.Sprintf("id%d", n)
		},
	}
}

func ids(photos []listing.MediaAsset) []string {
	out := make([]string, len(photos))
	for i, p := range photos {
		out[i] = p.ID
	}
	return out
}

func assertDense(t *testing.T, photos []listing.MediaAsset) {
	t.Helper()
	for i, p := range photos {
		assert.Equal(t, i, p.Order, "photo %s", p.ID)
	}
}

func assertCoverValid(t *testing.T, m listing.MediaCollection) {
	t.Helper()
	if len(m.Photos) == 0 {
		assert.Nil(t, m.CoverPhotoID)
		return
	}
	require.NotNil(t, m.CoverPhotoID)
	assert.True(t, m.HasPhoto(*m.CoverPhotoID), "cover %s not in photos", *m.CoverPhotoID)
}

func photo(id string, order int) listing.MediaAsset {
	return listing.MediaAsset{ID: id, Kind: listing.KindPhoto, Order: order}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]listing.MediaAsset{photo("c", 7), photo("a", 2), photo("b", 2)})
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
	assertDense(t, got)
	assert.NotNil(t, Normalize(nil))
}

func TestAddSamplePhotos(t *testing.T) {
	e := newTestEditor()
	m := e.AddSamplePhotos(listing.EmptyMedia(), 4)

	require.Len(t, m.Photos, 4)
	assertDense(t, m.Photos)
	assertCoverValid(t, m)
	assert.Equal(t, m.Photos[0].ID, m.Cover(), "cover defaults to first photo")

	first := m.Photos[0]
	assert.Equal(t, "sample-photo-1-id1", first.ID)
	assert.Equal(t, "sample-photo-1", first.ReferenceID)
	assert.Equal(t, listing.SourceSample, first.Source)
	assert.Equal(t, "City skyline during the day", first.AltText)
	assert.Equal(t, "Exterior", first.Tag)

	t.Run("skips samples already present", func(t *testing.T) {
		next := e.AddSamplePhotos(m, 2)
		require.Len(t, next.Photos, 6)
		assert.Equal(t, "sample-photo-5", next.Photos[4].ReferenceID)
		assert.Equal(t, "sample-photo-6", next.Photos[5].ReferenceID)
		assert.Equal(t, m.Cover(), next.Cover(), "existing cover kept")
	})

	t.Run("default batch and library exhaustion", func(t *testing.T) {
		all := e.AddSamplePhotos(m, 0)
		assert.Len(t, all.Photos, 9)
		all = e.AddSamplePhotos(all, 50)
		assert.Len(t, all.Photos, 10)
		again := e.AddSamplePhotos(all, 5)
		assert.Equal(t, ids(all.Photos), ids(again.Photos))
	})

	t.Run("input is not modified", func(t *testing.T) {
		assert.Len(t, m.Photos, 4)
	})
}

func TestAddPhotosKeepsOrAssignsCover(t *testing.T) {
	e := newTestEditor()
	m := listing.EmptyMedia()
	m = e.AddPhotos(m, []listing.MediaAsset{photo("a", 0), photo("b", 1)})
	assert.Equal(t, "a", m.Cover())

	m = e.SetCoverPhoto(m, "b")
	m = e.AddPhotos(m, []listing.MediaAsset{photo("c", 2)})
	assert.Equal(t, "b", m.Cover())

	stale := m
	stale.CoverPhotoID = listing.Ptr("gone")
	stale = e.AddPhotos(stale, []listing.MediaAsset{photo("d", 3)})
	assert.Equal(t, "a", stale.Cover())

	same := e.AddPhotos(m, nil)
	assert.Equal(t, ids(m.Photos), ids(same.Photos))
}

func TestRemovePhoto(t *testing.T) {
	e := newTestEditor()
	m := e.AddPhotos(listing.EmptyMedia(), []listing.MediaAsset{photo("a", 0), photo("b", 1), photo("c", 2)})
	m = e.SetCoverPhoto(m, "b")

	t.Run("removing a non-cover keeps the cover", func(t *testing.T) {
		got := e.RemovePhoto(m, "a")
		assert.Equal(t, []string{"b", "c"}, ids(got.Photos))
		assertDense(t, got.Photos)
		assert.Equal(t, "b", got.Cover())
	})

	t.Run("removing the cover falls back to first photo", func(t *testing.T) {
		got := e.RemovePhoto(m, "b")
		assert.Equal(t, []string{"a", "c"}, ids(got.Photos))
		assert.Equal(t, "a", got.Cover())
	})

	t.Run("removing the last photo clears the cover", func(t *testing.T) {
		one := e.AddPhotos(listing.EmptyMedia(), []listing.MediaAsset{photo("x", 0)})
		got := e.RemovePhoto(one, "x")
		assert.Empty(t, got.Photos)
		assert.Nil(t, got.CoverPhotoID)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		got := e.RemovePhoto(m, "nope")
		assert.Equal(t, ids(m.Photos), ids(got.Photos))
		assert.Equal(t, m.Cover(), got.Cover())
	})
}

func TestMovePhoto(t *testing.T) {
	e := newTestEditor()
	m := e.AddPhotos(listing.EmptyMedia(), []listing.MediaAsset{photo("a", 0), photo("b", 1), photo("c", 2)})

	tests := []struct {
		name string
		id   string
		dir  Direction
		want []string
	}{
		{"first left is a no-op", "a", Left, []string{"a", "b", "c"}},
		{"last right is a no-op", "c", Right, []string{"a", "b", "c"}},
		{"middle left", "b", Left, []string{"b", "a", "c"}},
		{"middle right", "b", Right, []string{"a", "c", "b"}},
		{"unknown id", "z", Left, []string{"a", "b", "c"}},
		{"unknown direction", "b", Direction("up"), []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.MovePhoto(m, tt.id, tt.dir)
			assert.Equal(t, tt.want, ids(got.Photos))
			assertDense(t, got.Photos)
			assertCoverValid(t, got)
		})
	}
}

func TestSetCoverPhoto(t *testing.T) {
	e := newTestEditor()
	m := e.AddPhotos(listing.EmptyMedia(), []listing.MediaAsset{photo("a", 0), photo("b", 1)})

	assert.Equal(t, "b", e.SetCoverPhoto(m, "b").Cover())
	assert.Equal(t, "a", e.SetCoverPhoto(m, "missing").Cover())
}

func TestProjectPhotos(t *testing.T) {
	e := newTestEditor()
	m := listing.EmptyMedia()

	t.Run("toggle round trip restores members", func(t *testing.T) {
		selected := e.ToggleProjectPhoto(m, "project-photo-2", true)
		require.Len(t, selected.ProjectPhotos, 1)
		assert.Equal(t, listing.SourceProject, selected.ProjectPhotos[0].Source)
		assert.Equal(t, "project-photo-2", selected.ProjectPhotos[0].ReferenceID)
		assert.Empty(t, selected.Photos, "project photos never join the gallery")

		dup := e.ToggleProjectPhoto(selected, "project-photo-2", true)
		assert.Len(t, dup.ProjectPhotos, 1)

		back := e.ToggleProjectPhoto(selected, "project-photo-2", false)
		assert.Empty(t, back.ProjectPhotos)
		assert.NotNil(t, back.ProjectPhotos)
	})

	t.Run("unknown sample is a no-op", func(t *testing.T) {
		got := e.ToggleProjectPhoto(m, "sample-photo-1", true)
		assert.Empty(t, got.ProjectPhotos)
	})

	t.Run("select all then clear twice", func(t *testing.T) {
		all := e.SelectAllProjectPhotos(m, true)
		require.Len(t, all.ProjectPhotos, 3)
		assertDense(t, all.ProjectPhotos)

		once := e.SelectAllProjectPhotos(all, false)
		twice := e.SelectAllProjectPhotos(once, false)
		assert.Equal(t, once.ProjectPhotos, twice.ProjectPhotos)
		assert.Empty(t, twice.ProjectPhotos)
	})
}

func TestInvariantsAcrossOperationSequence(t *testing.T) {
	e := newTestEditor()
	m := listing.EmptyMedia()
	steps := []func(listing.MediaCollection) listing.MediaCollection{
		func(m listing.MediaCollection) listing.MediaCollection { return e.AddSamplePhotos(m, 3) },
		func(m listing.MediaCollection) listing.MediaCollection { return e.MovePhoto(m, m.Photos[2].ID, Left) },
		func(m listing.MediaCollection) listing.MediaCollection { return e.SetCoverPhoto(m, m.Photos[1].ID) },
		func(m listing.MediaCollection) listing.MediaCollection { return e.RemovePhoto(m, m.Photos[1].ID) },
		func(m listing.MediaCollection) listing.MediaCollection { return e.AddSamplePhotos(m, 4) },
		func(m listing.MediaCollection) listing.MediaCollection { return e.MovePhoto(m, m.Photos[0].ID, Right) },
		func(m listing.MediaCollection) listing.MediaCollection { return e.RemovePhoto(m, m.Photos[0].ID) },
	}
	for i, step := range steps {
		m = step(m)
		t.Logf("after step %d: %v cover=%s", i, ids(m.Photos), m.Cover())
		assertDense(t, m.Photos)
		assertCoverValid(t, m)
	}
}

func TestHandles(t *testing.T) {
	h := NewHandles()
	a := h.Acquire(Upload{FileName: "a.jpg"})
	b := h.Acquire(Upload{FileName: "b.jpg"})

	assert.True(t, IsHandle(a))
	assert.NotEqual(t, a, b)
	assert.Equal(t, []string{a, b}, h.Outstanding())

	assert.True(t, h.Release(a))
	assert.False(t, h.Release(a), "release is idempotent")
	assert.Equal(t, []string{b}, h.Outstanding())

	h.Acquire(Upload{FileName: "c.jpg"})
	assert.Equal(t, 2, h.ReleaseAll())
	assert.Empty(t, h.Outstanding())
	assert.Equal(t, 0, h.ReleaseAll())
}

func TestUploadAsset(t *testing.T) {
	asset := UploadAsset("u1", HandlePrefix+"x", Upload{FileName: "den.png", SizeBytes: 42}, 3)
	assert.Equal(t, listing.SourceUpload, asset.Source)
	assert.Equal(t, "den.png", asset.AltText)
	assert.Equal(t, int64(42), asset.SizeBytes)
	assert.Equal(t, 3, asset.Order)
}

func TestInspectFile(t *testing.T) {
	dir := t.TempDir()

	png := filepath.Join(dir, "front.png")
	header := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	require.NoError(t, os.WriteFile(png, header, 0644))

	u, err := InspectFile(png)
	require.NoError(t, err)
	assert.Equal(t, "front.png", u.FileName)
	assert.Equal(t, "image/png", u.ContentType)
	assert.Equal(t, int64(len(header)), u.SizeBytes)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("just some notes"), 0644))
	_, err = InspectFile(txt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an image")

	_, err = InspectFile(filepath.Join(dir, "missing.jpg"))
	require.Error(t, err)

	_, err = InspectFile(dir)
	require.Error(t, err)
}
