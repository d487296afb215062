package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/session"
)

func TestTestdataScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			rep, err := Run(context.Background(), file, Options{})
			require.NoError(t, err)
			assert.NotEmpty(t, rep.Transcript)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("mixes command lines and mappings", func(t *testing.T) {
		s, err := Parse([]byte(`
name: mixed
steps:
  - pricing sellingPrice=1500000
  - command: narrative
    args:
      headline: Bright corner unit
`))
		require.NoError(t, err)
		require.Len(t, s.Steps, 2)
		assert.Equal(t, Step{Command: "pricing", Args: map[string]any{"sellingPrice": 1500000}}, s.Steps[0])
		assert.Equal(t, "narrative", s.Steps[1].Command)
		assert.Equal(t, "Bright corner unit", s.Steps[1].Args["headline"])
		assert.Nil(t, s.Strict)
	})

	t.Run("rejects a script without steps", func(t *testing.T) {
		_, err := Parse([]byte("name: empty\n"))
		assert.Error(t, err)
	})

	t.Run("rejects a mapping without a command", func(t *testing.T) {
		_, err := Parse([]byte("steps:\n  - args: {count: 2}\n"))
		assert.ErrorContains(t, err, "no command")
	})

	t.Run("rejects a malformed command line", func(t *testing.T) {
		_, err := Parse([]byte("steps:\n  - 'narrative headline=\"oops'\n"))
		assert.Error(t, err)
	})
}

func TestRunScheduledDateMapping(t *testing.T) {
	s, err := Parse([]byte(`
name: scheduled
strict: true
steps:
  - command: listing-type
    args:
      propertyCategory: residential
      listingPurpose: rent
      availabilityMode: scheduled
      availableDate: 2025-06-01
  - next
expect:
  step: location
`))
	require.NoError(t, err)

	rep, err := s.Run(context.Background(), Options{})
	require.NoError(t, err)
	require.NotNil(t, rep.State.Draft.AvailableDate)
	assert.Equal(t, "2025-06-01", *rep.State.Draft.AvailableDate)
}

func TestRunStopsAtFirstError(t *testing.T) {
	s, err := Parse([]byte(`
name: stops
steps:
  - next
  - pricing sellingPrice=cheap
  - next
`))
	require.NoError(t, err)

	rep, err := s.Run(context.Background(), Options{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "step 2")
	require.Len(t, rep.Transcript, 1)
	assert.Equal(t, listing.StepLocation, rep.State.CurrentStep)
}

func TestRunStrictness(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - next\n"))
	require.NoError(t, err)

	t.Run("options apply when the script is silent", func(t *testing.T) {
		rep, err := s.Run(context.Background(), Options{StrictValidation: true})
		require.NoError(t, err)
		assert.Equal(t, listing.StepListingType, rep.View.Step)
		assert.Equal(t, "Select a property category to proceed.", rep.Transcript[0].Banner)
	})

	t.Run("the script overrides options", func(t *testing.T) {
		strict := false
		s.Strict = &strict
		rep, err := s.Run(context.Background(), Options{StrictValidation: true})
		require.NoError(t, err)
		assert.Equal(t, listing.StepLocation, rep.View.Step)
	})
}

func TestExpectMismatch(t *testing.T) {
	s, err := Parse([]byte(`
name: wrong
steps:
  - next
expect:
  step: price
  valid: true
  photos: 2
`))
	require.NoError(t, err)

	rep, err := s.Run(context.Background(), Options{})
	require.Error(t, err)
	assert.NotNil(t, rep)
	assert.ErrorContains(t, err, "expected step price, got location")
	assert.ErrorContains(t, err, "expected 2 photos, got 0")
}

func TestRunObservesEvents(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - next\n  - add-samples count=2\n"))
	require.NoError(t, err)

	var kinds []session.EventKind
	_, err = s.Run(context.Background(), Options{Observe: func(e session.Event) {
		kinds = append(kinds, e.Kind)
	}})
	require.NoError(t, err)
	assert.Contains(t, kinds, session.KindStep)
	assert.Contains(t, kinds, session.KindMedia)
	assert.Equal(t, session.KindSession, kinds[len(kinds)-1], "the close is observed last")
}

func TestRunHonoursCancellation(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - next\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := s.Run(ctx, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rep.Transcript)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
