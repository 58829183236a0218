package assets

import (
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPlacements(t *testing.T) {
	table := DefaultPlacements()
	require.Len(t, table, 6)
	require.NoError(t, table.Validate())

	c, ok := table.Center()
	require.True(t, ok)
	assert.Equal(t, "TRANSCENDENCE", c.Label)
	assert.Equal(t, [3]float64{0, 4.5, 0}, c.Position)
	assert.Equal(t, CenterID, table[0].ID, "center is the default focus")

	p := table[1]
	assert.Equal(t, "perimeter-watch-0", p.ID)
	assert.Equal(t, "COLLECTION 1", p.Label)
	assert.InDelta(t, 0, p.Position[0], 1e-12)
	assert.InDelta(t, 5.5, p.Position[2], 1e-12)
	assert.InDelta(t, 4.2, p.Position[1], 1e-12)
	assert.InDelta(t, -gomath.Pi/2, p.Rotation[1], 1e-12)

	last := table[5]
	assert.Equal(t, "COLLECTION 5", last.Label)
	assert.InDelta(t, 5.5, gomath.Hypot(last.Position[0], last.Position[2]), 1e-9)
}

func TestFindAndIndex(t *testing.T) {
	table := DefaultPlacements()
	assert.Equal(t, 3, table.Index("perimeter-watch-2"))
	assert.Equal(t, -1, table.Index("nope"))

	_, ok := table.Find("nope")
	assert.False(t, ok)
	assert.Equal(t, []string{CenterID, "perimeter-watch-0", "perimeter-watch-1",
		"perimeter-watch-2", "perimeter-watch-3", "perimeter-watch-4"}, table.IDs())
}

func TestValidateErrors(t *testing.T) {
	noCenter := Table(Perimeter(4, 3, 1))
	assert.ErrorIs(t, noCenter.Validate(), ErrNoCenter)

	dup := DefaultPlacements()
	dup[2].ID = dup[1].ID
	assert.ErrorIs(t, dup.Validate(), ErrDuplicateID)

	empty := DefaultPlacements()
	empty[3].ID = ""
	assert.ErrorIs(t, empty.Validate(), ErrEmptyID)

	skewed := DefaultPlacements()
	skewed[2].Position[0] += 0.5
	assert.ErrorIs(t, skewed.Validate(), ErrUneven)

	gap := DefaultPlacements()[:5]
	assert.ErrorIs(t, gap.Validate(), ErrUneven, "removing one leaves a double gap")

	onlyCenter := DefaultPlacements()[:1]
	assert.NoError(t, onlyCenter.Validate())
}

func TestParsePlacementsYAML(t *testing.T) {
	src := []byte(`
placements:
  - id: center-watch
    position: [0, 4.5, 0]
    rotation: [1.0, -1.5, 0]
    label: MIDDLE
  - id: a
    position: [0, 4, 3]
    label: A
  - id: b
    position: [0, 4, -3]
    label: B
`)
	table, err := ParsePlacements(src, ".yaml")
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, "MIDDLE", table[0].Label)
	assert.Equal(t, [3]float64{0, 4, -3}, table[2].Position)
}

func TestParsePlacementsTOML(t *testing.T) {
	src := []byte(`
[[placements]]
id = "center-watch"
position = [0.0, 4.5, 0.0]
label = "MIDDLE"

[[placements]]
id = "east"
position = [2.0, 4.0, 0.0]
label = "EAST"
`)
	table, err := ParsePlacements(src, ".toml")
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, "EAST", table[1].Label)
}

func TestParsePlacementsRejects(t *testing.T) {
	_, err := ParsePlacements([]byte("placements: []"), ".json")
	assert.ErrorIs(t, err, ErrFormat)

	_, err = ParsePlacements([]byte("placements: []"), ".yaml")
	assert.ErrorIs(t, err, ErrNoCenter)

	_, err = ParsePlacements([]byte("bogus: 1"), ".yml")
	assert.Error(t, err)
}

func TestLoadPlacementsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, ext := range []string{".yaml", ".toml"} {
		data, err := Marshal(DefaultPlacements(), ext)
		require.NoError(t, err)

		path := filepath.Join(dir, "placements"+ext)
		require.NoError(t, os.WriteFile(path, data, 0o644))

		table, err := LoadPlacements(path)
		require.NoError(t, err, ext)
		require.Len(t, table, 6)
		assert.Equal(t, "COLLECTION 3", table[3].Label)
		assert.InDelta(t, DefaultPlacements()[3].Position[2], table[3].Position[2], 1e-9)
	}

	_, err := LoadPlacements(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
