package levels

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLevelIsComplete(t *testing.T) {
	d := Default()

	assert.Equal(t, "Corgi Meadow", d.ThemeName)
	assert.Len(t, d.Platforms, 8)
	assert.Len(t, d.Enemies, 5)
	assert.Len(t, d.Obstacles, 2)
	assert.Len(t, d.Collectibles, 7)
	assert.Len(t, d.TennisBalls, 1)
	require.NotNil(t, d.Goal)
	assert.Equal(t, 3300.0, d.End())
	assert.Empty(t, d.Clone().Normalize(), "the fallback needs no repairs")
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.Platforms[0].Width = 1
	b := Default()
	assert.Equal(t, 800.0, b.Platforms[0].Width)
}

func TestOptionalArraysMayBeAbsent(t *testing.T) {
	d, err := Parse([]byte(`{
		"themeName": "Bare",
		"backgroundColor": "#000000",
		"groundColor": "#FFFFFF",
		"platforms": [{"x": 0, "y": 500, "width": 2000, "type": "grass"}],
		"enemies": [],
		"collectibles": []
	}`))
	require.NoError(t, err)
	assert.Empty(t, d.Obstacles)
	assert.Empty(t, d.TennisBalls)
	assert.Nil(t, d.Goal)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"platforms": [`))
	assert.Error(t, err)
}

func TestNormalizeRepairsDegenerateData(t *testing.T) {
	d := &Description{
		BackgroundColor: "sky blue",
		GroundColor:     "#123",
		Platforms: []PlatformDecl{
			{X: 0, Y: 500, Width: 100, Type: SurfaceStone},
			{X: 10, Y: 500, Width: -5, Type: SurfaceGrass},
			{X: 20, Y: 500, Width: 0},
			{X: 30, Y: 400, Width: 50, Type: "marshmallow"},
		},
		Enemies:      []EnemyDecl{{X: 1, Y: 2, Type: "  BEAR "}, {X: math.NaN(), Y: 0, Type: "cat"}},
		Obstacles:    []ObstacleDecl{{X: 5, Y: 5}},
		Collectibles: []Point{{X: math.Inf(1), Y: 0}, {X: 1, Y: 1}},
		Goal:         &Point{X: math.NaN()},
	}

	notes := d.Normalize()

	assert.NotEmpty(t, notes)
	assert.Equal(t, "Unnamed Level", d.ThemeName)
	assert.Equal(t, defaultBackground, d.BackgroundColor)
	assert.Equal(t, "#123", d.GroundColor)
	require.Len(t, d.Platforms, 2)
	assert.Equal(t, SurfaceStone, d.Platforms[0].Type)
	assert.Equal(t, SurfaceGrass, d.Platforms[1].Type)
	require.Len(t, d.Enemies, 1)
	assert.Equal(t, "bear", d.Enemies[0].Type)
	assert.Equal(t, "spike", d.Obstacles[0].Type)
	assert.Equal(t, []Point{{X: 1, Y: 1}}, d.Collectibles)
	assert.Nil(t, d.Goal)
}

func TestEncodeRoundTrip(t *testing.T) {
	d := Default()
	data, err := d.Encode()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"themeName":"Disk","platforms":[{"x":0,"y":500,"width":10,"type":"lava"}]}`), 0o644))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Disk", d.ThemeName)
	assert.Equal(t, SurfaceLava, d.Platforms[0].Type)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
