package geojson

import (
	"os"
	"path/filepath"
	"testing"

	"geoquiz/internal/model"
	"geoquiz/internal/projection"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) ([]model.BoardCity, []model.ReferenceCity, projection.BoardTransform) {
	t.Helper()
	refs := []model.ReferenceCity{
		{Name: "Arlon", BoardX: 258, BoardY: -248},
		{Name: "Ostende", BoardX: -307, BoardY: 207},
	}
	tr, err := projection.NewBoardTransform(4.5,
		projection.Mercator(5.8, 49.7, 4.5), orb.Point{258, -248},
		projection.Mercator(2.9, 51.2, 4.5), orb.Point{-307, 207},
	)
	require.NoError(t, err)

	cities := []model.BoardCity{
		{Name: "Arlon", X: 258, Y: -248, Lat: 49.7, Lon: 5.8},
		{Name: "Ostende", X: -307, Y: 207, Lat: 51.2, Lon: 2.9},
	}
	return cities, refs, tr
}

func TestBuildCollection(t *testing.T) {
	cities, refs, tr := fixture(t)

	fc := BuildCollection(cities, refs, tr)
	require.Len(t, fc.Features, 4)

	first := fc.Features[0]
	assert.Equal(t, orb.Point{5.8, 49.7}, first.Geometry)
	assert.Equal(t, "Arlon", first.Properties["name"])
	assert.Equal(t, "city", first.Properties["type"])
	assert.Equal(t, 258.0, first.Properties["board_x"])

	// reference markers map back onto the anchor cities
	marker := fc.Features[2]
	assert.Equal(t, "marker", marker.Properties["type"])
	p := marker.Geometry.(orb.Point)
	assert.InDelta(t, 5.8, p[0], 1e-9)
	assert.InDelta(t, 49.7, p[1], 1e-9)

	assert.Equal(t, geojson.BBox{2.9, 49.7, 5.8, 51.2}, fc.BBox)
}

func TestBoardBound(t *testing.T) {
	cities, _, _ := fixture(t)
	b := BoardBound(cities)
	assert.Equal(t, orb.Point{-307, -248}, b.Min)
	assert.Equal(t, orb.Point{258, 207}, b.Max)
}

func TestExport(t *testing.T) {
	cities, refs, tr := fixture(t)
	path := filepath.Join(t.TempDir(), "board.geojson")

	require.NoError(t, Export(path, cities, refs, tr))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 4)
	assert.Equal(t, "Ostende", fc.Features[1].Properties.MustString("name"))
	assert.Contains(t, string(data), "board_bbox")
}

func TestExportCreatesDirectory(t *testing.T) {
	cities, refs, tr := fixture(t)
	path := filepath.Join(t.TempDir(), "out", "maps", "board.geojson")

	require.NoError(t, Export(path, cities, refs, tr))
	assert.FileExists(t, path)
}
