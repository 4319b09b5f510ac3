package pbf

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qedus/osmpbf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceFilter(t *testing.T) {
	f := NewPlaceFilter([]string{"city", "town"})

	tests := []struct {
		name string
		tags map[string]string
		want bool
	}{
		{"city", map[string]string{"place": "city", "name": "Liège"}, true},
		{"town", map[string]string{"place": "town"}, true},
		{"village", map[string]string{"place": "village"}, false},
		{"no place", map[string]string{"name": "Somewhere"}, false},
		{"no tags", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Match(&osmpbf.Node{Tags: tt.tags}))
		})
	}
}

func TestToElement(t *testing.T) {
	node := &osmpbf.Node{ID: 42, Lat: 50.41, Lon: 4.44, Tags: map[string]string{
		"place": "city", "name": "Charleroi", "name:nl": "Charleroi",
	}}

	el := ToElement(node)
	assert.Equal(t, "node", el.Type)
	assert.EqualValues(t, 42, el.ID)
	assert.Equal(t, 50.41, *el.Lat)
	assert.Equal(t, 4.44, *el.Lon)
	assert.Equal(t, "Charleroi", el.Tags["name"])

	// tags are copied
	node.Tags["name"] = "changed"
	assert.Equal(t, "Charleroi", el.Tags["name"])
}

func TestExtractRejectsNonPBF(t *testing.T) {
	_, err := Extract(context.Background(), strings.NewReader("not a pbf file"), NewPlaceFilter([]string{"city"}))
	assert.Error(t, err)
}

func TestExtractFileMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := ExtractFile(context.Background(), filepath.Join(dir, "missing.osm.pbf"), filepath.Join(dir, "raw.json"), []string{"city"})
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "raw.json"))
	assert.True(t, os.IsNotExist(statErr))
}
