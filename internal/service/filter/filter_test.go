package filter

import (
	"path/filepath"
	"testing"

	"geoquiz/internal/dataset"
	"geoquiz/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestFilterElements(t *testing.T) {
	elements := []model.OverpassElement{
		{Type: "node", ID: 1, Lat: ptr(50.45), Lon: ptr(3.95), Tags: map[string]string{
			"name": "Mons", "name:fr": "Mons", "name:nl": "Bergen", "place": "city", "population": "95000",
		}},
		{Type: "node", ID: 2, Lat: ptr(51.05), Lon: ptr(3.72), Tags: map[string]string{
			"name": "Gent", "name:nl": "Gent",
		}},
		{Type: "node", ID: 3, Lat: ptr(50.0), Lon: ptr(5.0)},
	}

	cities, err := FilterElements(elements)
	require.NoError(t, err)
	require.Len(t, cities, len(elements))

	assert.Equal(t, "Mons", *cities[0].NameDefault)
	assert.Equal(t, "Mons", *cities[0].NameFr)
	assert.Equal(t, "Bergen", *cities[0].NameNl)
	assert.Equal(t, 50.45, cities[0].Lat)
	assert.Equal(t, 3.95, cities[0].Lon)

	assert.Equal(t, "Gent", *cities[1].NameDefault)
	assert.Nil(t, cities[1].NameFr)
	assert.Equal(t, "Gent", *cities[1].NameNl)

	assert.Nil(t, cities[2].NameDefault)
	assert.Nil(t, cities[2].NameFr)
	assert.Nil(t, cities[2].NameNl)
	assert.Equal(t, 5.0, cities[2].Lon)
}

func TestFilterElementsEmpty(t *testing.T) {
	cities, err := FilterElements(nil)
	require.NoError(t, err)
	assert.Empty(t, cities)
}

func TestFilterElementsMissingCoordinates(t *testing.T) {
	_, err := FilterElements([]model.OverpassElement{
		{ID: 1, Lat: ptr(50), Lon: ptr(4)},
		{ID: 2, Lat: ptr(50)},
	})
	require.Error(t, err)
	assert.Equal(t, "element 1: node id 2 has no coordinates", err.Error())
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw.json")
	out := filepath.Join(dir, "cities.json")

	require.NoError(t, dataset.WriteRaw(raw, []byte(`{"elements":[
		{"type":"node","id":10,"lat":49.68,"lon":5.81,"tags":{"name":"Arlon","name:fr":"Arlon","name:nl":"Aarlen"}},
		{"type":"node","id":11,"lat":51.22,"lon":2.92,"tags":{"name":"Oostende","name:fr":"Ostende"}}
	]}`)))

	cities, err := Run(raw, out)
	require.NoError(t, err)
	require.Len(t, cities, 2)

	loaded, err := dataset.LoadCities(out)
	require.NoError(t, err)
	assert.Equal(t, cities, loaded)
	assert.Equal(t, "Ostende", *loaded[1].NameFr)
	assert.Equal(t, "Oostende", *loaded[1].NameDefault)
	assert.Nil(t, loaded[1].NameNl)
}
