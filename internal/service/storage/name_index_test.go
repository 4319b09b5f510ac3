package storage

import (
	"testing"

	"geoquiz/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func city(def, fr string, lat, lon float64) model.CityRecord {
	return model.CityRecord{NameDefault: model.StringPtr(def), NameFr: model.StringPtr(fr), Lat: lat, Lon: lon}
}

func TestNameIndexLookup(t *testing.T) {
	idx := NewNameIndex([]model.CityRecord{
		city("Arlon", "Arlon", 49.68, 5.81),
		city("Oostende", "Ostende", 51.22, 2.92),
		city("Gent", "", 51.05, 3.72),
		{Lat: 50, Lon: 4},
	})

	got, err := idx.Lookup("Ostende")
	require.NoError(t, err)
	assert.Equal(t, 2.92, got.Lon)

	// no French name: falls back to the default name
	got, err = idx.Lookup("Gent")
	require.NoError(t, err)
	assert.Equal(t, 51.05, got.Lat)

	// the default name is not a key when a French one exists
	_, err = idx.Lookup("Oostende")
	assert.ErrorIs(t, err, ErrCityNotFound)

	assert.Equal(t, 3, idx.Len())
}

func TestNameIndexDuplicate(t *testing.T) {
	idx := NewNameIndex([]model.CityRecord{
		city("Soignies", "Soignies", 50.57, 4.07),
		city("Arlon", "Arlon", 49.68, 5.81),
		city("Soignies", "Soignies", 50.58, 4.06),
	})

	_, err := idx.Lookup("Soignies")
	assert.ErrorIs(t, err, ErrDuplicateCity)

	_, err = idx.Lookup("Arlon")
	assert.NoError(t, err)

	assert.Equal(t, []string{"Soignies"}, idx.Duplicates())
}

func TestNameIndexSuggest(t *testing.T) {
	idx := NewNameIndex([]model.CityRecord{
		city("Mons", "Mons", 0, 0),
		city("Namur", "Namur", 0, 0),
		city("Mont-Saint-Guibert", "Mont-Saint-Guibert", 0, 0),
	})

	assert.Equal(t, []string{"Mons", "Mont-Saint-Guibert"}, idx.Suggest("MON", 5))
	assert.Equal(t, []string{"Mons"}, idx.Suggest("mon", 1))
	assert.Empty(t, idx.Suggest("xyz", 5))
}

func TestNameIndexLookupSuggests(t *testing.T) {
	idx := NewNameIndex([]model.CityRecord{
		city("Mons", "Mons", 0, 0),
		city("Namur", "Namur", 0, 0),
		city("Mont-Saint-Guibert", "Mont-Saint-Guibert", 0, 0),
	})

	_, err := idx.Lookup("mon")
	assert.ErrorIs(t, err, ErrCityNotFound)
	assert.Contains(t, err.Error(), "did you mean Mons, Mont-Saint-Guibert")

	_, err = idx.Lookup("Bruxelles")
	assert.ErrorIs(t, err, ErrCityNotFound)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage[string, int]()
	s.Update("a", func(v int, ok bool) int {
		assert.False(t, ok)
		return 1
	})
	s.Update("a", func(v int, ok bool) int {
		assert.True(t, ok)
		return v + 1
	})
	s.Update("b", func(v int, ok bool) int {
		assert.False(t, ok)
		return 10
	})

	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, s.Count())

	seen := 0
	s.ForEach(func(string, int) bool {
		seen++
		return false
	})
	assert.Equal(t, 1, seen)
}
