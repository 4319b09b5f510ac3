package storage

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"geoquiz/internal/model"
)

const suggestLimit = 3

var (
	ErrCityNotFound  = errors.New("city not found")
	ErrDuplicateCity = errors.New("duplicate city name")
)

// NameIndex resolves a board name to exactly one dataset record.
type NameIndex struct {
	cities    []model.CityRecord
	positions Storage[string, []int]
}

// NewNameIndex indexes cities by DisplayName. Records without any name are
// left out. Duplicates are kept and only reported when looked up.
func NewNameIndex(cities []model.CityRecord) *NameIndex {
	idx := &NameIndex{
		cities:    cities,
		positions: NewMemoryStorage[string, []int](),
	}
	for i, c := range cities {
		name := c.DisplayName()
		if name == "" {
			continue
		}
		idx.positions.Update(name, func(current []int, _ bool) []int {
			return append(current, i)
		})
	}
	return idx
}

// Lookup returns the single record named name.
func (n *NameIndex) Lookup(name string) (model.CityRecord, error) {
	pos, ok := n.positions.Get(name)
	if !ok {
		if hint := n.Suggest(name, suggestLimit); len(hint) > 0 {
			return model.CityRecord{}, fmt.Errorf("%q (did you mean %s): %w", name, strings.Join(hint, ", "), ErrCityNotFound)
		}
		return model.CityRecord{}, fmt.Errorf("%q: %w", name, ErrCityNotFound)
	}
	if len(pos) > 1 {
		return model.CityRecord{}, fmt.Errorf("%q matches %d records: %w", name, len(pos), ErrDuplicateCity)
	}
	return n.cities[pos[0]], nil
}

// Duplicates lists every name carried by more than one record, sorted.
func (n *NameIndex) Duplicates() []string {
	var names []string
	n.positions.ForEach(func(name string, pos []int) bool {
		if len(pos) > 1 {
			names = append(names, name)
		}
		return true
	})
	sort.Strings(names)
	return names
}

// Len is the number of distinct names
func (n *NameIndex) Len() int {
	return n.positions.Count()
}

// Suggest returns up to limit indexed names that contain the query, ignoring case.
func (n *NameIndex) Suggest(query string, limit int) []string {
	q := strings.ToLower(query)
	var names []string
	n.positions.ForEach(func(name string, _ []int) bool {
		if strings.Contains(strings.ToLower(name), q) {
			names = append(names, name)
		}
		return true
	})
	sort.Strings(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}
