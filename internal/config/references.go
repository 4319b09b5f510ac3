package config

import (
	"fmt"
	"strconv"
	"strings"

	"geoquiz/internal/model"
)

// DefaultReferenceCities anchors the board on Arlon and Ostende
const DefaultReferenceCities = "Arlon:258:-248,Ostende:-307:207"

// ParseReferenceCities parses a "Name:x:y,Name:x:y" table. Order is kept:
// the first two entries calibrate the board, the rest are checked against it.
func ParseReferenceCities(raw string) ([]model.ReferenceCity, error) {
	var refs []model.ReferenceCity
	seen := make(map[string]bool)

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		// split from the right so names may contain ':'
		last := strings.LastIndex(entry, ":")
		if last < 0 {
			return nil, fmt.Errorf("reference %q: expected name:x:y", entry)
		}
		mid := strings.LastIndex(entry[:last], ":")
		if mid <= 0 {
			return nil, fmt.Errorf("reference %q: expected name:x:y", entry)
		}

		name := strings.TrimSpace(entry[:mid])
		x, err := strconv.ParseFloat(strings.TrimSpace(entry[mid+1:last]), 64)
		if err != nil {
			return nil, fmt.Errorf("reference %q: board x: %w", entry, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(entry[last+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("reference %q: board y: %w", entry, err)
		}

		if seen[name] {
			return nil, fmt.Errorf("reference %q listed twice", name)
		}
		seen[name] = true

		refs = append(refs, model.ReferenceCity{Name: name, BoardX: x, BoardY: y})
	}

	return refs, nil
}
