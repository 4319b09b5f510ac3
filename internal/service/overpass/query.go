package overpass

import (
	"fmt"
	"strings"
)

// QueryOptions selects the country and place types to download
type QueryOptions struct {
	CountryISO string
	PlaceTypes []string
	// Timeout is the server-side timeout in seconds
	Timeout int
}

// BuildQuery renders the Overpass QL query for all matching place nodes
// inside the country's admin_level=2 boundary.
func BuildQuery(opts QueryOptions) string {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 180
	}
	places := opts.PlaceTypes
	if len(places) == 0 {
		places = []string{"city", "town"}
	}

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "[out:json][timeout:%d];\n", timeout)
	fmt.Fprintf(&b, "area[\"ISO3166-1\"=%q][admin_level=2]->.country;\n", opts.CountryISO)
	fmt.Fprintf(&b, "node[\"place\"~%q](area.country);\n", strings.Join(places, "|"))
	b.WriteString("out;\n")
	return b.String()
}
