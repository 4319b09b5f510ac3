package overpass

import (
	"context"
	"log"

	"geoquiz/internal/dataset"
)

// FetchToFile downloads the query result and writes it to rawPath.
// It returns the number of elements saved.
func (c *Client) FetchToFile(ctx context.Context, query, country, rawPath string) (int, error) {
	res, err := c.Fetch(ctx, query)
	if err != nil {
		return 0, err
	}

	n := len(res.Response.Elements)
	log.Printf("Found %d city nodes in %s", n, country)

	if err := dataset.WriteRaw(rawPath, res.Payload); err != nil {
		return 0, err
	}
	log.Printf("Raw payload written to %s", rawPath)
	return n, nil
}
