// Package pbf extracts place nodes from an OpenStreetMap .osm.pbf file into
// the same element shape the Overpass fetcher saves.
package pbf

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"geoquiz/internal/dataset"
	"geoquiz/internal/model"

	"github.com/qedus/osmpbf"
)

// PlaceFilter accepts nodes whose place tag is one of the configured types
type PlaceFilter map[string]bool

func NewPlaceFilter(types []string) PlaceFilter {
	f := make(PlaceFilter, len(types))
	for _, t := range types {
		f[t] = true
	}
	return f
}

// Match reports whether the node is a wanted place
func (f PlaceFilter) Match(node *osmpbf.Node) bool {
	placeType, isPlace := node.Tags["place"]
	return isPlace && f[placeType]
}

// ToElement converts a decoded node to a raw element
func ToElement(node *osmpbf.Node) model.OverpassElement {
	lat, lon := node.Lat, node.Lon
	tags := make(map[string]string, len(node.Tags))
	for k, v := range node.Tags {
		tags[k] = v
	}
	return model.OverpassElement{
		Type: "node",
		ID:   node.ID,
		Lat:  &lat,
		Lon:  &lon,
		Tags: tags,
	}
}

// Extract decodes r and keeps matching nodes in file order.
func Extract(ctx context.Context, r io.Reader, filter PlaceFilter) ([]model.OverpassElement, error) {
	decoder := osmpbf.NewDecoder(r)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	numProcs := runtime.GOMAXPROCS(-1)
	if err := decoder.Start(numProcs); err != nil {
		return nil, fmt.Errorf("start decoder: %w", err)
	}
	log.Printf("Decoder started with %d processors", numProcs)

	var elements []model.OverpassElement
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		object, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}

		node, ok := object.(*osmpbf.Node)
		if !ok || !filter.Match(node) {
			continue
		}
		elements = append(elements, ToElement(node))
	}

	log.Printf("Collected %d place nodes", len(elements))
	return elements, nil
}

// ExtractFile reads pbfPath and writes a raw payload to rawPath.
func ExtractFile(ctx context.Context, pbfPath, rawPath string, placeTypes []string) (int, error) {
	log.Printf("Processing file: %s", pbfPath)

	f, err := os.Open(pbfPath)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", pbfPath, err)
	}
	defer f.Close()

	elements, err := Extract(ctx, f, NewPlaceFilter(placeTypes))
	if err != nil {
		return 0, fmt.Errorf("extract %s: %w", pbfPath, err)
	}
	if elements == nil {
		elements = []model.OverpassElement{}
	}

	resp := model.OverpassResponse{Generator: "geoquiz pbf extract", Elements: elements}
	if err := dataset.WriteJSON(rawPath, resp); err != nil {
		return 0, err
	}
	return len(elements), nil
}
