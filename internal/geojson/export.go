// Package geojson exports board cities as a GeoJSON FeatureCollection for
// checking the board layout in a map viewer.
package geojson

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"geoquiz/internal/model"
	"geoquiz/internal/projection"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// BuildCollection returns one point feature per city at its real position,
// with board coordinates as properties, plus a marker for each reference city.
func BuildCollection(cities []model.BoardCity, refs []model.ReferenceCity, tr projection.BoardTransform) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, c := range cities {
		f := geojson.NewFeature(orb.Point{c.Lon, c.Lat})
		f.Properties["name"] = c.Name
		f.Properties["type"] = "city"
		f.Properties["board_x"] = c.X
		f.Properties["board_y"] = c.Y
		fc.Append(f)
	}

	// where each reference board position maps back to on the globe
	for _, ref := range refs {
		lon, lat := tr.ToGeo(orb.Point{ref.BoardX, ref.BoardY})
		f := geojson.NewFeature(orb.Point{lon, lat})
		f.Properties["name"] = ref.Name
		f.Properties["type"] = "marker"
		f.Properties["board_x"] = ref.BoardX
		f.Properties["board_y"] = ref.BoardY
		fc.Append(f)
	}

	if len(cities) > 0 {
		bound := BoardBound(cities)
		fc.BBox = geojson.NewBBox(geoBound(cities))
		fc.ExtraMembers = geojson.Properties{
			"board_bbox": []float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]},
		}
	}

	return fc
}

// BoardBound is the extent of the cities in board units
func BoardBound(cities []model.BoardCity) orb.Bound {
	mp := make(orb.MultiPoint, 0, len(cities))
	for _, c := range cities {
		mp = append(mp, orb.Point{c.X, c.Y})
	}
	return mp.Bound()
}

func geoBound(cities []model.BoardCity) orb.Bound {
	mp := make(orb.MultiPoint, 0, len(cities))
	for _, c := range cities {
		mp = append(mp, orb.Point{c.Lon, c.Lat})
	}
	return mp.Bound()
}

// Export writes the collection to outputFile.
func Export(outputFile string, cities []model.BoardCity, refs []model.ReferenceCity, tr projection.BoardTransform) error {
	log.Printf("Exporting %d cities to GeoJSON file: %s", len(cities), outputFile)

	fc := BuildCollection(cities, refs, tr)

	jsonData, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		return fmt.Errorf("create geojson dir: %w", err)
	}
	if err := os.WriteFile(outputFile, jsonData, 0o644); err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}

	log.Printf("Successfully exported cities to %s", outputFile)
	return nil
}
