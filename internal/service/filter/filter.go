// Package filter reduces raw Overpass nodes to city records.
package filter

import (
	"fmt"

	"geoquiz/internal/dataset"
	"geoquiz/internal/model"
)

// Tag keys copied into a CityRecord
const (
	TagName   = "name"
	TagNameFr = "name:fr"
	TagNameNl = "name:nl"
)

// ToCityRecord keeps the three name tags and the coordinates of one node.
func ToCityRecord(el model.OverpassElement) (model.CityRecord, error) {
	if el.Lat == nil || el.Lon == nil {
		return model.CityRecord{}, fmt.Errorf("node id %d has no coordinates", el.ID)
	}
	return model.CityRecord{
		NameDefault: tag(el.Tags, TagName),
		NameFr:      tag(el.Tags, TagNameFr),
		NameNl:      tag(el.Tags, TagNameNl),
		Lat:         *el.Lat,
		Lon:         *el.Lon,
	}, nil
}

// FilterElements maps every element to a record, keeping input order.
func FilterElements(elements []model.OverpassElement) ([]model.CityRecord, error) {
	cities := make([]model.CityRecord, 0, len(elements))
	for i, el := range elements {
		city, err := ToCityRecord(el)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		cities = append(cities, city)
	}
	return cities, nil
}

// Run loads the raw payload at rawPath and rewrites citiesPath from it.
func Run(rawPath, citiesPath string) ([]model.CityRecord, error) {
	resp, err := dataset.LoadRaw(rawPath)
	if err != nil {
		return nil, err
	}

	cities, err := FilterElements(resp.Elements)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", rawPath, err)
	}

	if err := dataset.SaveCities(citiesPath, cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func tag(tags map[string]string, key string) *string {
	v, ok := tags[key]
	if !ok {
		return nil
	}
	return &v
}
