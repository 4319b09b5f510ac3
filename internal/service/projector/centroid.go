package projector

import (
	"geoquiz/internal/dataset"
	"geoquiz/internal/model"
)

// Centroid is the arithmetic mean of latitudes and longitudes.
func Centroid(cities []model.CityRecord) (lat, lon float64, err error) {
	if len(cities) == 0 {
		return 0, 0, dataset.ErrEmptyDataset
	}
	for _, c := range cities {
		lat += c.Lat
		lon += c.Lon
	}
	n := float64(len(cities))
	return lat / n, lon / n, nil
}
