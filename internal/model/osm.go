package model

// OverpassElement is a raw node as returned by the Overpass API
type OverpassElement struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  *float64          `json:"lat,omitempty"`
	Lon  *float64          `json:"lon,omitempty"`
	Tags map[string]string `json:"tags,omitempty"`
}

// OverpassResponse is the raw payload persisted by the fetch step
type OverpassResponse struct {
	Version   float64           `json:"version,omitempty"`
	Generator string            `json:"generator,omitempty"`
	Elements  []OverpassElement `json:"elements"`
}
