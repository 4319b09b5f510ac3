package model

// CityRecord is one entry of the filtered city dataset. Names are nil when the
// source node carried no such tag.
type CityRecord struct {
	NameDefault *string `json:"name:default"`
	NameFr      *string `json:"name:fr"`
	NameNl      *string `json:"name:nl"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// DisplayName is the name shown on the board: French when known, default otherwise.
func (c CityRecord) DisplayName() string {
	if c.NameFr != nil && *c.NameFr != "" {
		return *c.NameFr
	}
	if c.NameDefault != nil {
		return *c.NameDefault
	}
	return ""
}

// StringPtr returns nil for an empty string
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
