package model

// ReferenceCity pins a named city to a fixed board position
type ReferenceCity struct {
	Name   string  `json:"name"`
	BoardX float64 `json:"board_x"`
	BoardY float64 `json:"board_y"`
}

// BoardCity is a city placed on the game board
type BoardCity struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
