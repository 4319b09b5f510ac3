package projection

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

var ErrDegenerateCalibration = errors.New("calibration points share a source or target coordinate")

// AffineTransform1D maps s to Scale*s + Offset
type AffineTransform1D struct {
	Scale  float64 `json:"scale"`
	Offset float64 `json:"offset"`
}

// Calibrate returns the transform sending s1 to t1 and s2 to t2. Equal
// targets would collapse the axis to a point, so both pairs must differ.
func Calibrate(s1, t1, s2, t2 float64) (AffineTransform1D, error) {
	if s1 == s2 || t1 == t2 {
		return AffineTransform1D{}, fmt.Errorf("calibrate %v -> %v, %v -> %v: %w", s1, t1, s2, t2, ErrDegenerateCalibration)
	}
	scale := (t2 - t1) / (s2 - s1)
	return AffineTransform1D{
		Scale:  scale,
		Offset: t1 - scale*s1,
	}, nil
}

func (a AffineTransform1D) Apply(s float64) float64 {
	return a.Scale*s + a.Offset
}

// Invert is the inverse map. Scale is never zero for a transform built by
// Calibrate.
func (a AffineTransform1D) Invert(t float64) float64 {
	return (t - a.Offset) / a.Scale
}

// BoardTransform is the full geo -> board mapping
type BoardTransform struct {
	X  AffineTransform1D `json:"x"`
	Y  AffineTransform1D `json:"y"`
	X0 float64           `json:"x0"`
}

// NewBoardTransform calibrates both axes from two projected anchors and the
// board positions they must land on.
func NewBoardTransform(x0 float64, src1, dst1, src2, dst2 orb.Point) (BoardTransform, error) {
	tx, err := Calibrate(src1[0], dst1[0], src2[0], dst2[0])
	if err != nil {
		return BoardTransform{}, fmt.Errorf("x axis: %w", err)
	}
	ty, err := Calibrate(src1[1], dst1[1], src2[1], dst2[1])
	if err != nil {
		return BoardTransform{}, fmt.Errorf("y axis: %w", err)
	}
	return BoardTransform{X: tx, Y: ty, X0: x0}, nil
}

// ApplyProjected rescales an already projected point
func (b BoardTransform) ApplyProjected(p orb.Point) orb.Point {
	return orb.Point{b.X.Apply(p[0]), b.Y.Apply(p[1])}
}

// ToBoard projects (lon, lat) degrees onto the board.
func (b BoardTransform) ToBoard(lon, lat float64) (orb.Point, error) {
	p, err := MercatorChecked(lon, lat, b.X0)
	if err != nil {
		return orb.Point{}, fmt.Errorf("lon %v lat %v: %w", lon, lat, err)
	}
	return b.ApplyProjected(p), nil
}

// ToGeo maps a board position back to (lon, lat) degrees.
func (b BoardTransform) ToGeo(p orb.Point) (lon, lat float64) {
	return InverseMercator(orb.Point{b.X.Invert(p[0]), b.Y.Invert(p[1])}, b.X0)
}
