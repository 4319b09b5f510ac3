// Package projector places dataset cities on the game board using two
// reference cities with known board positions.
package projector

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"geoquiz/internal/model"
	"geoquiz/internal/projection"
	"geoquiz/internal/service/storage"

	"github.com/paulmach/orb"
)

var ErrNotEnoughReferences = errors.New("at least two reference cities are required")

// Residual is how far a non-anchor reference city lands from its board position
type Residual struct {
	Name     string
	Expected orb.Point
	Got      orb.Point
	Error    float64
}

// Calibration is the board transform and how it was derived
type Calibration struct {
	Transform projection.BoardTransform
	Anchors   [2]model.ReferenceCity
	Residuals []Residual
}

// Calibrate derives the board transform from the first two references and
// checks the remaining ones against it.
func Calibrate(idx *storage.NameIndex, x0 float64, refs []model.ReferenceCity) (*Calibration, error) {
	if len(refs) < 2 {
		return nil, ErrNotEnoughReferences
	}

	var src [2]orb.Point
	for i := 0; i < 2; i++ {
		p, err := projectNamed(idx, refs[i].Name, x0)
		if err != nil {
			return nil, fmt.Errorf("reference %w", err)
		}
		src[i] = p
	}

	tr, err := projection.NewBoardTransform(x0,
		src[0], orb.Point{refs[0].BoardX, refs[0].BoardY},
		src[1], orb.Point{refs[1].BoardX, refs[1].BoardY},
	)
	if err != nil {
		return nil, fmt.Errorf("calibrate on %s and %s: %w", refs[0].Name, refs[1].Name, err)
	}

	cal := &Calibration{Transform: tr, Anchors: [2]model.ReferenceCity{refs[0], refs[1]}}

	for _, ref := range refs[2:] {
		p, err := projectNamed(idx, ref.Name, x0)
		if err != nil {
			return nil, fmt.Errorf("reference %w", err)
		}
		got := tr.ApplyProjected(p)
		want := orb.Point{ref.BoardX, ref.BoardY}
		cal.Residuals = append(cal.Residuals, Residual{
			Name:     ref.Name,
			Expected: want,
			Got:      got,
			Error:    math.Hypot(got[0]-want[0], got[1]-want[1]),
		})
	}

	return cal, nil
}

// CalibrateDataset indexes cities and calibrates on refs.
func CalibrateDataset(cities []model.CityRecord, x0 float64, refs []model.ReferenceCity) (*Calibration, error) {
	return Calibrate(storage.NewNameIndex(cities), x0, refs)
}

// Result is one projected target city
type Result struct {
	*Calibration
	Target   string
	City     model.CityRecord
	Position orb.Point
}

// Project runs the full pipeline: index, calibrate, place target.
func Project(cities []model.CityRecord, x0 float64, refs []model.ReferenceCity, target string) (*Result, error) {
	idx := storage.NewNameIndex(cities)

	cal, err := Calibrate(idx, x0, refs)
	if err != nil {
		return nil, err
	}

	city, err := idx.Lookup(target)
	if err != nil {
		return nil, fmt.Errorf("target %w", err)
	}
	pos, err := cal.Transform.ToBoard(city.Lon, city.Lat)
	if err != nil {
		return nil, fmt.Errorf("target %q: %w", target, err)
	}

	return &Result{Calibration: cal, Target: target, City: city, Position: pos}, nil
}

// Print writes the scaling factors and the target position.
func (r *Result) Print(w io.Writer) {
	fmt.Fprintf(w, "x scaling: a = %v, b=%v\n", r.Transform.X.Scale, r.Transform.X.Offset)
	fmt.Fprintf(w, "y scaling: a = %v, b=%v\n", r.Transform.Y.Scale, r.Transform.Y.Offset)
	for _, res := range r.Residuals {
		fmt.Fprintf(w, "%s check: expected %v,%v got %v,%v (off by %.3f)\n",
			res.Name, res.Expected[0], res.Expected[1], res.Got[0], res.Got[1], res.Error)
	}
	fmt.Fprintf(w, "%s coordinate = %v,%v\n", r.Target, r.Position[0], r.Position[1])
}

// ProjectAll places every named city on the board, in dataset order.
func ProjectAll(cities []model.CityRecord, tr projection.BoardTransform) ([]model.BoardCity, error) {
	board := make([]model.BoardCity, 0, len(cities))
	skipped := 0
	for i, c := range cities {
		name := c.DisplayName()
		if name == "" {
			skipped++
			continue
		}
		p, err := tr.ToBoard(c.Lon, c.Lat)
		if err != nil {
			return nil, fmt.Errorf("city %d %q: %w", i, name, err)
		}
		board = append(board, model.BoardCity{Name: name, X: p[0], Y: p[1], Lat: c.Lat, Lon: c.Lon})
	}
	if skipped > 0 {
		log.Printf("Skipped %d unnamed cities", skipped)
	}
	return board, nil
}

func projectNamed(idx *storage.NameIndex, name string, x0 float64) (orb.Point, error) {
	city, err := idx.Lookup(name)
	if err != nil {
		return orb.Point{}, err
	}
	p, err := projection.MercatorChecked(city.Lon, city.Lat, x0)
	if err != nil {
		return orb.Point{}, fmt.Errorf("%q: %w", name, err)
	}
	return p, nil
}
