package quiz

import (
	"fmt"
	"strings"

	"geoquiz/internal/model"
	"geoquiz/internal/projection"
	"geoquiz/internal/service/storage"
	"geoquiz/internal/util"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

const pointTolerance = 1e-6

// citySpatial wraps a board city for the R-tree
type citySpatial struct {
	city model.BoardCity
	rect rtreego.Rect
}

func (c *citySpatial) Bounds() rtreego.Rect {
	return c.rect
}

// Board answers nearest-city and distance questions over placed cities
type Board struct {
	cities    []model.BoardCity
	byName    map[string][]int
	index     *rtreego.Rtree
	transform projection.BoardTransform
}

func NewBoard(cities []model.BoardCity, tr projection.BoardTransform) *Board {
	b := &Board{
		cities:    cities,
		byName:    make(map[string][]int, len(cities)),
		index:     rtreego.NewTree(2, 25, 50),
		transform: tr,
	}
	for i, c := range cities {
		key := boardKey(c.Name)
		b.byName[key] = append(b.byName[key], i)
		b.index.Insert(&citySpatial{
			city: c,
			rect: rtreego.Point{c.X, c.Y}.ToRect(pointTolerance),
		})
	}
	return b
}

func boardKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// City finds a city by name, ignoring case. Names shared by several cities,
// case variants included, are ambiguous and fail with ErrDuplicateCity.
func (b *Board) City(name string) (model.BoardCity, error) {
	pos := b.byName[boardKey(name)]
	switch len(pos) {
	case 0:
		return model.BoardCity{}, fmt.Errorf("%q is not on the board: %w", name, storage.ErrCityNotFound)
	case 1:
		return b.cities[pos[0]], nil
	default:
		return model.BoardCity{}, fmt.Errorf("%q matches %d board cities: %w", name, len(pos), storage.ErrDuplicateCity)
	}
}

// Nearest returns the city closest to a board position.
func (b *Board) Nearest(p orb.Point) (model.BoardCity, bool) {
	if b.index.Size() == 0 {
		return model.BoardCity{}, false
	}
	s := b.index.NearestNeighbor(rtreego.Point{p[0], p[1]})
	if s == nil {
		return model.BoardCity{}, false
	}
	return s.(*citySpatial).city, true
}

// GroundDistanceKm maps p back to the globe and measures the great-circle
// distance to the city, rounded to 100 m.
func (b *Board) GroundDistanceKm(p orb.Point, c model.BoardCity) float64 {
	lon, lat := b.transform.ToGeo(p)
	return util.RoundToKilometers(util.HaversineDistance(lat, lon, c.Lat, c.Lon))
}

// Outcome is the scored result of one location guess
type Outcome struct {
	Answer     model.BoardCity
	Points     float64
	Distance   float64
	DistanceKm float64
	Nearest    model.BoardCity
}

// GuessLocation scores a board position against the named answer.
func (b *Board) GuessLocation(answer string, p orb.Point) (*Outcome, error) {
	city, err := b.City(answer)
	if err != nil {
		return nil, fmt.Errorf("answer: %w", err)
	}
	out := &Outcome{
		Answer:     city,
		Points:     ScoreLocation(p, city),
		Distance:   BoardDistance(p, city),
		DistanceKm: b.GroundDistanceKm(p, city),
	}
	out.Nearest, _ = b.Nearest(p)
	return out, nil
}

func (o *Outcome) String() string {
	return fmt.Sprintf("%s is %.1f a.u. away from your guess! (%.1f km, %.1f points, closest city: %s)",
		o.Answer.Name, o.Distance, o.DistanceKm, o.Points, o.Nearest.Name)
}
