// Package quiz scores player guesses against board cities.
package quiz

import (
	"math"
	"strings"

	"geoquiz/internal/model"

	"github.com/paulmach/orb"
)

// MaxPoints is awarded for a perfect guess
const MaxPoints = 100.0

// ScoreName gives MaxPoints when guess matches answer, ignoring case and
// surrounding spaces in the guess, and nothing otherwise.
func ScoreName(guess string, answer model.BoardCity) float64 {
	if strings.ToLower(strings.TrimSpace(guess)) == strings.ToLower(answer.Name) {
		return MaxPoints
	}
	return 0
}

// ScoreLocation is MaxPoints minus the board distance. It goes negative
// for guesses further than MaxPoints units away.
func ScoreLocation(guess orb.Point, answer model.BoardCity) float64 {
	return MaxPoints - BoardDistance(guess, answer)
}

// BoardDistance is the euclidean distance in board units
func BoardDistance(p orb.Point, c model.BoardCity) float64 {
	return math.Hypot(c.X-p[0], c.Y-p[1])
}
