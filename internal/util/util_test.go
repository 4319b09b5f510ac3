package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// Arlon to Ostende
	d := HaversineDistance(49.7, 5.8, 51.2, 2.9)
	assert.InDelta(t, 264_503, d, 50)

	assert.InDelta(t, 0, HaversineDistance(50, 4, 50, 4), 1e-6)

	// one degree of longitude on the equator
	assert.InDelta(t, 111_195, HaversineDistance(0, 0, 0, 1), 1)
}

func TestRoundToKilometers(t *testing.T) {
	assert.Equal(t, 12.3, RoundToKilometers(12_345))
	assert.Equal(t, 0.0, RoundToKilometers(40))
}

func TestShortUUID(t *testing.T) {
	a := ShortUUID()
	b := ShortUUID()
	assert.Len(t, a, 22)
	assert.NotEqual(t, a, b)
}
