package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineZero(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(12.97, 77.59, 12.97, 77.59))
}

func TestHaversineKnownDistance(t *testing.T) {
	// Bangalore -> Chennai is roughly 290km as the crow flies.
	d := HaversineKm(12.9716, 77.5946, 13.0827, 80.2707)
	assert.InDelta(t, 290, d, 15)
}

func TestBoundingBoxContainsNearbyPoint(t *testing.T) {
	b := BoundingBox(12.9716, 77.5946, 25)
	assert.Less(t, b.MinLat, 12.9716)
	assert.Greater(t, b.MaxLat, 12.9716)
	// A point ~10km north stays inside a 25km box.
	assert.True(t, 12.9716+10.0/111.0 < b.MaxLat)
}
