package geocode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticGeocoder_Lookup(t *testing.T) {
	g := NewStaticGeocoder()

	coords, err := g.Lookup(context.Background(), "Pune")
	require.NoError(t, err)
	assert.Equal(t, [2]float64{73.8567, 18.5204}, coords)

	// Lookups are case and whitespace insensitive.
	trimmed, err := g.Lookup(context.Background(), "  pUnE ")
	require.NoError(t, err)
	assert.Equal(t, coords, trimmed)
}

func TestStaticGeocoder_UnknownCityFallsBack(t *testing.T) {
	g := NewStaticGeocoder()

	coords, err := g.Lookup(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, [2]float64{77.2090, 28.6139}, coords)
}
