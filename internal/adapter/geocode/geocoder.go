// Package geocode resolves city names to coordinates for seeding and data
// enrichment. It is not part of the live query path.
package geocode

import (
	"context"
	"strings"
)

// Geocoder looks up [longitude, latitude] for a city name.
type Geocoder interface {
	Lookup(ctx context.Context, city string) ([2]float64, error)
}

// StaticGeocoder serves coordinates from a fixed table. Unrecognized cities
// resolve to the fallback coordinate instead of failing.
type StaticGeocoder struct {
	table    map[string][2]float64
	fallback [2]float64
}

func NewStaticGeocoder() *StaticGeocoder {
	return &StaticGeocoder{
		table: map[string][2]float64{
			"delhi":     {77.2090, 28.6139},
			"mumbai":    {72.8777, 19.0760},
			"bangalore": {77.5946, 12.9716},
			"pune":      {73.8567, 18.5204},
			"jaipur":    {75.7873, 26.9124},
			"goa":       {73.8278, 15.4989},
			"gurgaon":   {77.0266, 28.4595},
			"manali":    {77.1892, 32.2396},
			"alleppey":  {76.3388, 9.4981},
			"hyderabad": {78.4867, 17.3850},
			"chennai":   {80.2707, 13.0827},
			"kolkata":   {88.3639, 22.5726},
			"udaipur":   {73.7125, 24.5854},
			"rishikesh": {78.2676, 30.0869},
			"varanasi":  {82.9739, 25.3176},
			"noida":     {77.3910, 28.5355},
		},
		// New Delhi, used when a city is unrecognized.
		fallback: [2]float64{77.2090, 28.6139},
	}
}

func (g *StaticGeocoder) Lookup(ctx context.Context, city string) ([2]float64, error) {
	if coords, ok := g.table[strings.ToLower(strings.TrimSpace(city))]; ok {
		return coords, nil
	}
	return g.fallback, nil
}
