package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

// CachedGeocoder fronts another geocoder with a Redis cache. Listings
// themselves are never cached; only geocode lookups, which are static data.
type CachedGeocoder struct {
	next   Geocoder
	client *redis.Client
}

func NewCachedGeocoder(next Geocoder, addr string) (*CachedGeocoder, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &CachedGeocoder{next: next, client: client}, nil
}

func (g *CachedGeocoder) Lookup(ctx context.Context, city string) ([2]float64, error) {
	key := "geocode:" + strings.ToLower(strings.TrimSpace(city))

	data, err := g.client.Get(ctx, key).Bytes()
	if err == nil {
		var coords [2]float64
		if jsonErr := json.Unmarshal(data, &coords); jsonErr == nil {
			return coords, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// Cache trouble is not a lookup failure; fall through to the source.
		return g.next.Lookup(ctx, city)
	}

	coords, err := g.next.Lookup(ctx, city)
	if err != nil {
		return coords, err
	}
	if data, err := json.Marshal(coords); err == nil {
		g.client.Set(ctx, key, data, cacheTTL)
	}
	return coords, nil
}

func (g *CachedGeocoder) Close() error {
	return g.client.Close()
}
