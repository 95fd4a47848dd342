package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/baguioroutes/roadadvisor/pkg/geo"
	"github.com/baguioroutes/roadadvisor/pkg/util"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const geocodeCacheSize = 256

// geocodeCandidate. the public geocoder returns a JSON array of candidates
// with lat/lon as strings.
type geocodeCandidate struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocoder resolves free-text queries against an external geocoding
// endpoint. Successful lookups are cached in an LRU keyed by query: users
// re-search the same handful of destinations and the upstream service
// rate-limits aggressively.
type Geocoder struct {
	baseURL string
	client  *http.Client
	cache   *lru.Cache[string, geo.Coordinate]
	log     *zap.Logger
}

func NewGeocoder(baseURL string, timeout time.Duration, log *zap.Logger) (*Geocoder, error) {
	cache, err := lru.New[string, geo.Coordinate](geocodeCacheSize)
	if err != nil {
		return nil, err
	}
	return &Geocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		cache:   cache,
		log:     log,
	}, nil
}

// Geocode returns the coordinates of the first candidate for query.
// ErrGeocodeNotFound when the geocoder has no candidates.
func (g *Geocoder) Geocode(ctx context.Context, query string) (geo.Coordinate, error) {
	if coord, ok := g.cache.Get(query); ok {
		return coord, nil
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return geo.Coordinate{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return geo.Coordinate{}, util.WrapErrorf(err, util.ErrInternalServerError,
			"geocoding request failed for %q", query)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Coordinate{}, util.WrapErrorf(
			fmt.Errorf("geocoder status %d", resp.StatusCode),
			util.ErrInternalServerError, "geocoding request failed for %q", query)
	}

	var candidates []geocodeCandidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return geo.Coordinate{}, util.WrapErrorf(err, util.ErrInternalServerError,
			"decode geocoding response for %q", query)
	}

	if len(candidates) == 0 {
		return geo.Coordinate{}, util.WrapErrorf(ErrGeocodeNotFound, util.ErrNotFound,
			"no geocoding candidates for %q", query)
	}

	first := candidates[0]
	lat, err := util.StringToFloat64(first.Lat)
	if err != nil {
		return geo.Coordinate{}, util.WrapErrorf(err, util.ErrInternalServerError,
			"geocoder returned non-numeric lat %q", first.Lat)
	}
	lon, err := util.StringToFloat64(first.Lon)
	if err != nil {
		return geo.Coordinate{}, util.WrapErrorf(err, util.ErrInternalServerError,
			"geocoder returned non-numeric lon %q", first.Lon)
	}

	coord := geo.NewCoordinate(lat, lon)
	g.cache.Add(query, coord)
	g.log.Debug("geocoded query",
		zap.String("query", query),
		zap.String("display_name", first.DisplayName),
		zap.Float64("lat", lat), zap.Float64("lon", lon))
	return coord, nil
}
