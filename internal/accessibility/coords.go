package accessibility

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/accessnyc/liftwatch/internal/cache"
	"github.com/accessnyc/liftwatch/internal/feed"
	"github.com/accessnyc/liftwatch/internal/models"
)

// The coordinates provider rejects requests without a User-Agent.
var coordsHeaders = map[string]string{"User-Agent": "liftwatch/1.0"}

// coordRow is one row of the coordinates dataset. Latitude and
// longitude arrive as strings or numbers depending on the export.
type coordRow struct {
	ComplexID   string `json:"complex_id"`
	ComplexName string `json:"complex_name"`
	Lat         any    `json:"gtfs_latitude"`
	Lng         any    `json:"gtfs_longitude"`
}

// CoordService serves the station coordinate mapping, refreshed at most
// once per TTL window.
type CoordService struct {
	feeds  *feed.Client
	url    string
	coords *cache.Value[map[string]models.CoordinateEntry]
	group  singleflight.Group
	now    func() time.Time
}

// NewCoordService creates the coordinate service.
func NewCoordService(feeds *feed.Client, url string, ttl time.Duration) *CoordService {
	return &CoordService{
		feeds:  feeds,
		url:    url,
		coords: cache.New[map[string]models.CoordinateEntry](ttl),
		now:    time.Now,
	}
}

// Coords returns the cached mapping when fresh, otherwise fetches and
// replaces it wholesale. A failed refresh is an error, never a fallback
// to the stale generation.
func (s *CoordService) Coords() (map[string]models.CoordinateEntry, error) {
	if m, ok := s.coords.Get(s.now()); ok {
		return m, nil
	}

	v, err, _ := s.group.Do("coords", func() (any, error) {
		if m, ok := s.coords.Get(s.now()); ok {
			return m, nil
		}
		if s.url == "" {
			return nil, fmt.Errorf("coordinates: %w", ErrNotConfigured)
		}

		records, err := s.feeds.Fetch(s.url, coordsHeaders)
		if err != nil {
			return nil, fmt.Errorf("fetching coordinates feed: %w", err)
		}

		coords := normalizeCoords(records)
		s.coords.Set(coords, s.now())
		return coords, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]models.CoordinateEntry), nil
}

// normalizeCoords keys coordinate entries by complex ID, skipping rows
// with a missing ID or a missing or non-numeric coordinate.
func normalizeCoords(records []json.RawMessage) map[string]models.CoordinateEntry {
	coords := make(map[string]models.CoordinateEntry, len(records))
	for _, rec := range records {
		var row coordRow
		if err := json.Unmarshal(rec, &row); err != nil {
			continue
		}

		complexID := strings.TrimSpace(row.ComplexID)
		lat, latOK := toFloat(row.Lat)
		lng, lngOK := toFloat(row.Lng)
		if complexID == "" || !latOK || !lngOK {
			continue
		}

		coords[complexID] = models.CoordinateEntry{
			Lat:  lat,
			Lng:  lng,
			Name: strings.TrimSpace(row.ComplexName),
		}
	}
	return coords
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
