package accessibility

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/accessnyc/liftwatch/internal/cache"
	"github.com/accessnyc/liftwatch/internal/feed"
	"github.com/accessnyc/liftwatch/internal/models"
)

// ErrNotConfigured marks an operation whose feed URL was never
// supplied. It is a configuration problem, not an upstream failure,
// and only fails the operations that need the missing feed.
var ErrNotConfigured = errors.New("feed URL is not configured")

// equipmentSnapshot is one generation of normalized equipment data.
type equipmentSnapshot struct {
	stations []models.Station
	index    models.EquipmentIndex
}

// Service aggregates the equipment and outage feeds into station views.
// The equipment snapshot is cached for the life of the process; outages
// are fetched fresh on every status query because their activity state
// is time dependent.
type Service struct {
	feeds        *feed.Client
	equipmentURL string
	outagesURL   string
	equipment    *cache.Value[equipmentSnapshot]
	group        singleflight.Group
	now          func() time.Time
}

// NewService creates the aggregation service. Either URL may be empty;
// the operations needing it then fail with ErrNotConfigured.
func NewService(feeds *feed.Client, equipmentURL, outagesURL string) *Service {
	return &Service{
		feeds:        feeds,
		equipmentURL: equipmentURL,
		outagesURL:   outagesURL,
		equipment:    cache.New[equipmentSnapshot](0),
		now:          time.Now,
	}
}

// Stations returns the station registry, sorted by name.
func (s *Service) Stations() ([]models.Station, error) {
	snap, err := s.loadEquipment()
	if err != nil {
		return nil, err
	}
	return snap.stations, nil
}

// Status computes the current elevator/escalator status for a station.
func (s *Service) Status(stationID string) (models.StationStatus, error) {
	snap, err := s.loadEquipment()
	if err != nil {
		return models.StationStatus{}, err
	}

	if s.outagesURL == "" {
		return models.StationStatus{}, fmt.Errorf("outages: %w", ErrNotConfigured)
	}
	records, err := s.feeds.Fetch(s.outagesURL, nil)
	if err != nil {
		return models.StationStatus{}, fmt.Errorf("fetching outages feed: %w", err)
	}

	now := s.now()
	outages := NormalizeOutages(records, now)
	return StatusFor(stationID, snap.index, outages, now), nil
}

// loadEquipment returns the cached equipment snapshot, populating it on
// first demand. The populate is single-flight: one fetch leads and
// concurrent callers wait on its result instead of re-fetching, and the
// cache lock is never held across the network call.
func (s *Service) loadEquipment() (equipmentSnapshot, error) {
	if snap, ok := s.equipment.Get(s.now()); ok {
		return snap, nil
	}

	v, err, _ := s.group.Do("equipment", func() (any, error) {
		if snap, ok := s.equipment.Get(s.now()); ok {
			return snap, nil
		}
		if s.equipmentURL == "" {
			return nil, fmt.Errorf("equipment: %w", ErrNotConfigured)
		}

		records, err := s.feeds.Fetch(s.equipmentURL, nil)
		if err != nil {
			return nil, fmt.Errorf("fetching equipment feed: %w", err)
		}

		stations, index := NormalizeEquipment(records)
		snap := equipmentSnapshot{stations: stations, index: index}
		s.equipment.Set(snap, s.now())
		return snap, nil
	})
	if err != nil {
		return equipmentSnapshot{}, err
	}
	return v.(equipmentSnapshot), nil
}
