package handlers

import "github.com/accessnyc/liftwatch/internal/models"

// AccessibilityProvider abstracts the equipment/outage aggregation for
// testability.
type AccessibilityProvider interface {
	Stations() ([]models.Station, error)
	Status(stationID string) (models.StationStatus, error)
}

// CoordProvider abstracts the station coordinate source.
type CoordProvider interface {
	Coords() (map[string]models.CoordinateEntry, error)
}

// AlertProvider abstracts the service alerts data source.
type AlertProvider interface {
	HasFeedURL() bool
	GetAlerts(routes []string) ([]models.ServiceAlert, error)
}
