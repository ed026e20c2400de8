// Package models defines shared data types
package models

// Station is one logical station complex from the equipment feed.
// Lines is the union of train-line codes seen across all feed rows
// for the complex, stored sorted.
type Station struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Lines []string `json:"lines"`
}

// EquipmentSets holds the elevator and escalator IDs for one complex.
// An equipment ID belongs to exactly one of the two sets.
type EquipmentSets struct {
	Elevators  []string `json:"elevators"`
	Escalators []string `json:"escalators"`
}

// EquipmentIndex maps a complex ID to its equipment sets.
type EquipmentIndex map[string]EquipmentSets

// Outage is one row from the outage feed with derived activity state.
// Timestamps are kept as the feed's raw strings.
type Outage struct {
	EquipmentID     string `json:"equipment_id"`
	EquipmentType   string `json:"equipment_type"`
	Reason          string `json:"reason"`
	OutageDate      string `json:"outage_date"`
	EstimatedReturn string `json:"estimated_return_to_service"`
	IsUpcoming      bool   `json:"is_upcoming"`
	IsActive        bool   `json:"is_active"`
}

// Alert is an outage surfaced on a station status response.
type Alert struct {
	EquipmentID     string `json:"equipment_id"`
	EquipmentType   string `json:"equipment_type"`
	Reason          string `json:"reason"`
	OutageDate      string `json:"outagedate"`
	EstimatedReturn string `json:"estimatedreturntoservice"`
	IsUpcoming      bool   `json:"is_upcoming"`
	IsActive        bool   `json:"is_active"`
}

// StationStatus is the aggregated elevator/escalator view for one station.
type StationStatus struct {
	ElevatorStatus  string  `json:"elevator_status"`
	EscalatorStatus string  `json:"escalator_status"`
	Alerts          []Alert `json:"alerts"`
	LastUpdated     string  `json:"last_updated"`
}

// CoordinateEntry is a station complex location from the coordinates feed.
type CoordinateEntry struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

// ServiceAlert represents an active MTA service alert.
type ServiceAlert struct {
	ID          string   `json:"id"`
	Routes      []string `json:"routes"`
	Header      string   `json:"header"`
	Description string   `json:"description"`
}
