package accessibility

import (
	"time"

	"github.com/accessnyc/liftwatch/internal/models"
)

// Operational status values reported per equipment kind.
const (
	StatusOperational  = "Operational"
	StatusOutOfService = "Out of Service"
)

// maxAlerts caps the alert list on a status response. It is a display
// limit, not a filter: statuses are still computed from every outage.
const maxAlerts = 12

// StatusFor joins the equipment index and outage list for one station.
// A station missing from the index has no equipment and therefore
// reports operational with no alerts. Active outages against either
// equipment set flip that set's status; the alert list carries every
// outage touching the station, active or upcoming, in feed order.
func StatusFor(stationID string, index models.EquipmentIndex, outages []models.Outage, now time.Time) models.StationStatus {
	sets := index[stationID]
	elevatorIDs := toSet(sets.Elevators)
	escalatorIDs := toSet(sets.Escalators)

	elevatorStatus := StatusOperational
	escalatorStatus := StatusOperational
	alerts := make([]models.Alert, 0, maxAlerts)

	for _, o := range outages {
		inElevators := elevatorIDs[o.EquipmentID]
		inEscalators := escalatorIDs[o.EquipmentID]
		if !inElevators && !inEscalators {
			continue
		}

		if o.IsActive {
			if inElevators {
				elevatorStatus = StatusOutOfService
			}
			if inEscalators {
				escalatorStatus = StatusOutOfService
			}
		}

		if len(alerts) < maxAlerts {
			alerts = append(alerts, models.Alert{
				EquipmentID:     o.EquipmentID,
				EquipmentType:   o.EquipmentType,
				Reason:          o.Reason,
				OutageDate:      o.OutageDate,
				EstimatedReturn: o.EstimatedReturn,
				IsUpcoming:      o.IsUpcoming,
				IsActive:        o.IsActive,
			})
		}
	}

	return models.StationStatus{
		ElevatorStatus:  elevatorStatus,
		EscalatorStatus: escalatorStatus,
		Alerts:          alerts,
		LastUpdated:     now.UTC().Format(time.RFC3339),
	}
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
