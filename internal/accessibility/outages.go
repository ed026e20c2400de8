package accessibility

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/accessnyc/liftwatch/internal/models"
)

// outageTimestampFormat matches the outage feed's timestamps, which
// carry no zone and are read as UTC.
const outageTimestampFormat = "01/02/2006 03:04:05 PM"

// outageRow is the documented subset of the outage feed schema.
type outageRow struct {
	Equipment        string `json:"equipment"`
	EquipmentType    string `json:"equipmenttype"`
	Reason           string `json:"reason"`
	OutageDate       string `json:"outagedate"`
	EstimatedReturn  string `json:"estimatedreturntoservice"`
	IsUpcomingOutage string `json:"isupcomingoutage"`
}

// NormalizeOutages converts raw outage feed records into Outage
// entities with activity computed against now. Nothing is filtered
// here: callers that only want active outages select on IsActive.
func NormalizeOutages(records []json.RawMessage, now time.Time) []models.Outage {
	outages := make([]models.Outage, 0, len(records))
	for _, rec := range records {
		var row outageRow
		if err := json.Unmarshal(rec, &row); err != nil {
			continue
		}

		isUpcoming := strings.ToUpper(row.IsUpcomingOutage) == "Y"
		outageDate, hasDate := parseFeedTime(row.OutageDate)

		// An upcoming outage only counts as inactive when its start is
		// provably in the future; an unparseable date cannot suppress it.
		active := true
		if isUpcoming && hasDate && outageDate.After(now) {
			active = false
		}

		outages = append(outages, models.Outage{
			EquipmentID:     strings.TrimSpace(row.Equipment),
			EquipmentType:   strings.ToUpper(strings.TrimSpace(row.EquipmentType)),
			Reason:          strings.TrimSpace(row.Reason),
			OutageDate:      row.OutageDate,
			EstimatedReturn: row.EstimatedReturn,
			IsUpcoming:      isUpcoming,
			IsActive:        active,
		})
	}
	return outages
}

// parseFeedTime parses a feed timestamp, reporting failure as absence
// rather than an error.
func parseFeedTime(s string) (time.Time, bool) {
	t, err := time.Parse(outageTimestampFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
