// Package accessibility aggregates the MTA elevator and escalator feeds
// into station, equipment, and outage entities.
package accessibility

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/accessnyc/liftwatch/internal/models"
)

// equipmentRow is the documented subset of the equipment feed schema.
// We use stationcomplexid as the station ID for our API.
type equipmentRow struct {
	Station          string  `json:"station"`
	TrainNo          string  `json:"trainno"`
	EquipmentNo      string  `json:"equipmentno"`
	EquipmentType    string  `json:"equipmenttype"`
	StationComplexID string  `json:"stationcomplexid"`
	IsActive         *string `json:"isactive"`
}

// NormalizeEquipment builds the station registry and equipment index
// from raw equipment feed records in a single pass. Rows that cannot be
// joined (missing complex ID, station name, or equipment ID) are
// skipped, as are rows whose isactive flag is present and not "Y". A
// row with an unrecognized equipment type still creates its station but
// contributes nothing to the index, so every station ID appears in the
// index and vice versa.
func NormalizeEquipment(records []json.RawMessage) ([]models.Station, models.EquipmentIndex) {
	names := make(map[string]string)
	lines := make(map[string]map[string]bool)
	elevators := make(map[string]map[string]bool)
	escalators := make(map[string]map[string]bool)

	for _, rec := range records {
		var row equipmentRow
		if err := json.Unmarshal(rec, &row); err != nil {
			continue
		}
		if row.IsActive != nil && strings.ToUpper(*row.IsActive) != "Y" {
			continue
		}

		complexID := strings.TrimSpace(row.StationComplexID)
		name := strings.TrimSpace(row.Station)
		equipID := strings.TrimSpace(row.EquipmentNo)
		if complexID == "" || name == "" || equipID == "" {
			continue
		}

		if _, seen := names[complexID]; !seen {
			// Name comes from the first row for the complex.
			names[complexID] = name
			lines[complexID] = make(map[string]bool)
			elevators[complexID] = make(map[string]bool)
			escalators[complexID] = make(map[string]bool)
		}
		for _, line := range splitLines(row.TrainNo) {
			lines[complexID][line] = true
		}

		switch strings.ToUpper(strings.TrimSpace(row.EquipmentType)) {
		case "EL":
			elevators[complexID][equipID] = true
		case "ES":
			escalators[complexID][equipID] = true
		}
	}

	stations := make([]models.Station, 0, len(names))
	index := make(models.EquipmentIndex, len(names))
	for complexID, name := range names {
		stations = append(stations, models.Station{
			ID:    complexID,
			Name:  name,
			Lines: sortedKeys(lines[complexID]),
		})
		index[complexID] = models.EquipmentSets{
			Elevators:  sortedKeys(elevators[complexID]),
			Escalators: sortedKeys(escalators[complexID]),
		}
	}

	sort.Slice(stations, func(i, j int) bool {
		return strings.ToLower(stations[i].Name) < strings.ToLower(stations[j].Name)
	})
	return stations, index
}

// splitLines splits a trainno value like "4/5/6" into line codes,
// trimming whitespace and dropping empty segments.
func splitLines(trainNo string) []string {
	var out []string
	for _, part := range strings.Split(trainNo, "/") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
