package pipeline

import (
	"github.com/prithvisense/thermal-monitor/internal/models"
)

// Classification thresholds in °C. Fixed domain constants, not configurable.
const (
	hotspotThreshold = 40.0
	mediumThreshold  = 36.0
)

// Classify derives the status for a temperature. Boundaries are exact:
// 36.0 is Safe, 40.0 is Medium, anything above 40.0 is a Hotspot.
func Classify(temperature float64) models.Status {
	switch {
	case temperature > hotspotThreshold:
		return models.StatusHotspot
	case temperature > mediumThreshold:
		return models.StatusMedium
	default:
		return models.StatusSafe
	}
}

// DeriveSnapshot reduces a reading series to exactly one snapshot per catalog
// zone, in catalog order. Zones with no readings get an absent-field snapshot;
// readings for zones outside the catalog are dropped. Within a zone the
// reading with the maximum timestamp wins, ties going to the later arrival.
func DeriveSnapshot(series []models.Reading, catalog models.Catalog) []models.ZoneSnapshot {
	latest := make(map[models.Zone]models.Reading, len(catalog))
	for _, r := range series {
		current, seen := latest[r.Zone]
		if !seen || !r.Timestamp.Before(current.Timestamp) {
			latest[r.Zone] = r
		}
	}

	snapshots := make([]models.ZoneSnapshot, 0, len(catalog))
	for _, zone := range catalog {
		snap := models.ZoneSnapshot{Zone: zone}
		if r, ok := latest[zone]; ok {
			temp := r.Temperature
			uv := r.UVIndex
			ts := r.Timestamp
			snap.Temperature = &temp
			snap.UVIndex = &uv
			snap.Timestamp = &ts
			snap.Status = Classify(r.Temperature)
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots
}
