// Package insights derives the "actionable insights" panel from a snapshot
// set and per-zone statistics from a reading series.
package insights

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/prithvisense/thermal-monitor/internal/models"
)

// Summary partitions the current snapshot set by risk. Zones without data are
// counted in neither bucket.
type Summary struct {
	Hotspots []models.Zone `json:"hotspots"`
	Moderate []models.Zone `json:"moderate"`
	AllSafe  bool          `json:"all_safe"`
	Message  string        `json:"message"`
}

// Summarize builds the risk summary from a classified snapshot set.
func Summarize(snapshots []models.ZoneSnapshot) Summary {
	var summary Summary
	for _, s := range snapshots {
		switch s.Status {
		case models.StatusHotspot:
			summary.Hotspots = append(summary.Hotspots, s.Zone)
		case models.StatusMedium:
			summary.Moderate = append(summary.Moderate, s.Zone)
		}
	}

	switch {
	case len(summary.Hotspots) > 0:
		summary.Message = fmt.Sprintf("IMMEDIATE ACTION — Hotspots: %s", joinZones(summary.Hotspots))
	case len(summary.Moderate) > 0:
		summary.Message = fmt.Sprintf("Moderate risk: %s", joinZones(summary.Moderate))
	default:
		summary.AllSafe = true
		summary.Message = "All zones safe — no immediate hotspots."
	}

	return summary
}

func joinZones(zones []models.Zone) string {
	names := make([]string, len(zones))
	for i, z := range zones {
		names[i] = string(z)
	}
	return strings.Join(names, ", ")
}

// ZoneStats summarizes a zone's temperature and UV over the current series.
type ZoneStats struct {
	Zone        models.Zone `json:"zone"`
	Samples     int         `json:"samples"`
	MinTemp     float64     `json:"min_temp"`
	MaxTemp     float64     `json:"max_temp"`
	MeanTemp    float64     `json:"mean_temp"`
	StdDevTemp  float64     `json:"stddev_temp"`
	MeanUVIndex float64     `json:"mean_uv"`
}

// SeriesStats computes per-zone statistics over the series, one entry per
// catalog zone in catalog order. Zones with no samples report zero values.
func SeriesStats(series []models.Reading, catalog models.Catalog) []ZoneStats {
	temps := make(map[models.Zone]stats.Float64Data, len(catalog))
	uvs := make(map[models.Zone]stats.Float64Data, len(catalog))
	for _, r := range series {
		if !catalog.Contains(r.Zone) {
			continue
		}
		temps[r.Zone] = append(temps[r.Zone], r.Temperature)
		uvs[r.Zone] = append(uvs[r.Zone], r.UVIndex)
	}

	result := make([]ZoneStats, 0, len(catalog))
	for _, zone := range catalog {
		zs := ZoneStats{Zone: zone, Samples: len(temps[zone])}
		if zs.Samples > 0 {
			zs.MinTemp, _ = stats.Min(temps[zone])
			zs.MaxTemp, _ = stats.Max(temps[zone])
			zs.MeanTemp, _ = stats.Mean(temps[zone])
			zs.StdDevTemp, _ = stats.StandardDeviation(temps[zone])
			zs.MeanUVIndex, _ = stats.Mean(uvs[zone])
		}
		result = append(result, zs)
	}
	return result
}
