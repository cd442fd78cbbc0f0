package pipeline

import (
	"math"
	"math/rand"
	"time"

	"github.com/prithvisense/thermal-monitor/internal/models"
)

// Shape constants for the synthetic series. The curve is deterministic given
// the same inputs; only the noise varies run to run. This is demo data for a
// dashboard, not a simulation.
const (
	seasonalBase      = 26.0
	seasonalAmplitude = 6.0
	diurnalAmplitude  = 6.0
	// Shifting the diurnal sine by 9 hours puts its peak mid-afternoon.
	diurnalPeakShift = 9
	uvAmplitude      = 9.0
	tempNoiseSigma   = 0.6
	uvNoiseSigma     = 0.5
)

// zoneOffsets maps zones to a constant synthetic temperature offset in °C.
// Sun-exposed hardscape runs hot, shaded and green areas run cool, everything
// else sits on the baseline. Zones not listed here get no offset.
var zoneOffsets = map[models.Zone]float64{
	"Main Parking Lot": 3,
	"Sports Stadium":   3,
	"Green Quad":       -2,
	"Central Library":  -2,
}

// GenerateFallbackSeries synthesizes exactly hours readings per catalog zone,
// one per whole hour stepping back from now (inclusive of now's hour). It is
// used whenever the real data source is unavailable and always succeeds.
func GenerateFallbackSeries(catalog models.Catalog, hours int, now time.Time) []models.Reading {
	start := now.Truncate(time.Hour)
	readings := make([]models.Reading, 0, hours*len(catalog))

	for _, zone := range catalog {
		offset := zoneOffsets[zone]
		for h := 0; h < hours; h++ {
			ts := start.Add(-time.Duration(h) * time.Hour)

			seasonal := seasonalBase + seasonalAmplitude*math.Sin(float64(ts.YearDay()%365)/365.0*2*math.Pi)
			diurnal := diurnalAmplitude * math.Sin(float64(ts.Hour()-diurnalPeakShift)/24.0*2*math.Pi)
			temp := roundTenth(seasonal + diurnal + offset + rand.NormFloat64()*tempNoiseSigma)

			// UV follows the same diurnal cycle and is clipped at zero.
			uv := uvAmplitude*math.Sin(float64(ts.Hour()-diurnalPeakShift)/24.0*2*math.Pi) + rand.NormFloat64()*uvNoiseSigma
			uv = roundTenth(math.Max(0, uv))

			readings = append(readings, models.Reading{
				Timestamp:   ts,
				Zone:        zone,
				Temperature: temp,
				UVIndex:     uv,
			})
		}
	}

	return readings
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
