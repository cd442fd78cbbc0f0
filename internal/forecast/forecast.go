package forecast

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/prithvisense/thermal-monitor/internal/models"
)

// Features is the input vector for a point forecast: calendar position plus a
// one-hot zone indicator.
type Features struct {
	Hour      int
	DayOfWeek int
	Month     int
	Zone      models.Zone
}

// FeaturesAt builds the feature set for a zone at the given instant.
func FeaturesAt(ts time.Time, zone models.Zone) Features {
	return Features{
		Hour:      ts.Hour(),
		DayOfWeek: int(ts.Weekday()),
		Month:     int(ts.Month()),
		Zone:      zone,
	}
}

// Vector flattens the features against a catalog: hour, day-of-week, month,
// then one indicator per catalog zone.
func (f Features) Vector(catalog models.Catalog) []float64 {
	vec := make([]float64, 0, 3+len(catalog))
	vec = append(vec, float64(f.Hour), float64(f.DayOfWeek), float64(f.Month))
	for _, z := range catalog {
		if z == f.Zone {
			vec = append(vec, 1)
		} else {
			vec = append(vec, 0)
		}
	}
	return vec
}

// Prediction is the single output contract for every forecast backend: both
// temperature and UV, always. No backend returns a bare scalar.
type Prediction struct {
	Temperature float64 `json:"temp"`
	UVIndex     float64 `json:"uv"`
}

// Forecaster produces a point forecast from a feature set.
type Forecaster interface {
	Predict(f Features) (Prediction, error)
}

// Perturbation bounds for the heuristic fallback, matching the demo
// random-walk: temp moves within roughly ±0.9 °C of the last known value,
// UV within ±0.45 and never below zero.
const (
	heuristicTempSpread = 1.8
	heuristicUVSpread   = 0.9
	heuristicSkew       = 0.45
)

// Heuristic forecasts by perturbing the last known value per zone. It is the
// fallback used when no model artifact is available or the artifact errors.
type Heuristic struct {
	latest map[models.Zone]models.ZoneSnapshot
}

// NewHeuristic builds a heuristic forecaster over the current snapshot set.
func NewHeuristic(snapshots []models.ZoneSnapshot) *Heuristic {
	latest := make(map[models.Zone]models.ZoneSnapshot, len(snapshots))
	for _, s := range snapshots {
		latest[s.Zone] = s
	}
	return &Heuristic{latest: latest}
}

// Predict returns last known value + small random perturbation for the zone.
func (h *Heuristic) Predict(f Features) (Prediction, error) {
	snap, ok := h.latest[f.Zone]
	if !ok || !snap.HasData() {
		return Prediction{}, fmt.Errorf("no current reading for zone %q", f.Zone)
	}

	temp := *snap.Temperature + (rand.Float64()-heuristicSkew)*heuristicTempSpread
	uv := math.Max(0, *snap.UVIndex+(rand.Float64()-heuristicSkew)*heuristicUVSpread)

	return Prediction{Temperature: temp, UVIndex: uv}, nil
}
