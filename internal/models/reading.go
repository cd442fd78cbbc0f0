package models

import (
	"fmt"
	"math"
	"time"
)

// Reading represents one timestamped temperature/UV observation for a zone.
// A Reading is immutable once produced.
type Reading struct {
	Timestamp   time.Time `json:"timestamp"`
	Zone        Zone      `json:"zone"`
	Temperature float64   `json:"temp"`
	UVIndex     float64   `json:"uv"`
}

// IsValid checks that the reading carries a zone, an absolute instant and
// finite numeric values. Temperature has no hard bound (roughly -10..60 °C is
// expected on campus), so out-of-range values are kept; non-numbers are not.
func (r *Reading) IsValid() bool {
	if r.Zone == "" {
		return false
	}
	if r.Timestamp.IsZero() {
		return false
	}
	if math.IsNaN(r.Temperature) || math.IsInf(r.Temperature, 0) {
		return false
	}
	if math.IsNaN(r.UVIndex) || math.IsInf(r.UVIndex, 0) {
		return false
	}
	return true
}

// get the reading as a string
func (r *Reading) String() string {
	return fmt.Sprintf("Zone: %s, Timestamp: %s, Temp: %.1f°C, UV: %.1f",
		r.Zone,
		r.Timestamp.Format(time.RFC3339),
		r.Temperature,
		r.UVIndex)
}

// NewReading creates a new Reading for a zone at the given instant
func NewReading(zone Zone, ts time.Time, temperature, uvIndex float64) *Reading {
	return &Reading{
		Timestamp:   ts,
		Zone:        zone,
		Temperature: temperature,
		UVIndex:     uvIndex,
	}
}

// Copy returns a deep copy of the Reading
func (r *Reading) Copy() *Reading {
	if r == nil {
		return nil
	}
	return &Reading{
		Timestamp:   r.Timestamp,
		Zone:        r.Zone,
		Temperature: r.Temperature,
		UVIndex:     r.UVIndex,
	}
}
