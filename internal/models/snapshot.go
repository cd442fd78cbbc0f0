package models

import "time"

// Status is the derived classification for a zone's current temperature.
type Status string

const (
	StatusSafe    Status = "Safe"
	StatusMedium  Status = "Medium"
	StatusHotspot Status = "Hotspot"
)

// ZoneSnapshot is the most-recent-per-zone reduced view used for display.
// Temperature, UVIndex and Timestamp are nil when the zone had no reading in
// the series; Status is only set when a temperature is present.
type ZoneSnapshot struct {
	Zone        Zone       `json:"zone"`
	Temperature *float64   `json:"temp,omitempty"`
	UVIndex     *float64   `json:"uv,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Status      Status     `json:"status,omitempty"`
}

// HasData reports whether the zone had at least one reading.
func (s *ZoneSnapshot) HasData() bool {
	return s.Temperature != nil
}
