package pipeline

import (
	"testing"
	"time"

	"github.com/prithvisense/thermal-monitor/internal/models"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		name        string
		temperature float64
		expected    models.Status
	}{
		{name: "well below medium", temperature: 22.0, expected: models.StatusSafe},
		{name: "exactly 36.0 is safe", temperature: 36.0, expected: models.StatusSafe},
		{name: "just above 36.0 is medium", temperature: 36.1, expected: models.StatusMedium},
		{name: "exactly 40.0 is medium", temperature: 40.0, expected: models.StatusMedium},
		{name: "just above 40.0 is hotspot", temperature: 40.0001, expected: models.StatusHotspot},
		{name: "40.1 is hotspot", temperature: 40.1, expected: models.StatusHotspot},
		{name: "extreme heat", temperature: 55.0, expected: models.StatusHotspot},
		{name: "below freezing", temperature: -5.0, expected: models.StatusSafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.temperature)
			if result != tt.expected {
				t.Errorf("Classify(%v) = %v, expected %v", tt.temperature, result, tt.expected)
			}
		})
	}
}

func TestDeriveSnapshot_EmptySeries(t *testing.T) {
	catalog := models.Catalog{"A", "B"}

	snapshots := DeriveSnapshot(nil, catalog)

	if len(snapshots) != 2 {
		t.Fatalf("len(snapshots) = %d, want 2", len(snapshots))
	}
	for i, zone := range catalog {
		snap := snapshots[i]
		if snap.Zone != zone {
			t.Errorf("snapshots[%d].Zone = %v, want %v", i, snap.Zone, zone)
		}
		if snap.HasData() {
			t.Errorf("snapshots[%d] should have no data", i)
		}
		if snap.Temperature != nil || snap.UVIndex != nil || snap.Timestamp != nil {
			t.Errorf("snapshots[%d] should have all fields absent", i)
		}
		if snap.Status != "" {
			t.Errorf("snapshots[%d].Status = %v, want absent", i, snap.Status)
		}
	}
}

func TestDeriveSnapshot_LatestWinsAndCatalogOrder(t *testing.T) {
	catalog := models.Catalog{"A", "B"}
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	series := []models.Reading{
		{Timestamp: day.Add(9 * time.Hour), Zone: "A", Temperature: 38, UVIndex: 4},
		{Timestamp: day.Add(10 * time.Hour), Zone: "A", Temperature: 41, UVIndex: 5},
		{Timestamp: day.Add(9*time.Hour + 30*time.Minute), Zone: "B", Temperature: 30, UVIndex: 2},
	}

	snapshots := DeriveSnapshot(series, catalog)

	if len(snapshots) != 2 {
		t.Fatalf("len(snapshots) = %d, want 2", len(snapshots))
	}

	a := snapshots[0]
	if a.Zone != "A" || !a.HasData() {
		t.Fatalf("first snapshot should be zone A with data, got %+v", a)
	}
	if *a.Temperature != 41 || *a.UVIndex != 5 {
		t.Errorf("zone A kept temp=%v uv=%v, want the later reading (41, 5)", *a.Temperature, *a.UVIndex)
	}
	if a.Status != models.StatusHotspot {
		t.Errorf("zone A status = %v, want Hotspot", a.Status)
	}
	if !a.Timestamp.Equal(day.Add(10 * time.Hour)) {
		t.Errorf("zone A timestamp = %v, want 10:00", a.Timestamp)
	}

	b := snapshots[1]
	if b.Zone != "B" || !b.HasData() {
		t.Fatalf("second snapshot should be zone B with data, got %+v", b)
	}
	if *b.Temperature != 30 || *b.UVIndex != 2 {
		t.Errorf("zone B temp=%v uv=%v, want (30, 2)", *b.Temperature, *b.UVIndex)
	}
	if b.Status != models.StatusSafe {
		t.Errorf("zone B status = %v, want Safe", b.Status)
	}
}

func TestDeriveSnapshot_TieBrokenByArrivalOrder(t *testing.T) {
	catalog := models.Catalog{"A"}
	ts := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	series := []models.Reading{
		{Timestamp: ts, Zone: "A", Temperature: 20, UVIndex: 1},
		{Timestamp: ts, Zone: "A", Temperature: 25, UVIndex: 2},
	}

	snapshots := DeriveSnapshot(series, catalog)

	if *snapshots[0].Temperature != 25 {
		t.Errorf("tied timestamps: temp = %v, want the later arrival (25)", *snapshots[0].Temperature)
	}
}

func TestDeriveSnapshot_UnknownZonesDropped(t *testing.T) {
	catalog := models.Catalog{"A"}
	ts := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	series := []models.Reading{
		{Timestamp: ts, Zone: "A", Temperature: 30, UVIndex: 3},
		{Timestamp: ts, Zone: "Rogue Zone", Temperature: 99, UVIndex: 9},
	}

	snapshots := DeriveSnapshot(series, catalog)

	if len(snapshots) != 1 {
		t.Fatalf("len(snapshots) = %d, want 1 (unknown zones dropped)", len(snapshots))
	}
	if snapshots[0].Zone != "A" {
		t.Errorf("snapshot zone = %v, want A", snapshots[0].Zone)
	}
}

func TestDeriveSnapshot_InputOrderIrrelevant(t *testing.T) {
	catalog := models.DefaultCatalog()
	ts := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	// Readings arrive in reverse catalog order for half the zones only.
	var series []models.Reading
	for i := len(catalog) - 1; i >= 0; i -= 2 {
		series = append(series, models.Reading{Timestamp: ts, Zone: catalog[i], Temperature: 30, UVIndex: 3})
	}

	snapshots := DeriveSnapshot(series, catalog)

	if len(snapshots) != len(catalog) {
		t.Fatalf("len(snapshots) = %d, want %d", len(snapshots), len(catalog))
	}
	for i, zone := range catalog {
		if snapshots[i].Zone != zone {
			t.Errorf("snapshots[%d].Zone = %v, want %v (catalog order)", i, snapshots[i].Zone, zone)
		}
	}
}
