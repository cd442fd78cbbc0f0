package models

import "testing"

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	if len(catalog) != 10 {
		t.Fatalf("len(catalog) = %d, want 10", len(catalog))
	}
	if catalog[0] != "Main Parking Lot" {
		t.Errorf("catalog[0] = %v, want Main Parking Lot", catalog[0])
	}
	if catalog[9] != "Food Court" {
		t.Errorf("catalog[9] = %v, want Food Court", catalog[9])
	}

	seen := make(map[Zone]bool)
	for _, z := range catalog {
		if seen[z] {
			t.Errorf("duplicate zone %v", z)
		}
		seen[z] = true
	}
}

func TestCatalog_Contains(t *testing.T) {
	catalog := DefaultCatalog()

	if !catalog.Contains("Green Quad") {
		t.Error("Contains(Green Quad) = false, want true")
	}
	if catalog.Contains("Rogue Zone") {
		t.Error("Contains(Rogue Zone) = true, want false")
	}
}

func TestCatalog_Index(t *testing.T) {
	catalog := Catalog{"A", "B", "C"}

	if got := catalog.Index("B"); got != 1 {
		t.Errorf("Index(B) = %d, want 1", got)
	}
	if got := catalog.Index("Z"); got != -1 {
		t.Errorf("Index(Z) = %d, want -1", got)
	}
}
