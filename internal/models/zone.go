package models

// Zone identifies one of the fixed campus locations tracked by the system.
type Zone string

// Catalog is an ordered set of zones. The order is an invariant: every
// derived per-zone view follows catalog order regardless of the order
// readings arrived in.
type Catalog []Zone

// DefaultCatalog returns the ten campus zones in canonical order.
func DefaultCatalog() Catalog {
	return Catalog{
		"Main Parking Lot",
		"Academic Block A",
		"Academic Block B",
		"Boys Hostel 1",
		"Boys Hostel 2",
		"Girls Hostel",
		"Sports Stadium",
		"Central Library",
		"Green Quad",
		"Food Court",
	}
}

// Contains reports whether the catalog includes the given zone.
func (c Catalog) Contains(zone Zone) bool {
	for _, z := range c {
		if z == zone {
			return true
		}
	}
	return false
}

// Index returns the position of the zone in the catalog, or -1.
func (c Catalog) Index(zone Zone) int {
	for i, z := range c {
		if z == zone {
			return i
		}
	}
	return -1
}
