package resource

// Storage cap schedule. Level 0 already grants a positive floor so a fresh
// kingdom can stockpile before its first warehouse upgrade.
const (
	storageCapBase     = 500
	storageCapPerLevel = 300
)

// StorageCap returns the per-resource holding limit for a warehouse level.
// Monotonic non-decreasing in level.
func StorageCap(warehouseLevel int) int {
	if warehouseLevel < 0 {
		warehouseLevel = 0
	}
	return storageCapBase + storageCapPerLevel*warehouseLevel
}

// ClampToStorage returns a new stockpile with every storable resource clamped
// to the warehouse cap, together with the wasted surplus per resource.
// Population is floored to a non-negative integer and is never capped.
func (s Stockpile) ClampToStorage(warehouseLevel int) (Stockpile, Delta) {
	cap := StorageCap(warehouseLevel)
	out := s.Clone()
	wasted := Delta{}
	for _, k := range Kinds {
		if !Storable(k) {
			if out[k] < 0 {
				out[k] = 0
			}
			continue
		}
		if out[k] > cap {
			wasted[k] = out[k] - cap
			out[k] = cap
		}
	}
	return out, wasted
}
