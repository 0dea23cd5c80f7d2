package resource

// Kind identifies one of the eight tracked resources.
type Kind string

const (
	Gold       Kind = "GOLD"
	Population Kind = "POPULATION"
	Wood       Kind = "WOOD"
	Stone      Kind = "STONE"
	Iron       Kind = "IRON"
	Wool       Kind = "WOOL"
	Leather    Kind = "LEATHER"
	Horses     Kind = "HORSES"
)

// Kinds is the canonical iteration order for all resource operations.
// Every loop over resources walks this slice so results are deterministic.
var Kinds = []Kind{Gold, Population, Wood, Stone, Iron, Wool, Leather, Horses}

// Storable reports whether a resource is held in warehouses and therefore
// subject to storage caps. Population is a derived headcount, never banked.
func Storable(k Kind) bool {
	return k != Population
}

// Delta is a partial signed mapping over resource kinds. Absent keys are
// treated as zero. Used for costs (positive amounts) and yields.
type Delta map[Kind]int

// Stockpile holds a faction's current resource amounts.
type Stockpile map[Kind]int

// Clone returns an independent copy of the stockpile.
func (s Stockpile) Clone() Stockpile {
	out := make(Stockpile, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Get returns the amount for a kind, zero if absent.
func (s Stockpile) Get(k Kind) int {
	return s[k]
}

// Add returns a new stockpile with the delta applied. The receiver is not
// modified.
func (s Stockpile) Add(d Delta) Stockpile {
	out := s.Clone()
	for _, k := range Kinds {
		if v, ok := d[k]; ok {
			out[k] += v
		}
	}
	return out
}

// Subtract returns a new stockpile with the delta removed.
func (s Stockpile) Subtract(d Delta) Stockpile {
	out := s.Clone()
	for _, k := range Kinds {
		if v, ok := d[k]; ok {
			out[k] -= v
		}
	}
	return out
}

// CanAfford reports whether every key in cost is covered by the stockpile.
// Keys absent from the cost count as zero.
func (s Stockpile) CanAfford(cost Delta) bool {
	for _, k := range Kinds {
		if v, ok := cost[k]; ok && s[k] < v {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the delta.
func (d Delta) Clone() Delta {
	out := make(Delta, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Merge returns a new delta combining both operands key-wise.
func (d Delta) Merge(other Delta) Delta {
	out := d.Clone()
	for _, k := range Kinds {
		if v, ok := other[k]; ok {
			out[k] += v
		}
	}
	return out
}

// Scale returns a new delta with every amount multiplied by n.
func (d Delta) Scale(n int) Delta {
	out := make(Delta, len(d))
	for k, v := range d {
		out[k] = v * n
	}
	return out
}

// IsZero reports whether the delta carries no nonzero amounts.
func (d Delta) IsZero() bool {
	for _, v := range d {
		if v != 0 {
			return false
		}
	}
	return true
}
