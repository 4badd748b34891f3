package entity

import "github.com/samdwyer/stranded/internal/world"

// Inventory counts carried resources. Counts never go negative.
type Inventory map[world.Kind]int

// Count returns the number of kind carried.
func (inv Inventory) Count(kind world.Kind) int {
	return inv[kind]
}

// Add increases kind by n. Non-positive n is ignored.
func (inv Inventory) Add(kind world.Kind, n int) {
	if n <= 0 {
		return
	}
	inv[kind] += n
}

// Has reports whether the inventory covers every amount in cost.
func (inv Inventory) Has(cost map[world.Kind]int) bool {
	for kind, n := range cost {
		if inv[kind] < n {
			return false
		}
	}
	return true
}

// Spend removes cost if the inventory covers all of it. Nothing is removed
// otherwise.
func (inv Inventory) Spend(cost map[world.Kind]int) bool {
	if !inv.Has(cost) {
		return false
	}
	for kind, n := range cost {
		if n > 0 {
			inv[kind] -= n
		}
	}
	return true
}

// Missing returns how much of each cost kind is still lacking.
// Kinds already covered are omitted.
func (inv Inventory) Missing(cost map[world.Kind]int) map[world.Kind]int {
	out := make(map[world.Kind]int)
	for kind, n := range cost {
		if lack := n - inv[kind]; lack > 0 {
			out[kind] = lack
		}
	}
	return out
}

// Clone returns an independent copy.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}
