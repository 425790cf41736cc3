package settlement

import "sort"

// TrioBox is a trio box over a set of slots
type TrioBox []int

// NewTrioBox builds a box from the given slots, sorted and de-duplicated
func NewTrioBox(slots []int) TrioBox {
	seen := make(map[int]struct{}, len(slots))
	box := make(TrioBox, 0, len(slots))
	for _, s := range slots {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		box = append(box, s)
	}
	sort.Ints(box)
	return box
}

// Combinations is the number of trio tickets in the box
func (b TrioBox) Combinations() int64 {
	n := int64(len(b))
	if n < 3 {
		return 0
	}
	return n * (n - 1) * (n - 2) / 6
}

// Hits reports whether all three finishers are in the box
func (b TrioBox) Hits(finish []int) bool {
	if len(finish) < 3 {
		return false
	}
	for _, slot := range finish[:3] {
		if !b.contains(slot) {
			return false
		}
	}
	return true
}

func (b TrioBox) contains(slot int) bool {
	i := sort.SearchInts(b, slot)
	return i < len(b) && b[i] == slot
}
