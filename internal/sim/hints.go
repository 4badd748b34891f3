package sim

import "github.com/zyedidia/generic/mapset"

// hintLog is an ordered list of player hints without duplicates.
type hintLog struct {
	order []string
	seen  mapset.Set[string]
}

func newHintLog(initial ...string) *hintLog {
	h := &hintLog{seen: mapset.New[string]()}
	for _, msg := range initial {
		h.add(msg)
	}
	return h
}

// add appends msg unless it was shown before.
func (h *hintLog) add(msg string) bool {
	if h.seen.Has(msg) {
		return false
	}
	h.seen.Put(msg)
	h.order = append(h.order, msg)
	return true
}

func (h *hintLog) list() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}
