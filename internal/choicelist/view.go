package choicelist

import (
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
)

// Slot is one selectable position of a rendered list.
type Slot struct {
	Index   int      `json:"index"`
	Value   string   `json:"value"`
	Options []string `json:"options"`
}

// Blank reports whether the slot holds no selection.
func (s Slot) Blank() bool {
	return isBlank(s.Value)
}

// View renders l as one slot per value plus a single trailing blank slot
// while the list has room. Each slot offers the vocabulary minus the values
// chosen in the other slots, so a value can never be picked twice.
func View(l *List) []Slot {
	n := len(l.values)
	total := n
	if n < l.capacity {
		total++
	}

	slots := make([]Slot, 0, total)
	for i := 0; i < total; i++ {
		current := ""
		if i < n {
			current = l.values[i]
		}
		slots = append(slots, Slot{
			Index:   i,
			Value:   current,
			Options: l.optionsFor(current),
		})
	}
	return slots
}

// optionsFor lists the vocabulary entries a slot holding current may offer.
func (l *List) optionsFor(current string) []string {
	taken := make(map[string]struct{}, len(l.values))
	for _, v := range l.values {
		if v != current {
			taken[v] = struct{}{}
		}
	}

	opts := make([]string, 0, len(l.vocabulary)-len(taken))
	for _, v := range l.vocabulary {
		if _, ok := taken[v]; ok {
			continue
		}
		opts = append(opts, v)
	}
	return opts
}

// RawValues collects the slot values in display order, blanks included.
func RawValues(slots []Slot) []string {
	raw := make([]string, len(slots))
	for i, s := range slots {
		raw[i] = s.Value
	}
	return raw
}

// Edit applies a single slot change: the rendered slots are collected, slot
// index takes value (empty clears it) and the result is reconciled into l.
// The caller re-renders with View afterwards.
func Edit(l *List, index int, value string) error {
	slots := View(l)
	if index < 0 || index >= len(slots) {
		return errors.InvalidArgumentf("slot %d out of range, list shows %d slots", index, len(slots)).
			WithMeta("index", index)
	}

	raw := RawValues(slots)
	raw[index] = value
	l.Reconcile(raw)
	return nil
}
