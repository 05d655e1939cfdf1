package slots

import (
	"github.com/handiism/listing-renamer/internal/model"
)

// SlotView is a read-only copy of one slot for rendering.
type SlotView struct {
	// Index is the physical slot index.
	Index int

	// Entry is a copy of the occupant, nil for an empty slot.
	Entry *model.Entry

	// Position is the rank among filled slots, -1 for an empty slot.
	Position int

	// Dragging is true when this slot is the recorded drag source.
	Dragging bool
}

// Filled reports whether the slot holds an entry.
func (v SlotView) Filled() bool {
	return v.Entry != nil
}

// TypeToken returns MAIN / PTxx for filled slots and "" otherwise.
func (v SlotView) TypeToken() string {
	if v.Entry == nil {
		return ""
	}
	return model.TypeToken(v.Position)
}

// Snapshot returns a copy of every slot.
func (s *Store) Snapshot() [model.SlotCount]SlotView {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out [model.SlotCount]SlotView
	pos := 0
	for i, e := range s.slots {
		out[i] = SlotView{Index: i, Position: -1, Dragging: i == s.dragFrom}
		if e == nil {
			continue
		}
		cp := *e
		out[i].Entry = &cp
		out[i].Position = pos
		pos++
	}
	return out
}

// Filled returns copies of the occupied slots' entries in slot order. The
// index of an entry in the result is its filled position.
func (s *Store) Filled() []model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Entry
	for _, e := range s.slots {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out
}

// Count returns the number of occupied slots.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.slots {
		if e != nil {
			n++
		}
	}
	return n
}

// FileNames returns the export name of every filled slot in filled order.
func (s *Store) FileNames(p model.Params) []string {
	filled := s.Filled()
	names := make([]string, len(filled))
	for i, e := range filled {
		names[i] = model.FileName(i, e.Ext, p)
	}
	return names
}
