package slots

import (
	"github.com/handiism/listing-renamer/internal/model"
)

// DropOutcome says how a drop was interpreted.
type DropOutcome int

const (
	// DropIgnored means nothing changed.
	DropIgnored DropOutcome = iota

	// DropSwapped means a reorder drag swapped two slots.
	DropSwapped

	// DropIngested means external files were added at the target slot.
	DropIngested
)

// DragStart records slot as the source of a reorder drag. Only occupied
// slots can be dragged.
func (s *Store) DragStart(slot int) bool {
	if !validIndex(slot) {
		return false
	}

	s.mu.Lock()
	ok := !s.closed && s.slots[slot] != nil
	if ok {
		s.dragFrom = slot
	}
	s.mu.Unlock()

	if ok {
		s.changed()
	}
	return ok
}

// DragSource returns the recorded drag source, or -1.
func (s *Store) DragSource() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragFrom
}

// CancelDrag forgets the recorded drag source.
func (s *Store) CancelDrag() {
	s.mu.Lock()
	had := s.dragFrom >= 0
	s.dragFrom = -1
	s.mu.Unlock()

	if had {
		s.changed()
	}
}

// Drop completes a drag onto target.
//
// With a recorded drag source the source and target swap contents. With no
// source, external files are ingested only when target is empty; a drop on
// an occupied slot is ignored. The drag source is forgotten either way.
func (s *Store) Drop(target int, external []model.File) (DropOutcome, AddResult) {
	if !validIndex(target) {
		s.CancelDrag()
		return DropIgnored, AddResult{}
	}

	s.mu.Lock()
	from := s.dragFrom
	s.dragFrom = -1
	occupied := s.slots[target] != nil
	s.mu.Unlock()

	if from >= 0 {
		if s.Swap(from, target) {
			return DropSwapped, AddResult{}
		}
		s.changed()
		return DropIgnored, AddResult{}
	}

	if len(external) == 0 || occupied {
		return DropIgnored, AddResult{}
	}

	res, err := s.AddFilesAt(target, external)
	if err != nil || len(res.Placed) == 0 {
		return DropIgnored, res
	}
	return DropIngested, res
}
