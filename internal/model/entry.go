package model

import (
	"github.com/google/uuid"
	"github.com/handiism/listing-renamer/internal/handle"
)

// SlotCount is the fixed number of image slots.
const SlotCount = 10

// Entry is the occupant of one slot.
//
// An Entry has no identity for naming purposes beyond the slot it sits in;
// ID exists so asynchronous work (preview generation) can tell whether the
// slot it was started for still holds the same entry.
type Entry struct {
	// ID is a stable identifier assigned when the entry is created.
	ID uuid.UUID

	// File is the source file.
	File File

	// Ext is the lower-cased extension used in the exported filename.
	Ext string

	// Preview is the thumbnail handle, zero until generated.
	Preview handle.Handle

	// PreviewPending is true while the thumbnail is being generated.
	PreviewPending bool

	// PreviewErr is set when the thumbnail could not be generated.
	// The file is still usable for export.
	PreviewErr bool
}

// NewEntry creates an Entry with a fresh identifier and a pending preview.
func NewEntry(f File) *Entry {
	return &Entry{
		ID:             uuid.New(),
		File:           f,
		Ext:            Extension(f.Name()),
		PreviewPending: true,
	}
}
