package slots

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/handiism/listing-renamer/internal/handle"
	"github.com/handiism/listing-renamer/internal/logging"
	"github.com/handiism/listing-renamer/internal/metrics"
	"github.com/handiism/listing-renamer/internal/model"
	"go.uber.org/zap"
)

var (
	// ErrClosed is returned when the store is used after Close.
	ErrClosed = errors.New("slot store closed")

	// ErrSlotRange is returned for a slot index outside 0..SlotCount-1.
	ErrSlotRange = errors.New("slot index out of range")
)

// Previewer renders preview bytes for an image.
type Previewer interface {
	Thumbnail(ctx context.Context, data []byte, max int) ([]byte, error)
}

// Options configures a Store.
type Options struct {
	// Registry creates and releases preview handles. Required.
	Registry handle.Registry

	// Previewer renders thumbnails. A nil Previewer marks every preview as
	// failed, which keeps files usable but without a thumbnail.
	Previewer Previewer

	// PreviewMaxSize is the thumbnail bounding box in pixels.
	PreviewMaxSize int

	// MaxConcurrentPreviews bounds preview generation per batch.
	MaxConcurrentPreviews int

	// Logger receives structured diagnostics. Nil means no logging.
	Logger *zap.Logger

	// OnChange is called after every state change, outside the store lock.
	OnChange func()
}

// AddResult reports what happened to a batch of candidate files.
type AddResult struct {
	// Placed lists the slot indices that received a file, in the order
	// the files were given.
	Placed []int

	// Rejected counts candidates that did not look like images.
	Rejected int

	// Dropped counts image files that had no slot to go to.
	Dropped int
}

// Store is the fixed-length collection of image slots.
//
// All mutations are applied in call order under a single lock. Preview
// generation runs in the background and writes back only to the entry it
// was started for.
type Store struct {
	slots    [model.SlotCount]*model.Entry
	dragFrom int
	closed   bool

	registry   handle.Registry
	previewer  Previewer
	maxSize    int
	concurrent int
	logger     *zap.Logger
	onChange   func()

	ctx     context.Context
	cancel  context.CancelFunc
	pending sync.WaitGroup
	mu      sync.Mutex
}

// NewStore creates an empty store.
func NewStore(opts Options) *Store {
	if opts.PreviewMaxSize <= 0 {
		opts.PreviewMaxSize = 256
	}
	if opts.MaxConcurrentPreviews <= 0 {
		opts.MaxConcurrentPreviews = 4
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		dragFrom:   -1,
		registry:   opts.Registry,
		previewer:  opts.Previewer,
		maxSize:    opts.PreviewMaxSize,
		concurrent: opts.MaxConcurrentPreviews,
		logger:     logging.OrNop(opts.Logger).Named("slots"),
		onChange:   opts.OnChange,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Len always returns the number of slots.
func (s *Store) Len() int {
	return len(s.slots)
}

// AddFiles places image files into the first empty slots in ascending
// order. Non-image candidates are rejected, the batch is capped at
// SlotCount, and files beyond the last empty slot are dropped.
func (s *Store) AddFiles(files []model.File) (AddResult, error) {
	return s.add(files, -1)
}

// AddFilesAt places the first image file from files into slot, replacing
// any occupant. The remaining files are ignored.
func (s *Store) AddFilesAt(slot int, files []model.File) (AddResult, error) {
	if !validIndex(slot) {
		return AddResult{}, fmt.Errorf("slot %d: %w", slot, ErrSlotRange)
	}
	return s.add(files, slot)
}

func (s *Store) add(files []model.File, target int) (AddResult, error) {
	var res AddResult

	accepted := make([]model.File, 0, len(files))
	for _, f := range files {
		if f == nil || !model.IsImage(f.MediaType(), f.Name()) {
			res.Rejected++
			continue
		}
		accepted = append(accepted, f)
	}
	if len(accepted) > model.SlotCount {
		res.Dropped += len(accepted) - model.SlotCount
		accepted = accepted[:model.SlotCount]
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return AddResult{}, ErrClosed
	}

	var placed []*model.Entry
	var released []handle.Handle

	if target >= 0 {
		if len(accepted) > 0 {
			if old := s.slots[target]; old != nil {
				released = append(released, old.Preview)
			}
			e := model.NewEntry(accepted[0])
			s.slots[target] = e
			placed = append(placed, e)
			res.Placed = append(res.Placed, target)
			res.Dropped += len(accepted) - 1
		}
	} else {
		next := 0
		for _, f := range accepted {
			for next < len(s.slots) && s.slots[next] != nil {
				next++
			}
			if next == len(s.slots) {
				res.Dropped++
				continue
			}
			e := model.NewEntry(f)
			s.slots[next] = e
			placed = append(placed, e)
			res.Placed = append(res.Placed, next)
		}
	}

	jobs := make([]previewJob, len(placed))
	for i, e := range placed {
		jobs[i] = previewJob{id: e.ID, file: e.File}
	}
	if len(jobs) > 0 {
		s.pending.Add(1)
	}
	s.mu.Unlock()

	s.release(released)

	metrics.ImagesAdded.Add(float64(len(res.Placed)))
	metrics.ImagesDropped.Add(float64(res.Rejected + res.Dropped))
	s.logger.Debug("files added",
		zap.Ints("placed", res.Placed),
		zap.Int("rejected", res.Rejected),
		zap.Int("dropped", res.Dropped))

	if len(jobs) > 0 {
		go s.runPreviews(jobs)
	}
	if len(res.Placed) > 0 {
		s.changed()
	}
	return res, nil
}

// Remove clears one slot, releasing its preview handle. It reports whether
// the slot held an entry.
func (s *Store) Remove(slot int) bool {
	if !validIndex(slot) {
		return false
	}

	s.mu.Lock()
	e := s.slots[slot]
	if s.closed || e == nil {
		s.mu.Unlock()
		return false
	}
	s.slots[slot] = nil
	if s.dragFrom == slot {
		s.dragFrom = -1
	}
	s.mu.Unlock()

	s.release([]handle.Handle{e.Preview})
	s.changed()
	return true
}

// Swap exchanges the contents of two slots. It is a no-op when either
// index is invalid or a == b.
func (s *Store) Swap(a, b int) bool {
	if !validIndex(a) || !validIndex(b) || a == b {
		return false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.slots[a], s.slots[b] = s.slots[b], s.slots[a]
	s.mu.Unlock()

	s.changed()
	return true
}

// Clear empties every slot, releasing all preview handles.
func (s *Store) Clear() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	released := s.takeAll()
	s.mu.Unlock()

	s.release(released)
	s.changed()
}

// Close releases every handle the store holds and waits for in-flight
// previews to settle; their late results are released as stale.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	released := s.takeAll()
	s.mu.Unlock()

	s.cancel()
	s.release(released)
	s.pending.Wait()
}

// Wait blocks until every preview started so far has settled.
func (s *Store) Wait() {
	s.pending.Wait()
}

// takeAll empties the slots and returns their handles. Caller holds s.mu.
func (s *Store) takeAll() []handle.Handle {
	var hs []handle.Handle
	for i, e := range s.slots {
		if e != nil {
			hs = append(hs, e.Preview)
			s.slots[i] = nil
		}
	}
	s.dragFrom = -1
	return hs
}

func (s *Store) release(hs []handle.Handle) {
	for _, h := range hs {
		if !h.IsZero() {
			s.registry.Release(h)
		}
	}
}

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// indexOf returns the slot holding id, or -1. Caller holds s.mu.
func (s *Store) indexOf(id uuid.UUID) int {
	for i, e := range s.slots {
		if e != nil && e.ID == id {
			return i
		}
	}
	return -1
}

func validIndex(i int) bool {
	return i >= 0 && i < model.SlotCount
}
