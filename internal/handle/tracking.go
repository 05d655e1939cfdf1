package handle

import (
	"fmt"
	"sync"
)

// Tracker is an in-memory Registry that records every create and release.
//
// It is meant for tests that need to prove each handle is released exactly
// once: DoubleReleases counts releases of handles that were already gone.
type Tracker struct {
	// FailCreate makes Create return an error when it returns true for the
	// given name.
	FailCreate func(name string) bool

	next           int
	data           map[Handle][]byte
	created        []Handle
	released       map[Handle]int
	doubleReleases int
	mu             sync.Mutex
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		data:     make(map[Handle][]byte),
		released: make(map[Handle]int),
	}
}

// Create stores a copy of data.
func (t *Tracker) Create(name string, data []byte) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.FailCreate != nil && t.FailCreate(name) {
		return "", fmt.Errorf("create %s: refused", name)
	}

	t.next++
	h := Handle(fmt.Sprintf("mem://%d/%s", t.next, name))
	t.data[h] = append([]byte(nil), data...)
	t.created = append(t.created, h)
	return h, nil
}

// Release drops the bytes behind h.
func (t *Tracker) Release(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h.IsZero() {
		return
	}
	t.released[h]++
	if t.released[h] > 1 {
		t.doubleReleases++
	}
	delete(t.data, h)
}

// Bytes returns the data behind a live handle.
func (t *Tracker) Bytes(h Handle) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.data[h]
	return b, ok
}

// Live returns the handles created but not yet released.
func (t *Tracker) Live() []Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	var live []Handle
	for _, h := range t.created {
		if t.released[h] == 0 {
			live = append(live, h)
		}
	}
	return live
}

// Created returns the number of handles created so far.
func (t *Tracker) Created() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.created)
}

// DoubleReleases returns how many releases hit an already released handle.
func (t *Tracker) DoubleReleases() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.doubleReleases
}
