package handle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// ErrClosed is returned by Create after the registry has been closed.
var ErrClosed = errors.New("handle registry closed")

// Handle is an opaque reference to bytes held by a Registry.
// The zero value means "no handle".
type Handle string

// IsZero reports whether h refers to nothing.
func (h Handle) IsZero() bool {
	return h == ""
}

// Path returns the handle as a filesystem path for registries that are
// backed by files.
func (h Handle) Path() string {
	return string(h)
}

// Registry creates and releases handles.
type Registry interface {
	// Create stores data and returns a handle to it. The name is a hint
	// used for display; it does not need to be unique.
	Create(name string, data []byte) (Handle, error)

	// Release frees the bytes behind h. Releasing an unknown or zero
	// handle is a no-op.
	Release(h Handle)
}

// TempRegistry is a Registry backed by files in a private temp directory.
type TempRegistry struct {
	dir    string
	live   map[Handle]struct{}
	closed bool
	mu     sync.Mutex
}

// NewTempRegistry creates a registry whose files live in a fresh directory
// under parent. An empty parent means os.TempDir().
func NewTempRegistry(parent string) (*TempRegistry, error) {
	if parent != "" {
		if err := os.MkdirAll(parent, 0755); err != nil {
			return nil, fmt.Errorf("create handle parent dir: %w", err)
		}
	}
	dir, err := os.MkdirTemp(parent, "listing-handles-")
	if err != nil {
		return nil, fmt.Errorf("create handle dir: %w", err)
	}
	return &TempRegistry{
		dir:  dir,
		live: make(map[Handle]struct{}),
	}, nil
}

// Create writes data to a new file named after name.
//
// Each handle gets its own subdirectory so that the file keeps the
// display name the user expects when opening it by hand.
func (r *TempRegistry) Create(name string, data []byte) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return "", ErrClosed
	}

	sub := filepath.Join(r.dir, uuid.NewString())
	if err := os.Mkdir(sub, 0755); err != nil {
		return "", fmt.Errorf("create handle: %w", err)
	}

	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "file"
	}
	path := filepath.Join(sub, base)
	if err := os.WriteFile(path, data, 0644); err != nil {
		os.RemoveAll(sub)
		return "", fmt.Errorf("write handle %s: %w", base, err)
	}

	h := Handle(path)
	r.live[h] = struct{}{}
	return h, nil
}

// Release deletes the file behind h.
func (r *TempRegistry) Release(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.live[h]; !ok {
		return
	}
	delete(r.live, h)
	os.RemoveAll(filepath.Dir(h.Path()))
}

// Live returns the number of handles that have not been released.
func (r *TempRegistry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Close releases every outstanding handle and removes the directory.
// Create fails after Close; Release stays safe to call.
func (r *TempRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	r.live = make(map[Handle]struct{})
	return os.RemoveAll(r.dir)
}
