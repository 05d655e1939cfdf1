package export

import (
	"context"
	"path/filepath"

	"github.com/handiism/listing-renamer/internal/handle"
	ioutils "github.com/handiism/listing-renamer/internal/io"
)

// Deliverer hands a finished file to the user. A nil error means the
// delivery was attempted without complaint; it is not proof of receipt.
type Deliverer interface {
	Deliver(ctx context.Context, name string, h handle.Handle) error
}

// DirDeliverer copies handles into an output directory under their export
// names.
type DirDeliverer struct {
	// Dir is the output directory. It is created on first delivery.
	Dir string

	// Overwrite allows replacing existing files. Without it, a name that is
	// already taken makes the delivery fail and the manual link is kept.
	Overwrite bool
}

// NewDirDeliverer creates a DirDeliverer.
func NewDirDeliverer(dir string, overwrite bool) *DirDeliverer {
	return &DirDeliverer{Dir: dir, Overwrite: overwrite}
}

// Deliver copies the file behind h to Dir/name.
func (d *DirDeliverer) Deliver(ctx context.Context, name string, h handle.Handle) error {
	if err := ioutils.EnsureDir(d.Dir); err != nil {
		return err
	}

	dst := filepath.Join(d.Dir, filepath.Base(name))
	if d.Overwrite {
		return ioutils.CopyFile(ctx, h.Path(), dst)
	}
	return ioutils.CopyFileExclusive(ctx, h.Path(), dst)
}
