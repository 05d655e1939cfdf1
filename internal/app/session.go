// Package app wires the slot store, export engine, handle registry and
// clipboard into one session that the CLI and TUI drive.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/handiism/listing-renamer/internal/clipboard"
	"github.com/handiism/listing-renamer/internal/config"
	"github.com/handiism/listing-renamer/internal/export"
	"github.com/handiism/listing-renamer/internal/handle"
	ioutils "github.com/handiism/listing-renamer/internal/io"
	"github.com/handiism/listing-renamer/internal/logging"
	"github.com/handiism/listing-renamer/internal/model"
	"github.com/handiism/listing-renamer/internal/slots"
	"go.uber.org/zap"
)

// ErrNoNames is returned by CopyNames when no slot is filled.
var ErrNoNames = errors.New("no filled slots to name")

// Deps are the capabilities a session needs from its host.
type Deps struct {
	// Registry creates and releases handles. Nil means a TempRegistry under
	// settings.HandleDir, owned and closed by the session.
	Registry handle.Registry

	// Deliverer receives exports. Nil means a DirDeliverer on
	// settings.OutputDir.
	Deliverer export.Deliverer

	// Clipboard receives copied filename lists. Nil means the system
	// clipboard.
	Clipboard clipboard.Writer

	// Dialog expands paths into files. Nil means a PathDialog.
	Dialog *ioutils.PathDialog

	// Previewer renders thumbnails. Nil means an ImageService.
	Previewer slots.Previewer

	Logger     *zap.Logger
	OnChange   func()
	OnProgress func(export.ProgressEvent)
}

// Session is one running instance: ten slots, naming parameters, an export
// engine and its manual links.
type Session struct {
	Store  *slots.Store
	Engine *export.Engine

	settings  *config.Settings
	registry  handle.Registry
	ownedReg  *handle.TempRegistry
	clipboard clipboard.Writer
	dialog    *ioutils.PathDialog
	logger    *zap.Logger

	params model.Params
	mu     sync.Mutex
}

// NewSession builds a session from settings and deps.
func NewSession(settings *config.Settings, deps Deps) (*Session, error) {
	s := &Session{
		settings:  settings,
		registry:  deps.Registry,
		clipboard: deps.Clipboard,
		dialog:    deps.Dialog,
		logger:    logging.OrNop(deps.Logger),
		params:    settings.ToParams(),
	}

	if s.registry == nil {
		reg, err := handle.NewTempRegistry(settings.HandleDir)
		if err != nil {
			return nil, err
		}
		s.registry = reg
		s.ownedReg = reg
	}
	if s.clipboard == nil {
		s.clipboard = clipboard.System{}
	}
	if s.dialog == nil {
		s.dialog = ioutils.NewPathDialog()
	}

	previewer := deps.Previewer
	if previewer == nil {
		previewer = ioutils.NewImageService()
	}
	deliverer := deps.Deliverer
	if deliverer == nil {
		deliverer = export.NewDirDeliverer(settings.OutputDir, settings.Overwrite)
	}

	s.Store = slots.NewStore(slots.Options{
		Registry:              s.registry,
		Previewer:             previewer,
		PreviewMaxSize:        settings.PreviewMaxSize,
		MaxConcurrentPreviews: settings.MaxConcurrentPreviews,
		Logger:                s.logger,
		OnChange:              deps.OnChange,
	})
	s.Engine = export.NewEngine(s.Store, s.registry, deliverer, export.Options{
		Compression: settings.ArchiveCompression,
		Logger:      s.logger,
		OnProgress:  deps.OnProgress,
	})

	return s, nil
}

// Params returns the current naming parameters.
func (s *Session) Params() model.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetParams replaces the naming parameters.
func (s *Session) SetParams(p model.Params) {
	s.mu.Lock()
	s.params = p
	s.mu.Unlock()
}

// DateWarning returns a notice when the date is not YYYYMM, or "".
func (s *Session) DateWarning() string {
	date := s.Params().Date
	if model.ValidDate(date) {
		return ""
	}
	return fmt.Sprintf("Date %q is not in YYYYMM form; it will be used as typed.", date)
}

// Open expands paths into files and adds them to the first empty slots.
// Path errors are returned alongside whatever was added.
func (s *Session) Open(paths []string) (slots.AddResult, error) {
	files, pathErr := s.dialog.Open(paths)
	res, err := s.Store.AddFiles(files)
	if err != nil {
		return res, err
	}
	return res, pathErr
}

// OpenAt expands paths and places the first image into slot.
func (s *Session) OpenAt(slot int, paths []string) (slots.AddResult, error) {
	files, pathErr := s.dialog.Open(paths)
	res, err := s.Store.AddFilesAt(slot, files)
	if err != nil {
		return res, err
	}
	return res, pathErr
}

// DropPaths completes a drag onto slot, treating paths as external files
// when no reorder drag is in progress. External files land only on an empty
// slot.
func (s *Session) DropPaths(slot int, paths []string) (slots.DropOutcome, slots.AddResult, error) {
	var files []model.File
	var pathErr error
	if s.Store.DragSource() < 0 && len(paths) > 0 {
		files, pathErr = s.dialog.Open(paths)
	}
	out, res := s.Store.Drop(slot, files)
	return out, res, pathErr
}

// FileNames returns the export names in filled order.
func (s *Session) FileNames() []string {
	return s.Store.FileNames(s.Params())
}

// CopyNames puts the newline-separated export names on the clipboard.
func (s *Session) CopyNames() (int, error) {
	names := s.FileNames()
	if len(names) == 0 {
		return 0, ErrNoNames
	}
	if err := s.clipboard.WriteAll(strings.Join(names, "\n")); err != nil {
		return 0, fmt.Errorf("copy to clipboard: %w", err)
	}
	return len(names), nil
}

// ExportArchive runs an archive export with the current parameters.
func (s *Session) ExportArchive(ctx context.Context) export.Report {
	return s.Engine.ExportArchive(ctx, s.Params())
}

// ExportIndividual runs an individual export with the current parameters.
func (s *Session) ExportIndividual(ctx context.Context) export.Report {
	return s.Engine.ExportIndividual(ctx, s.Params())
}

// SaveLinks copies every manual link into dir so the files outlive the
// session's handles. It returns the paths written, in link order.
func (s *Session) SaveLinks(ctx context.Context, dir string) ([]string, error) {
	links := s.Engine.Links()
	if len(links) == 0 {
		return nil, nil
	}
	if err := ioutils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create fallback dir: %w", err)
	}

	var saved []string
	var errs []error
	for _, l := range links {
		dst := filepath.Join(dir, l.Name)
		if err := ioutils.CopyFile(ctx, l.Handle.Path(), dst); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", l.Name, err))
			continue
		}
		saved = append(saved, dst)
	}
	if len(saved) > 0 {
		s.logger.Info("saved blocked exports", zap.String("dir", dir), zap.Int("files", len(saved)))
	}
	return saved, errors.Join(errs...)
}

// Close tears the session down: slots first, then manual links, then the
// registry if the session created it.
func (s *Session) Close() error {
	s.Store.Close()
	s.Engine.Close()
	if s.ownedReg != nil {
		return s.ownedReg.Close()
	}
	return nil
}
