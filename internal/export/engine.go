package export

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/handiism/listing-renamer/internal/handle"
	"github.com/handiism/listing-renamer/internal/logging"
	"github.com/handiism/listing-renamer/internal/metrics"
	"github.com/handiism/listing-renamer/internal/model"
	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source provides the filled slots in filled order.
type Source interface {
	Filled() []model.Entry
}

// Options configures an Engine.
type Options struct {
	// Compression is "deflate" (default) or "store".
	Compression string

	// MaxConcurrentReads bounds how many files are read at once.
	MaxConcurrentReads int

	// Logger receives structured diagnostics. Nil means no logging.
	Logger *zap.Logger

	// OnProgress receives user-facing progress messages.
	OnProgress func(ProgressEvent)
}

// Engine runs exports and owns the manual link list.
type Engine struct {
	source    Source
	registry  handle.Registry
	deliverer Deliverer
	method    uint16
	reads     int
	logger    *zap.Logger

	onProgress func(ProgressEvent)

	links  []Link
	closed bool
	mu     sync.Mutex

	// run serialises exports so two runs never interleave deliveries.
	run sync.Mutex
}

// NewEngine creates a new export Engine.
func NewEngine(source Source, registry handle.Registry, deliverer Deliverer, opts Options) *Engine {
	method := zip.Deflate
	if opts.Compression == "store" {
		method = zip.Store
	}
	if opts.MaxConcurrentReads <= 0 {
		opts.MaxConcurrentReads = 4
	}

	return &Engine{
		source:     source,
		registry:   registry,
		deliverer:  deliverer,
		method:     method,
		reads:      opts.MaxConcurrentReads,
		logger:     logging.OrNop(opts.Logger).Named("export"),
		onProgress: opts.OnProgress,
	}
}

// namedFile is one filled slot resolved to its export name and bytes.
type namedFile struct {
	name string
	data []byte
}

// ExportArchive bundles every filled slot into one zip archive and
// delivers it.
//
// The archive's manual link is stored before delivery is attempted, so the
// archive stays reachable even when delivery silently does nothing.
func (e *Engine) ExportArchive(ctx context.Context, p model.Params) Report {
	e.run.Lock()
	defer e.run.Unlock()

	report := Report{Mode: ModeArchive}
	entries := e.source.Filled()
	if len(entries) == 0 {
		return e.finish(report, StatusNoFiles, "No images to export. Add at least one image first.", LevelWarning)
	}

	files, err := e.readAll(ctx, entries, p)
	if err != nil {
		e.logger.Error("archive read failed", zap.Error(err))
		return e.finish(report, StatusFailed, fmt.Sprintf("Export failed: %v", err), LevelError)
	}
	for _, f := range files {
		report.Files = append(report.Files, f.name)
	}

	archive, err := e.buildArchive(files)
	if err != nil {
		e.logger.Error("archive build failed", zap.Error(err))
		return e.finish(report, StatusFailed, fmt.Sprintf("Export failed: %v", err), LevelError)
	}

	name := model.ArchiveName(p)
	h, err := e.registry.Create(name, archive)
	if err != nil {
		e.logger.Error("archive handle failed", zap.Error(err))
		return e.finish(report, StatusFailed, fmt.Sprintf("Export failed: %v", err), LevelError)
	}
	if !e.addLink(Link{Name: name, Handle: h}, ModeArchive) {
		e.registry.Release(h)
		return e.finish(report, StatusFailed, "Export failed: engine closed", LevelError)
	}

	e.progress(ProgressEvent{Message: fmt.Sprintf("Built %s (%d files, %d bytes)", name, len(files), len(archive)), Level: LevelVerbose})

	if err := e.deliverer.Deliver(ctx, name, h); err != nil {
		e.logger.Warn("archive delivery failed", zap.String("name", name), zap.Error(err))
		report.Blocked = []string{name}
		return e.finish(report, StatusBlocked,
			fmt.Sprintf("Could not save %s automatically (%v). Use the manual link.", name, err), LevelWarning)
	}

	metrics.BytesExported.WithLabelValues(string(ModeArchive)).Add(float64(len(archive)))
	return e.finish(report, StatusTriggered, fmt.Sprintf("Saved %s. A manual link is also available.", name), LevelSuccess)
}

// ExportIndividual delivers each filled slot as its own file, in filled
// order.
//
// All bytes are read first; the deliveries then happen in one pass with no
// waiting between them. A delivery that fails keeps a manual link for that
// file and the pass continues. A delivered file's handle is released.
func (e *Engine) ExportIndividual(ctx context.Context, p model.Params) Report {
	e.run.Lock()
	defer e.run.Unlock()

	report := Report{Mode: ModeIndividual}
	entries := e.source.Filled()
	if len(entries) == 0 {
		return e.finish(report, StatusNoFiles, "No images to export. Add at least one image first.", LevelWarning)
	}

	files, err := e.readAll(ctx, entries, p)
	if err != nil {
		e.logger.Error("individual read failed", zap.Error(err))
		return e.finish(report, StatusFailed, fmt.Sprintf("Export failed: %v", err), LevelError)
	}

	for _, f := range files {
		report.Files = append(report.Files, f.name)

		h, err := e.registry.Create(f.name, f.data)
		if err != nil {
			e.logger.Warn("handle create failed", zap.String("name", f.name), zap.Error(err))
			report.Blocked = append(report.Blocked, f.name)
			e.progress(ProgressEvent{Message: fmt.Sprintf("Could not prepare %s: %v", f.name, err), Level: LevelWarning})
			continue
		}

		if err := e.deliverer.Deliver(ctx, f.name, h); err != nil {
			e.logger.Warn("delivery failed", zap.String("name", f.name), zap.Error(err))
			report.Blocked = append(report.Blocked, f.name)
			if !e.addLink(Link{Name: f.name, Handle: h}, ModeIndividual) {
				e.registry.Release(h)
			}
			e.progress(ProgressEvent{Message: fmt.Sprintf("Could not save %s automatically: %v", f.name, err), Level: LevelWarning})
			continue
		}

		e.registry.Release(h)
		metrics.BytesExported.WithLabelValues(string(ModeIndividual)).Add(float64(len(f.data)))
		e.progress(ProgressEvent{Message: fmt.Sprintf("Saved: %s", f.name), Level: LevelVerbose})
	}

	if len(report.Blocked) > 0 {
		return e.finish(report, StatusSomeBlocked,
			fmt.Sprintf("%d of %d files could not be saved automatically. Use the manual links.", len(report.Blocked), len(files)), LevelWarning)
	}
	return e.finish(report, StatusAllTriggered, fmt.Sprintf("Saved %d files.", len(files)), LevelSuccess)
}

// readAll reads every entry's bytes concurrently and pairs them with their
// export names. Any failure aborts the whole read.
func (e *Engine) readAll(ctx context.Context, entries []model.Entry, p model.Params) ([]namedFile, error) {
	files := make([]namedFile, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.reads)

	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := model.ReadAll(entry.File)
			if err != nil {
				return fmt.Errorf("read %s: %w", entry.File.Name(), err)
			}
			files[i] = namedFile{name: model.FileName(i, entry.Ext, p), data: data}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func (e *Engine) buildArchive(files []namedFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	now := time.Now()

	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.name,
			Method:   e.method,
			Modified: now,
		})
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", f.name, err)
		}
		if _, err := w.Write(f.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finish archive: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) finish(report Report, status Status, message string, level ProgressLevel) Report {
	report.Status = status
	report.Message = message

	metrics.Exports.WithLabelValues(string(report.Mode), status.String()).Inc()
	e.logger.Info("export finished",
		zap.String("mode", string(report.Mode)),
		zap.Stringer("status", status),
		zap.Int("files", len(report.Files)),
		zap.Int("blocked", len(report.Blocked)))
	e.progress(ProgressEvent{Message: message, Level: level})
	return report
}

// addLink stores a manual link. It returns false if the engine is closed,
// in which case the caller still owns the handle.
func (e *Engine) addLink(l Link, mode Mode) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	e.links = append(e.links, l)
	metrics.ManualLinks.WithLabelValues(string(mode)).Inc()
	return true
}

// Links returns a copy of the manual link list, oldest first.
func (e *Engine) Links() []Link {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Link(nil), e.links...)
}

// ClearLinks empties the manual link list and releases the handles.
func (e *Engine) ClearLinks() {
	e.mu.Lock()
	links := e.links
	e.links = nil
	e.mu.Unlock()

	for _, l := range links {
		e.registry.Release(l.Handle)
	}
}

// Close releases every manual link. Later exports still run but cannot
// keep new links.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()

	e.ClearLinks()
}

func (e *Engine) progress(event ProgressEvent) {
	if e.onProgress != nil {
		e.onProgress(event)
	}
}
