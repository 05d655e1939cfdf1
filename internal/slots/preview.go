package slots

import (
	"errors"

	"github.com/google/uuid"
	"github.com/handiism/listing-renamer/internal/handle"
	"github.com/handiism/listing-renamer/internal/metrics"
	"github.com/handiism/listing-renamer/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errNoPreviewer = errors.New("no previewer configured")

type previewJob struct {
	id   uuid.UUID
	file model.File
}

// runPreviews generates previews for one batch. Errors never escape: a
// failed preview is recorded on its entry.
func (s *Store) runPreviews(jobs []previewJob) {
	defer s.pending.Done()

	var g errgroup.Group
	g.SetLimit(s.concurrent)

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			s.preview(job)
			return nil
		})
	}

	_ = g.Wait()
}

func (s *Store) preview(job previewJob) {
	if !s.holds(job.id) {
		s.discard(job, "")
		return
	}

	var h handle.Handle
	err := s.render(job, &h)
	if err != nil {
		s.logger.Warn("preview failed",
			zap.String("entry", job.id.String()),
			zap.String("file", job.file.Name()),
			zap.Error(err))
	}
	s.applyPreview(job, h, err)
}

func (s *Store) render(job previewJob, out *handle.Handle) error {
	if s.previewer == nil {
		return errNoPreviewer
	}

	data, err := model.ReadAll(job.file)
	if err != nil {
		return err
	}

	thumb, err := s.previewer.Thumbnail(s.ctx, data, s.maxSize)
	if err != nil {
		return err
	}

	h, err := s.registry.Create("preview-"+job.id.String()+".jpg", thumb)
	if err != nil {
		return err
	}
	*out = h
	return nil
}

// applyPreview writes a preview result to the entry identified by job.id,
// wherever it sits now. If no slot holds that entry any more the result is
// stale and its handle is released instead.
func (s *Store) applyPreview(job previewJob, h handle.Handle, err error) {
	s.mu.Lock()
	i := -1
	if !s.closed {
		i = s.indexOf(job.id)
	}
	if i < 0 {
		s.mu.Unlock()
		s.discard(job, h)
		return
	}

	e := s.slots[i]
	e.PreviewPending = false
	e.Preview = h
	e.PreviewErr = err != nil
	s.mu.Unlock()

	if err != nil {
		metrics.PreviewsFailed.Inc()
	}
	s.changed()
}

func (s *Store) discard(job previewJob, h handle.Handle) {
	metrics.PreviewsDiscarded.Inc()
	s.logger.Debug("stale preview discarded", zap.String("entry", job.id.String()))
	s.release([]handle.Handle{h})
}

// holds reports whether some slot still contains the entry id.
func (s *Store) holds(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.indexOf(id) >= 0
}
