package slots

import (
	"testing"

	"github.com/handiism/listing-renamer/internal/model"
)

func TestDrop(t *testing.T) {
	s, tr, _ := newTestStore(t)
	defer func() { s.Close(); assertNoLeaks(t, tr) }()

	s.AddFiles([]model.File{img("a.jpg"), img("b.jpg")})
	s.Wait()

	t.Run("no source and no files is ignored", func(t *testing.T) {
		if out, _ := s.Drop(4, nil); out != DropIgnored {
			t.Errorf("Drop() = %v, want DropIgnored", out)
		}
	})

	t.Run("external files ingest at target", func(t *testing.T) {
		out, res := s.Drop(6, []model.File{img("ext.jpg")})
		s.Wait()
		if out != DropIngested || len(res.Placed) != 1 || res.Placed[0] != 6 {
			t.Fatalf("Drop() = %v, %+v", out, res)
		}
		if s.Snapshot()[6].Entry.File.Name() != "ext.jpg" {
			t.Error("slot 6 should hold ext.jpg")
		}
	})

	t.Run("external files on an occupied slot are ignored", func(t *testing.T) {
		out, res := s.Drop(0, []model.File{img("other.jpg")})
		s.Wait()
		if out != DropIgnored || len(res.Placed) != 0 {
			t.Fatalf("Drop() = %v, %+v, want DropIgnored", out, res)
		}
		if got := s.Snapshot()[0].Entry.File.Name(); got != "a.jpg" {
			t.Errorf("slot 0 = %s, want a.jpg untouched", got)
		}
		if s.Count() != 3 {
			t.Errorf("Count() = %d, want 3", s.Count())
		}
	})

	t.Run("reorder drag swaps", func(t *testing.T) {
		if !s.DragStart(0) {
			t.Fatal("DragStart(0) = false")
		}
		if s.DragSource() != 0 || !s.Snapshot()[0].Dragging {
			t.Error("drag source not recorded")
		}
		out, _ := s.Drop(6, []model.File{img("ignored.jpg")})
		if out != DropSwapped {
			t.Fatalf("Drop() = %v, want DropSwapped", out)
		}
		snap := s.Snapshot()
		if snap[0].Entry.File.Name() != "ext.jpg" || snap[6].Entry.File.Name() != "a.jpg" {
			t.Errorf("after swap: slot0=%s slot6=%s", snap[0].Entry.File.Name(), snap[6].Entry.File.Name())
		}
		if s.DragSource() != -1 {
			t.Error("drag source should be cleared after drop")
		}
	})

	t.Run("drag from empty slot is refused", func(t *testing.T) {
		if s.DragStart(9) {
			t.Error("DragStart on empty slot = true")
		}
	})

	t.Run("drop onto itself is ignored", func(t *testing.T) {
		s.DragStart(1)
		if out, _ := s.Drop(1, nil); out != DropIgnored {
			t.Errorf("Drop() = %v, want DropIgnored", out)
		}
		if s.DragSource() != -1 {
			t.Error("drag source should be cleared")
		}
	})

	t.Run("cancel drag", func(t *testing.T) {
		s.DragStart(1)
		s.CancelDrag()
		if out, _ := s.Drop(2, nil); out != DropIgnored {
			t.Errorf("Drop() after cancel = %v", out)
		}
	})

	t.Run("non-image external drop is ignored", func(t *testing.T) {
		out, res := s.Drop(8, []model.File{model.NewMemFile("a.txt", "text/plain", nil)})
		if out != DropIgnored || res.Rejected != 1 {
			t.Errorf("Drop() = %v, %+v", out, res)
		}
	})
}
