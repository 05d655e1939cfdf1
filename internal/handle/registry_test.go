package handle

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTempRegistry_CreateRelease(t *testing.T) {
	reg, err := NewTempRegistry(t.TempDir())
	if err != nil {
		t.Fatalf("NewTempRegistry() error = %v", err)
	}
	defer reg.Close()

	h, err := reg.Create("A_202511_B_MAIN.jpg", []byte("jpeg"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if filepath.Base(h.Path()) != "A_202511_B_MAIN.jpg" {
		t.Errorf("handle file name = %q, want display name kept", filepath.Base(h.Path()))
	}

	data, err := os.ReadFile(h.Path())
	if err != nil || string(data) != "jpeg" {
		t.Fatalf("ReadFile() = %q, %v", data, err)
	}

	if reg.Live() != 1 {
		t.Errorf("Live() = %d, want 1", reg.Live())
	}

	reg.Release(h)
	reg.Release(h)

	if reg.Live() != 0 {
		t.Errorf("Live() after release = %d, want 0", reg.Live())
	}
	if _, err := os.Stat(h.Path()); !os.IsNotExist(err) {
		t.Errorf("handle file still exists after release")
	}
}

func TestTempRegistry_SameNameTwice(t *testing.T) {
	reg, err := NewTempRegistry(t.TempDir())
	if err != nil {
		t.Fatalf("NewTempRegistry() error = %v", err)
	}
	defer reg.Close()

	a, _ := reg.Create("x.png", []byte("a"))
	b, _ := reg.Create("x.png", []byte("b"))
	if a == b {
		t.Fatal("two creates with the same name returned the same handle")
	}

	reg.Release(a)
	if data, err := os.ReadFile(b.Path()); err != nil || string(data) != "b" {
		t.Errorf("releasing one handle disturbed the other: %q, %v", data, err)
	}
}

func TestTempRegistry_Close(t *testing.T) {
	reg, err := NewTempRegistry(t.TempDir())
	if err != nil {
		t.Fatalf("NewTempRegistry() error = %v", err)
	}

	h, _ := reg.Create("x.png", []byte("a"))
	if err := reg.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	root := filepath.Dir(filepath.Dir(h.Path()))
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Error("registry dir should be removed by Close")
	}
	if _, err := reg.Create("y.png", nil); err != ErrClosed {
		t.Errorf("Create() after Close error = %v, want ErrClosed", err)
	}
	reg.Release(h)
}

func TestTracker_DoubleRelease(t *testing.T) {
	tr := NewTracker()

	h, _ := tr.Create("a", []byte("1"))
	tr.Release(h)
	tr.Release(h)
	tr.Release("")

	if tr.DoubleReleases() != 1 {
		t.Errorf("DoubleReleases() = %d, want 1", tr.DoubleReleases())
	}
	if len(tr.Live()) != 0 {
		t.Errorf("Live() = %v, want none", tr.Live())
	}
}
