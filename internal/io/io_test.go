package ioutils

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestImageService_Thumbnail(t *testing.T) {
	svc := NewImageService()

	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"landscape", 1500, 1000, 256, 170},
		{"portrait", 500, 1000, 128, 256},
		{"already small", 200, 100, 200, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thumb, err := svc.Thumbnail(context.Background(), pngBytes(t, tt.w, tt.h), 256)
			if err != nil {
				t.Fatalf("Thumbnail() error = %v", err)
			}

			cfg, err := jpeg.DecodeConfig(bytes.NewReader(thumb))
			if err != nil {
				t.Fatalf("thumbnail is not a JPEG: %v", err)
			}
			if cfg.Width != tt.wantW || cfg.Height != tt.wantH {
				t.Errorf("thumbnail = %dx%d, want %dx%d", cfg.Width, cfg.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestImageService_ThumbnailCorrupt(t *testing.T) {
	svc := NewImageService()

	if _, err := svc.Thumbnail(context.Background(), []byte("not an image"), 256); err == nil {
		t.Error("expected error for corrupt data")
	}
}

func TestImageService_ThumbnailCancelled(t *testing.T) {
	svc := NewImageService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Thumbnail(ctx, pngBytes(t, 10, 10), 256); !errors.Is(err, context.Canceled) {
		t.Errorf("Thumbnail() error = %v, want context.Canceled", err)
	}
}

func TestPathDialog_Open(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "listing")
	if err := EnsureDir(filepath.Join(sub, "nested")); err != nil {
		t.Fatal(err)
	}

	write := func(path string, data []byte) {
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(sub, "b.png"), pngBytes(t, 2, 2))
	write(filepath.Join(sub, "a.txt"), []byte("hello"))
	write(filepath.Join(sub, "nested", "deep.png"), pngBytes(t, 2, 2))
	write(filepath.Join(dir, "single.png"), pngBytes(t, 2, 2))
	write(filepath.Join(dir, "glob1.jpg"), []byte("x"))

	d := NewPathDialog()
	files, err := d.Open([]string{
		filepath.Join(dir, "single.png"),
		sub,
		filepath.Join(dir, "glob*.jpg"),
		filepath.Join(dir, "missing.png"),
	})

	if err == nil {
		t.Error("expected an error for the missing path")
	}

	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	want := []string{"single.png", "a.txt", "b.png", "glob1.jpg"}
	if len(names) != len(want) {
		t.Fatalf("Open() names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Open()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	if files[0].MediaType() != "image/png" {
		t.Errorf("sniffed media type = %q, want image/png", files[0].MediaType())
	}
}

func TestSplitPaths(t *testing.T) {
	got := SplitPaths(" a.jpg, b.png\n\n c dir/ ,")
	want := []string{"a.jpg", "b.png", "c dir/"}
	if len(got) != len(want) {
		t.Fatalf("SplitPaths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitPaths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCopyFileExclusive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	if err := os.WriteFile(src, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileExclusive(context.Background(), src, dst); err != nil {
		t.Fatalf("first copy error = %v", err)
	}
	if err := CopyFileExclusive(context.Background(), src, dst); !errors.Is(err, ErrExists) {
		t.Errorf("second copy error = %v, want ErrExists", err)
	}
	if err := CopyFile(context.Background(), src, dst); err != nil {
		t.Errorf("CopyFile() overwrite error = %v", err)
	}
}
