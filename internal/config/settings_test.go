package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.ArchiveCompression != "deflate" || s.PreviewMaxSize != 256 {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "settings.json")

	s := DefaultSettings()
	s.Product = "TW-NOSEKIT"
	s.Date = "202511"
	s.Differentiator = "WomenRefresh"
	s.ArchiveCompression = "store"

	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	p := got.ToParams()
	if p.Product != "TW-NOSEKIT" || p.Date != "202511" || p.Differentiator != "WomenRefresh" {
		t.Errorf("ToParams() = %+v", p)
	}
	if got.ArchiveCompression != "store" {
		t.Errorf("ArchiveCompression = %q, want store", got.ArchiveCompression)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"product": "kit"}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Product != "kit" || s.MaxConcurrentPreviews != 4 {
		t.Errorf("Load() = %+v", s)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"bad compression", `{"archive_compression": "lzma"}`},
		{"zero preview size", `{"preview_max_size": 0}`},
		{"negative concurrency", `{"max_concurrent_previews": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestToLoggingConfig(t *testing.T) {
	s := DefaultSettings()
	s.LogFile = "/tmp/x.log"

	cfg := s.ToLoggingConfig()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.OutputPath != "/tmp/x.log" {
		t.Errorf("ToLoggingConfig() = %+v", cfg)
	}
}

func TestBlockedDir(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		fallback string
		want     string
	}{
		{"defaults under output", "/out", "", filepath.Join("/out", ".blocked")},
		{"explicit fallback", "/out", "/keep", "/keep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.OutputDir = tt.output
			s.FallbackDir = tt.fallback
			if got := s.BlockedDir(); got != tt.want {
				t.Errorf("BlockedDir() = %q, want %q", got, tt.want)
			}
		})
	}
}
