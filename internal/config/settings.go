package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/handiism/listing-renamer/internal/logging"
	"github.com/handiism/listing-renamer/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Export settings
	OutputDir          string `json:"output_dir"`
	Overwrite          bool   `json:"overwrite"`
	ArchiveCompression string `json:"archive_compression"` // deflate, store

	// FallbackDir keeps copies of blocked exports once the session ends.
	// Empty means a .blocked directory inside OutputDir.
	FallbackDir string `json:"fallback_dir"`

	// Naming defaults
	Product        string `json:"product"`
	Date           string `json:"date"`
	Differentiator string `json:"differentiator"`

	// Preview settings
	PreviewMaxSize        int `json:"preview_max_size"`
	MaxConcurrentPreviews int `json:"max_concurrent_previews"`

	// HandleDir is where temporary preview and download handles live.
	// Empty means the system temp directory.
	HandleDir string `json:"handle_dir"`

	// Observability
	LogLevel    string `json:"log_level"`
	LogFormat   string `json:"log_format"` // json, console
	LogFile     string `json:"log_file"`
	MetricsFile string `json:"metrics_file"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		OutputDir:          filepath.Join(homeDir, "Pictures", "Listings"),
		Overwrite:          false,
		ArchiveCompression: "deflate",

		PreviewMaxSize:        256,
		MaxConcurrentPreviews: 4,

		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks values that cannot be corrected silently.
func (s *Settings) Validate() error {
	switch s.ArchiveCompression {
	case "deflate", "store":
	default:
		return fmt.Errorf("archive_compression must be deflate or store, got %q", s.ArchiveCompression)
	}
	if s.PreviewMaxSize <= 0 {
		return fmt.Errorf("preview_max_size must be positive, got %d", s.PreviewMaxSize)
	}
	if s.MaxConcurrentPreviews <= 0 {
		return fmt.Errorf("max_concurrent_previews must be positive, got %d", s.MaxConcurrentPreviews)
	}
	return nil
}

// BlockedDir returns the directory that receives blocked exports.
func (s *Settings) BlockedDir() string {
	if s.FallbackDir != "" {
		return s.FallbackDir
	}
	return filepath.Join(s.OutputDir, ".blocked")
}

// ToParams converts the naming defaults to model.Params.
func (s *Settings) ToParams() model.Params {
	return model.Params{
		Product:        s.Product,
		Date:           s.Date,
		Differentiator: s.Differentiator,
	}
}

// ToLoggingConfig converts the observability settings to a logging.Config.
func (s *Settings) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:      s.LogLevel,
		Format:     s.LogFormat,
		OutputPath: s.LogFile,
	}
}
