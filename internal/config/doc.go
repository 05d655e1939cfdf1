// Package config provides configuration management for listing-renamer.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to naming parameters and logging configuration
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Exports to ~/Pictures/Listings
//	// Deflate-compressed archives
//	// 256px previews, 4 at a time
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.OutputDir = "/custom/path"
//	err := settings.Save("/path/to/config.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - Export directory and overwrite behaviour
//   - Default product, date and differentiator
//   - Preview size and concurrency
//   - Archive compression
//   - Logging and metrics output
package config
