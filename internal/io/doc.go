// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - File copying and writing
//   - Directory creation
//   - Expanding user-supplied paths into image files
//   - Preview thumbnail generation
//
// # File Operations
//
//	// Copy a file
//	err := ioutils.CopyFile(ctx, "/tmp/handle/x.jpg", "/out/TW_202511_A_MAIN.jpg")
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Picking Files
//
// PathDialog stands in for a file picker. It accepts files, directories and
// glob patterns:
//
//	d := ioutils.NewPathDialog()
//	files, err := d.Open([]string{"/photos/listing", "/extra/*.png"})
//
// # Previews
//
// The ImageService renders small JPEG thumbnails:
//
//	svc := ioutils.NewImageService()
//	thumb, err := svc.Thumbnail(ctx, imageData, 256)
package ioutils
