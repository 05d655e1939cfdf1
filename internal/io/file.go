// Package ioutils provides file system utilities for listing-renamer.
package ioutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrExists is returned by CopyFileExclusive when the destination already exists.
var ErrExists = errors.New("destination already exists")

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. The source file must exist and be readable.
//
// Parameters:
//   - ctx: Context for cancellation, checked before the copy starts
//   - src: Source file path (must exist)
//   - dst: Destination file path (will be created/overwritten)
//
// Example:
//
//	err := CopyFile(ctx, "/tmp/handles/front.jpg", "/out/TW_202511_A_MAIN.jpg")
func CopyFile(ctx context.Context, src, dst string) error {
	return copyFile(ctx, src, dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// CopyFileExclusive copies src to dst but fails with ErrExists when dst is
// already present.
func CopyFileExclusive(ctx context.Context, src, dst string) error {
	return copyFile(ctx, src, dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
}

func copyFile(ctx context.Context, src, dst string, flag int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, flag, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s: %w", dst, ErrExists)
		}
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		os.Remove(dst)
		return err
	}
	return destFile.Close()
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
