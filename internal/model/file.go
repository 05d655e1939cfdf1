package model

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// File is a source image that can be placed into a slot.
type File interface {
	// Name is the original file name including its extension.
	Name() string

	// MediaType is the declared media type, e.g. "image/png".
	// It may be empty when unknown.
	MediaType() string

	// Open returns a reader over the file's bytes.
	Open() (io.ReadCloser, error)
}

// DiskFile is a File backed by a path on the local filesystem.
type DiskFile struct {
	// Path is the absolute or relative path of the file.
	Path string

	// Type is the sniffed or declared media type.
	Type string
}

// NewDiskFile creates a DiskFile.
func NewDiskFile(path, mediaType string) *DiskFile {
	return &DiskFile{Path: path, Type: mediaType}
}

// Name returns the base name of the path.
func (f *DiskFile) Name() string {
	return filepath.Base(f.Path)
}

// MediaType returns the media type.
func (f *DiskFile) MediaType() string {
	return f.Type
}

// Open opens the file for reading.
func (f *DiskFile) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// MemFile is a File held entirely in memory.
type MemFile struct {
	FileName string
	Type     string
	Data     []byte
}

// NewMemFile creates a MemFile.
func NewMemFile(name, mediaType string, data []byte) *MemFile {
	return &MemFile{FileName: name, Type: mediaType, Data: data}
}

// Name returns the file name.
func (f *MemFile) Name() string {
	return f.FileName
}

// MediaType returns the media type.
func (f *MemFile) MediaType() string {
	return f.Type
}

// Open returns a reader over the in-memory bytes.
func (f *MemFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.Data)), nil
}

// ReadAll reads every byte of f.
func ReadAll(f File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
