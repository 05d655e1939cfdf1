package ioutils

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/handiism/listing-renamer/internal/model"
)

// PathDialog turns user-supplied paths into files, the way a file picker
// would. Directories contribute their regular files (not recursively, in
// name order) and glob patterns are expanded.
type PathDialog struct{}

// NewPathDialog creates a PathDialog.
func NewPathDialog() *PathDialog {
	return &PathDialog{}
}

// Open expands paths into files in the order given.
//
// Unreadable paths do not stop the expansion; the files that were found are
// returned together with a joined error describing the rest. Non-image files
// are returned as well, filtering is up to the caller.
func (d *PathDialog) Open(paths []string) ([]model.File, error) {
	var files []model.File
	var errs []error

	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if strings.ContainsAny(p, "*?[") {
			matches, err := filepath.Glob(p)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", p, err))
				continue
			}
			if len(matches) == 0 {
				errs = append(errs, fmt.Errorf("%s: no matches", p))
			}
			for _, m := range matches {
				if f, ok := regularFile(m); ok {
					files = append(files, f)
				}
			}
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if !info.IsDir() {
			files = append(files, model.NewDiskFile(p, SniffMediaType(p)))
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		for _, e := range entries {
			if f, ok := regularFile(filepath.Join(p, e.Name())); ok {
				files = append(files, f)
			}
		}
	}

	return files, errors.Join(errs...)
}

// SplitPaths splits a line of user input on commas and newlines.
func SplitPaths(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	var paths []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			paths = append(paths, f)
		}
	}
	return paths
}

func regularFile(path string) (model.File, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	return model.NewDiskFile(path, SniffMediaType(path)), true
}

// SniffMediaType reads the first bytes of the file at path and returns the
// detected media type, or "" if the file cannot be read.
func SniffMediaType(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return ""
	}
	if n == 0 {
		return ""
	}
	return http.DetectContentType(head[:n])
}
