package main

import (
	"context"
	"testing"

	"github.com/handiism/listing-renamer/internal/export"
)

func TestExitCode(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name   string
		ctx    context.Context
		status export.Status
		want   int
	}{
		{"archive delivered", context.Background(), export.StatusTriggered, 0},
		{"all delivered", context.Background(), export.StatusAllTriggered, 0},
		{"archive blocked", context.Background(), export.StatusBlocked, 2},
		{"some blocked", context.Background(), export.StatusSomeBlocked, 2},
		{"no files", context.Background(), export.StatusNoFiles, 2},
		{"failed", context.Background(), export.StatusFailed, 1},
		{"interrupted mid delivery", cancelled, export.StatusSomeBlocked, 130},
		{"interrupted while reading", cancelled, export.StatusFailed, 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.ctx, tt.status); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
