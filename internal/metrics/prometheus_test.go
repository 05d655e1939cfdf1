package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTextfile(t *testing.T) {
	Exports.WithLabelValues("zip", "triggered").Inc()

	path := filepath.Join(t.TempDir(), "listing.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `listing_exports_total{mode="zip",status="triggered"}`) {
		t.Errorf("textfile missing export counter:\n%s", data)
	}
}
