package model

import (
	"io"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"women refresh", "WOMEN_REFRESH"},
		{"Tw Nose Kit!", "TW_NOSE_KIT_"},
		{"TW-NOSEKIT", "TW_NOSEKIT"},
		{"  padded  value ", "PADDED_VALUE"},
		{"tabs\tand\n\nnewlines", "TABS_AND_NEWLINES"},
		{"already_OK_123", "ALREADY_OK_123"},
		{"straße", "STRASSE"},
		{"a\u00a0\u00a0b", "A_B"},
		{"a \u3000 b", "A_B"},
		{"women\u2003\u2003refresh", "WOMEN_REFRESH"},
		{"\u00a0edge\u3000", "EDGE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", "Tw Nose Kit!", "a  b\tc", "ünïcödé wörds", "x--y__z", "202511", " lead", "日本 語", "a\u00a0\u2003b"}

	for _, s := range inputs {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", s, twice, once)
		}
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"photo.JPG", "jpg"},
		{"asset.png", "png"},
		{"", "jpg"},
		{"noext", "jpg"},
		{"trailing.", "jpg"},
		{"archive.tar.GZ", "gz"},
		{".hidden", "hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Extension(tt.input); got != tt.want {
				t.Errorf("Extension(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTypeToken(t *testing.T) {
	if got := TypeToken(0); got != "MAIN" {
		t.Errorf("TypeToken(0) = %q, want MAIN", got)
	}

	want := []string{"", "PT01", "PT02", "PT03", "PT04", "PT05", "PT06", "PT07", "PT08", "PT09", "PT10"}
	for i := 1; i < len(want); i++ {
		if got := TypeToken(i); got != want[i] {
			t.Errorf("TypeToken(%d) = %q, want %q", i, got, want[i])
		}
	}
}

func TestFileName(t *testing.T) {
	p := Params{Product: "TW-NOSEKIT", Date: "202511", Differentiator: "WOMENREFRESH"}

	if got := FileName(0, "jpg", p); got != "TW_NOSEKIT_202511_WOMENREFRESH_MAIN.jpg" {
		t.Errorf("FileName(0) = %q", got)
	}
	if got := FileName(1, "png", p); got != "TW_NOSEKIT_202511_WOMENREFRESH_PT01.png" {
		t.Errorf("FileName(1) = %q", got)
	}
	if got := FileName(2, "", p); got != "TW_NOSEKIT_202511_WOMENREFRESH_PT02.jpg" {
		t.Errorf("FileName(2) with empty ext = %q", got)
	}
	if got := ArchiveName(p); got != "TW_NOSEKIT_202511_WOMENREFRESH.zip" {
		t.Errorf("ArchiveName() = %q", got)
	}
}

func TestFileName_EmptyParams(t *testing.T) {
	if got := FileName(0, "png", Params{}); got != "___MAIN.png" {
		t.Errorf("FileName with empty params = %q, want %q", got, "___MAIN.png")
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"202511", true},
		{" 202501 ", true},
		{"202500", false},
		{"202513", false},
		{"20251", false},
		{"2025-11", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ValidDate(tt.input); got != tt.want {
				t.Errorf("ValidDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		mediaType string
		name      string
		want      bool
	}{
		{"image/png", "whatever", true},
		{"IMAGE/JPEG", "", true},
		{"", "photo.JPEG", true},
		{"", "photo.jpg", true},
		{"application/octet-stream", "shot.webp", true},
		{"text/plain", "notes.txt", false},
		{"", "README", false},
	}

	for _, tt := range tests {
		t.Run(tt.mediaType+"|"+tt.name, func(t *testing.T) {
			if got := IsImage(tt.mediaType, tt.name); got != tt.want {
				t.Errorf("IsImage(%q, %q) = %v, want %v", tt.mediaType, tt.name, got, tt.want)
			}
		})
	}
}

func TestNewEntry(t *testing.T) {
	f := NewMemFile("Front.PNG", "image/png", []byte("data"))

	a := NewEntry(f)
	b := NewEntry(f)

	if a.ID == b.ID {
		t.Error("entries for the same file should get distinct identifiers")
	}
	if a.Ext != "png" {
		t.Errorf("Ext = %q, want png", a.Ext)
	}
	if !a.PreviewPending {
		t.Error("new entry should have a pending preview")
	}
}

func TestMemFile_ReadAll(t *testing.T) {
	f := NewMemFile("a.jpg", "image/jpeg", []byte("bytes"))

	data, err := ReadAll(f)
	if err != nil || string(data) != "bytes" {
		t.Fatalf("ReadAll() = %q, %v", data, err)
	}

	rc, _ := f.Open()
	if _, err := io.ReadAll(rc); err != nil {
		t.Fatalf("second Open() read error = %v", err)
	}
}
