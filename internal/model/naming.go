package model

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultExtension is used when a file name carries no extension.
const DefaultExtension = "jpg"

// Params holds the user-supplied naming parameters.
type Params struct {
	// Product is the product name, e.g. "TW-NOSEKIT".
	Product string

	// Date is expected as YYYYMM, e.g. "202511".
	Date string

	// Differentiator distinguishes listings of the same product and date.
	Differentiator string
}

// Normalized returns a copy of p with every field passed through Normalize.
func (p Params) Normalized() Params {
	return Params{
		Product:        Normalize(p.Product),
		Date:           Normalize(p.Date),
		Differentiator: Normalize(p.Differentiator),
	}
}

// Prefix returns "{PRODUCT}_{DATE}_{DIFFERENTIATOR}" using normalized fields.
func (p Params) Prefix() string {
	n := p.Normalized()
	return n.Product + "_" + n.Date + "_" + n.Differentiator
}

var (
	upper        = cases.Upper(language.Und)
	invalidChars = regexp.MustCompile(`[^A-Z0-9_]`)
	datePattern  = regexp.MustCompile(`^[0-9]{4}(0[1-9]|1[0-2])$`)
)

// Normalize converts free text into a filename token.
//
// The following transformations are applied in order:
//   - Leading and trailing whitespace → removed
//   - Letters → upper case (full Unicode mapping, so "ß" becomes "SS")
//   - Whitespace runs, including Unicode spaces such as NBSP → single underscore
//   - Any remaining character outside [A-Z0-9_] → underscore
//
// Example:
//
//	Normalize("women refresh") // Returns "WOMEN_REFRESH"
//	Normalize("Tw Nose Kit!")  // Returns "TW_NOSE_KIT_"
//	Normalize("TW-NOSEKIT")    // Returns "TW_NOSEKIT"
//	Normalize("")              // Returns ""
func Normalize(s string) string {
	fields := strings.Fields(upper.String(s))
	if len(fields) == 0 {
		return ""
	}
	return invalidChars.ReplaceAllString(strings.Join(fields, "_"), "_")
}

// Extension returns the lower-cased suffix after the final dot of name,
// or DefaultExtension when there is none.
//
// Example:
//
//	Extension("photo.JPG") // Returns "jpg"
//	Extension("asset.png") // Returns "png"
//	Extension("")          // Returns "jpg"
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return DefaultExtension
	}
	ext := strings.ToLower(name[i+1:])
	if strings.ContainsAny(ext, `/\`) || strings.IndexFunc(ext, unicode.IsSpace) >= 0 {
		return DefaultExtension
	}
	return ext
}

// TypeToken maps a position among filled slots to its type token.
//
// Position 0 is always "MAIN"; position i >= 1 is "PT" followed by i
// zero-padded to two digits ("PT01" ... "PT09", "PT10").
func TypeToken(pos int) string {
	if pos <= 0 {
		return "MAIN"
	}
	return fmt.Sprintf("PT%02d", pos)
}

// FileName computes the exported name for the entry at filled position pos.
func FileName(pos int, ext string, p Params) string {
	if ext == "" {
		ext = DefaultExtension
	}
	return p.Prefix() + "_" + TypeToken(pos) + "." + ext
}

// ArchiveName computes the name of the zip archive for p.
func ArchiveName(p Params) string {
	return p.Prefix() + ".zip"
}

// ValidDate reports whether date looks like YYYYMM with a real month.
// Invalid dates are still usable in filenames; callers only warn.
func ValidDate(date string) bool {
	return datePattern.MatchString(strings.TrimSpace(date))
}

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
	"bmp":  true,
	"tif":  true,
	"tiff": true,
	"heic": true,
	"avif": true,
}

// IsImage reports whether a file looks like an image, either by its
// declared media type or by a recognised extension.
func IsImage(mediaType, name string) bool {
	if strings.HasPrefix(strings.ToLower(mediaType), "image/") {
		return true
	}
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return false
	}
	return imageExtensions[strings.ToLower(name[i+1:])]
}
