// Package handle provides ephemeral references to in-memory bytes.
//
// A Handle plays the role of a browser object URL: it points at bytes that
// can be previewed or delivered, and it must be released exactly once when
// it is no longer needed.
//
// # Registry
//
// Handles are created and released through a Registry:
//
//	reg, err := handle.NewTempRegistry("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reg.Close()
//
//	h, err := reg.Create("preview.jpg", data)
//	// ... use h.Path() ...
//	reg.Release(h)
//
// TempRegistry stores each handle as a file in a private temporary directory,
// so a handle can be shown to the user as a path they open by hand.
package handle
