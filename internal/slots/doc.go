// Package slots holds the ten image slots and the operations that change
// them: ingestion, removal, swapping and drag-and-drop reordering.
//
// # Store
//
//	store := slots.NewStore(slots.Options{
//	    Registry:  reg,
//	    Previewer: ioutils.NewImageService(),
//	})
//	defer store.Close()
//
//	res, err := store.AddFiles(files) // fills empty slots in order
//	store.Swap(0, 3)
//	store.Remove(2)
//
// # Previews
//
// Each accepted file gets a preview generated in the background. Results are
// matched to their entry by identifier, never by slot index: if the slot was
// cleared or reassigned before the preview finished, the result is thrown
// away and its handle released. A preview that fails only sets the entry's
// PreviewErr flag; the file stays usable for export.
//
// # Handles
//
// The store owns every preview handle it holds. A handle is released when
// its entry is removed, replaced or cleared, and on Close.
package slots
