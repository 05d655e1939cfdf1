// Package export delivers the renamed images, either as one zip archive or
// as one file per filled slot.
//
// # Engine
//
// The Engine reads the filled slots, names each file by its filled position
// and hands the bytes to a Deliverer:
//
//	engine := export.NewEngine(store, reg, export.NewDirDeliverer(outDir, false), export.Options{
//	    OnProgress: func(e export.ProgressEvent) { fmt.Println(e.Message) },
//	})
//	defer engine.Close()
//
//	report := engine.ExportArchive(ctx, params)
//	if report.Status == export.StatusBlocked {
//	    for _, link := range engine.Links() {
//	        fmt.Println(link.Name, link.Handle.Path())
//	    }
//	}
//
// # Manual Links
//
// Delivery can fail without a clear signal, so the engine keeps a manual
// link for anything it could not confirm. An archive export always keeps
// its link, created before delivery is attempted. An individual export keeps
// a link only for files whose delivery returned an error.
//
// Links hold handles; ClearLinks and Close release them.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package export
