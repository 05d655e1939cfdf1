// Package model defines the core data structures and the filename formatter
// used throughout listing-renamer.
//
// # File
//
// File is anything that can be loaded into a slot: a path on disk or bytes
// already in memory.
//
//	f := model.NewDiskFile("/photos/front.JPG", "image/jpeg")
//	m := model.NewMemFile("side.png", "image/png", data)
//
// # Entry
//
// Entry is a slot's occupant: the source file, its preview handle and a
// preview error flag. Entries carry a stable identifier so that late
// preview results can be matched to the entry they were started for.
//
// # Filenames
//
// Filenames follow the pattern {PRODUCT}_{DATE}_{DIFFERENTIATOR}_{TYPE}.{ext}
// where TYPE is MAIN for the first filled slot and PT01, PT02, ... after it:
//
//	p := model.Params{Product: "TW-NOSEKIT", Date: "202511", Differentiator: "WomenRefresh"}
//	model.FileName(0, "jpg", p) // "TW_NOSEKIT_202511_WOMENREFRESH_MAIN.jpg"
//	model.FileName(1, "png", p) // "TW_NOSEKIT_202511_WOMENREFRESH_PT01.png"
//	model.ArchiveName(p)        // "TW_NOSEKIT_202511_WOMENREFRESH.zip"
package model
