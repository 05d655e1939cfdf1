package export

import (
	"github.com/handiism/listing-renamer/internal/handle"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents an export progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Mode is the export strategy.
type Mode string

const (
	ModeArchive    Mode = "zip"
	ModeIndividual Mode = "individual"
)

// Status is the outcome of an export run.
type Status int

const (
	// StatusNoFiles means there was nothing to export; nothing happened.
	StatusNoFiles Status = iota

	// StatusTriggered means the archive was delivered.
	StatusTriggered

	// StatusBlocked means the archive delivery failed; its manual link is
	// available.
	StatusBlocked

	// StatusAllTriggered means every individual file was delivered.
	StatusAllTriggered

	// StatusSomeBlocked means at least one individual file was not
	// delivered; see the manual links.
	StatusSomeBlocked

	// StatusFailed means reading or packaging failed and the run was
	// abandoned.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNoFiles:
		return "no_files"
	case StatusTriggered:
		return "triggered"
	case StatusBlocked:
		return "blocked"
	case StatusAllTriggered:
		return "all_triggered"
	case StatusSomeBlocked:
		return "some_blocked"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Report summarises one export run.
type Report struct {
	Mode    Mode
	Status  Status
	Message string

	// Files lists the export names in filled order.
	Files []string

	// Blocked lists the names whose delivery could not be confirmed.
	Blocked []string
}

// Link is a manual download fallback.
type Link struct {
	Name   string
	Handle handle.Handle
}
