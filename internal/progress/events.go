// Package progress defines the events a snapshot build reports while it
// assembles the document model. Events are plain data so any presentation
// layer can render them; emission order always equals enumeration order.
package progress

import (
	"github.com/dirsnap/dirsnap/internal/types"
)

// EventKind names one step of a snapshot build.
type EventKind string

const (
	// EventKindStart opens a build for one root.
	EventKindStart EventKind = "start"
	// EventKindEntry reports one processed file entry.
	EventKindEntry EventKind = "entry"
	// EventKindWarning carries a recoverable problem worth surfacing.
	EventKindWarning EventKind = "warning"
	// EventKindSummary carries the per-kind counts once the file list is done.
	EventKindSummary EventKind = "summary"
	// EventKindDone closes the build.
	EventKindDone EventKind = "done"
)

// Event describes one step of a snapshot build.
type Event struct {
	Kind         EventKind
	RootPath     string
	RelativePath string
	// EntryKind holds the entry's classification for entry events.
	EntryKind string
	// Notice carries a failure notice on entry events or the message on
	// warning events.
	Notice string
	// Counts is populated on summary events only.
	Counts *types.KindCounts
}

// Callback receives build events synchronously, in emission order. A nil
// Callback disables reporting.
type Callback func(Event)
