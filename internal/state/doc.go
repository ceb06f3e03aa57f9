// Package state provides thread-safe state management for quoter.
//
// # Overview
//
// Library is the single owner of the in-memory quote list and the sync status.
// The background poller, the TUI and the CLI commands all go through it, so
// the list never needs its own locking elsewhere.
//
// # Architecture
//
//	Producers:                      Consumer (UI):
//	┌──────────────────┐           ┌──────────────────┐
//	│ syncer.Sync()    │           │                  │
//	│ ui add / import  │──────────→│ lib.Snapshot()   │
//	│ lib.Replace/Add  │  (mutex)  │      ↓           │
//	│ lib.RecordSync   │           │  render view     │
//	└──────────────────┘           └──────────────────┘
//
// # Persistence
//
// A Persister passed to NewLibrary is called after every list mutation with a
// copy of the new list. Mutations are serialized with their writes so the file
// on disk always reflects the latest in-memory list. A failed write still
// leaves the new list in memory and is reported to the caller.
//
// # Sync Status
//
// RecordSync mirrors the poller outcome:
//
//	lib.RecordSync(added, updated, pushed, nil)  // success resets failures
//	lib.RecordSync(0, 0, 0, err)                 // failure keeps old counters
//
// IsOffline reports two or more consecutive failures.
//
// # Copying
//
// Snapshot and Quotes return deep copies; errors are re-wrapped so callers
// never share the stored error value.
package state
