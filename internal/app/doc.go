// Package app is the composition root for quoter.
//
// # Overview
//
// Open wires configuration, the quote store, the shared state.Library and,
// when sync_url is set, the HTTP client and syncer. Both the TUI (Run) and
// the one-shot CLI commands start from the same Env, so they read and write
// the same quotes.json and activity log.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Open()     │
//	└──────┬───────┘
//	       ├─────> config.Load()        Read config.toml
//	       ├─────> openLogger()         slog text handler on log_file
//	       ├─────> storage.Load()       quotes.json or seed quotes
//	       ├─────> state.NewLibrary()   persists through storage.Save
//	       └─────> syncer.New()         only with sync_url; Restore()
//	                                    reloads conflicts.json
//
//	Run():
//	       ├─────> prefs.Load()         theme, last_category
//	       ├─────> StartPoller()        background sync with backoff
//	       └─────> ui.Run()             TUI (blocks)
//
// # Polling Behavior
//
// The poller syncs every poll_seconds (default 30). After a failure the
// wait doubles per consecutive failure, capped at 30 seconds (or the base
// interval if that is longer). A manual sync that is already running makes
// the poller skip its turn without counting a failure. Failures are
// recorded in the library's SyncStatus, where the UI header shows them.
//
// # Error Handling
//
// Fatal (returned from Open or Run):
//   - invalid config.toml
//   - unreadable or corrupt quotes.json or conflicts.json
//   - unusable sync_url
//   - log file that cannot be created
//
// Recoverable (logged, shown in the UI, polling continues):
//   - endpoint unreachable or returning errors
//   - quotes that fail to persist after an edit
package app
