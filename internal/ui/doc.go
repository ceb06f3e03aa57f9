// Package ui provides the quoter terminal user interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds all view state and is driven
// by key presses, a refresh tick and the results of background commands
// (sync, resolve, import, export, log reads). Rendering uses lipgloss with
// one of three themes.
//
// # Package Structure
//
//   - app.go: Model, Options, message loop and Run
//   - actions.go: key dispatch plus sync, import and export commands
//   - quote_view.go: category bar and the current quote
//   - add_form.go: two-input add form with validation
//   - conflicts.go: conflict queue with keep-server/keep-local resolution
//   - logs.go: activity log tail in a viewport
//   - header.go: status header and command bar
//   - modal.go: Modal interface and the import/export path prompt
//   - help.go, keys.go, theme.go, box.go, style_helpers.go: presentation
//
// # Views
//
//   - Quote (default): a random quote from the selected category
//   - Add: text and category inputs
//   - Conflicts: queued sync conflicts, local and server copies side by side
//   - Logs: the last LogTailLines lines of the activity log
//
// # Data Flow
//
// The UI never blocks on the network. Every tick it copies a snapshot from
// the shared state.Library and the conflict queue from the Syncer. Manual
// syncs and resolutions run as tea.Cmds and report back through messages.
// The background poller in package app syncs on its own cadence; when it
// is mid-sync a manual request reports that and changes nothing.
//
// # Preferences
//
// Theme (T) and the selected category (c/C) are written to prefs.toml as
// they change, so the next start restores both.
package ui
