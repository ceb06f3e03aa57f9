package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the command bar drops
	// secondary hints.
	LayoutCompactWidth = 80
)

// Log display limits.
const (
	// LogTailLines is the number of activity log lines shown in the log view.
	LogTailLines = 400
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// flashTTL is how long a status message stays visible.
	flashTTL = 6 * time.Second
)
