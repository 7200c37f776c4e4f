package tsalert

import (
	"io"
	"log/slog"
)

// RenderOptions configures the Render function.
type RenderOptions struct {
	// Report is the path of the diagnostic report to read.
	Report string

	// SourceRoot is joined with every artifact URI of the report.
	SourceRoot string

	// Language names the grammar used for every file of the run.
	// Defaults to "c".
	Language string

	// Output receives the rendering. Defaults to stdout.
	Output io.Writer

	// Color selects ANSI styling. Defaults to auto.
	Color ColorMode

	// SeparatorWidth is the width of the "=" line under each header.
	// If 0, defaults to 32.
	SeparatorWidth int

	// Strict fails the run on the first unreadable source file instead of
	// skipping that alert.
	Strict bool

	// Dedup drops alerts identical to an earlier one.
	Dedup bool

	// AllowSyntaxErrors renders files whose tree contains syntax errors.
	AllowSyntaxErrors bool

	// Cache reuses parsed files across alerts of the same run.
	Cache bool

	// Logger receives per-alert diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// ListOptions configures the List function.
type ListOptions struct {
	// Report is the path of the diagnostic report to read.
	Report string

	// SourceRoot is joined with every artifact URI of the report.
	SourceRoot string

	// Dedup drops alerts identical to an earlier one.
	Dedup bool
}
