// Package controller provides output adapters for displaying strip run results.
package controller

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "seedstrip.dev/pkg/seedstrip/internal/model"
	"seedstrip.dev/pkg/seedstrip/pkg"
)

// FileScan holds recognition counts for one scanned file.
type FileScan struct {
	File    m.Path
	Matches int
	ByRule  map[m.RuleName]int
}

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeRun StartMode = iota
	ModeScan
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithRunMode sets the UI to strip run mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithScanMode sets the UI to read-only scan mode.
func WithScanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeScan
	}
}

// WithViewMode sets the UI to report viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// UI defines the interface for displaying run results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayRunReport(ctx context.Context, report m.RunReport) error
	DisplayScan(ctx context.Context, scans []FileScan, matches pkg.Spool[m.FileMatch]) error
	DisplayReports(ctx context.Context, reports []m.RunReport) error
	DisplayDiff(ctx context.Context, file m.Path, diff string) error
}

// NewUI selects the interactive TUI when the output is a terminal and the
// plain text UI otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// formatMatch renders one attributed match as a grep-style line.
func formatMatch(fm m.FileMatch) string {
	return fmt.Sprintf("%s:%d [%s] %s", fm.File, fm.Match.Line, fm.Match.Rule, fm.Match.Literal)
}

// fileStatus condenses a file report into a one-word status.
func fileStatus(file m.FileReport) string {
	switch {
	case file.Error != "":
		return "error"
	case file.Skipped:
		return "skipped (empty)"
	case file.Changed:
		return "changed"
	default:
		return "clean"
	}
}
