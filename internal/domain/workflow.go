package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"seedstrip.dev/pkg/seedstrip/internal/adapter"
	"seedstrip.dev/pkg/seedstrip/internal/controller"
	m "seedstrip.dev/pkg/seedstrip/internal/model"
	"seedstrip.dev/pkg/seedstrip/pkg"
)

// RunArgs contains the arguments for a strip run over seed files.
type RunArgs struct {
	Roots    []m.Path
	Globs    []string
	Exclude  []string
	Reports  m.Path
	DryRun   bool
	KnownIDs []string
	Target   Target
}

// ScanArgs contains the arguments for a read-only recognition pass.
type ScanArgs struct {
	Roots    []m.Path
	Globs    []string
	Exclude  []string
	KnownIDs []string
}

// ViewArgs selects previously persisted run reports.
type ViewArgs struct {
	Reports m.Path
}

// Workflow ties together discovery, stripping, reporting and display.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	Scan(ctx context.Context, args ScanArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SeedFSAdapter
	adapter.ReportStore
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(fsAdapter adapter.SeedFSAdapter, reportStore adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{
		SeedFSAdapter: fsAdapter,
		ReportStore:   reportStore,
		UI:            ui,
	}
}

// Run strips every discovered seed file in place, or renders diffs instead
// when args.DryRun is set. Failures on individual files are recorded in the
// run report rather than aborting the remaining files. The report is
// persisted under args.Reports unless that path is empty.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	files, err := w.discover(ctx, args.Roots, args.Globs, args.Exclude)
	if err != nil {
		return err
	}

	stripper := NewStripper(NewRecognizer(args.KnownIDs), args.Target)

	report := m.RunReport{
		StartedAt: time.Now(),
		Root:      rootsLabel(args.Roots),
		DryRun:    args.DryRun,
	}

	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			w.Close(ctx)
			return err
		}

		report.Files = append(report.Files, w.processFile(ctx, stripper, file, args.DryRun))
	}

	report.Sum()

	if err := w.DisplayRunReport(ctx, report); err != nil {
		w.Close(ctx)
		slog.Error("Failed to display run report", "error", err)

		return fmt.Errorf("display: %w", err)
	}

	if args.Reports != "" {
		path, err := w.SaveReport(ctx, args.Reports, report)
		if err != nil {
			w.Close(ctx)
			return fmt.Errorf("save report: %w", err)
		}

		slog.Info("Persisted run report", "path", path)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

// Scan recognizes UUID-shaped literals across the discovered seed files
// without modifying anything. Matches are spooled to disk so large trees do
// not pin every occurrence in memory.
func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	files, err := w.discover(ctx, args.Roots, args.Globs, args.Exclude)
	if err != nil {
		return err
	}

	recognizer := NewRecognizer(args.KnownIDs)

	matches, err := pkg.NewSpool[m.FileMatch]("scan")
	if err != nil {
		return fmt.Errorf("create match spool: %w", err)
	}

	defer func() {
		if err := matches.Close(); err != nil {
			slog.Warn("Failed to close match spool", "error", err)
		}
	}()

	if err := w.Start(ctx, controller.WithScanMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	scans := make([]controller.FileScan, 0, len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			w.Close(ctx)
			return err
		}

		scan, scanErr := w.scanFile(ctx, recognizer, file, matches)
		if scanErr != nil {
			w.Close(ctx)
			return scanErr
		}

		scans = append(scans, scan)
	}

	if err := w.DisplayScan(ctx, scans, matches); err != nil {
		w.Close(ctx)
		slog.Error("Failed to display scan results", "error", err)

		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

// View loads persisted run reports from args.Reports and displays them.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	if err := w.DisplayReports(ctx, reports); err != nil {
		w.Close(ctx)
		slog.Error("Failed to display reports", "error", err)

		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

func (w *workflow) discover(ctx context.Context, roots []m.Path, globs, exclude []string) ([]m.SeedFile, error) {
	if len(roots) == 0 {
		roots = []m.Path{"."}
	}

	files, err := w.Discover(ctx, roots, globs, exclude...)
	if err != nil {
		return nil, fmt.Errorf("discover seed files: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no seed files matched %v under %v", globs, roots)
	}

	slog.Debug("Discovered seed files", "count", len(files))

	return files, nil
}

// processFile reads, strips and writes back a single seed file. Errors are
// captured on the returned report so one broken file cannot abort the run.
func (w *workflow) processFile(ctx context.Context, stripper Stripper, file m.SeedFile, dryRun bool) m.FileReport {
	fileReport := m.FileReport{File: file.Origin}

	content, err := w.ReadFile(ctx, file.Origin)
	if err != nil {
		slog.Error("Failed to read seed file", "file", file.Origin, "error", err)
		fileReport.Error = err.Error()

		return fileReport
	}

	if len(strings.TrimSpace(string(content))) == 0 {
		slog.Warn("Skipping empty seed file", "file", file.Origin)
		fileReport.Skipped = true

		return fileReport
	}

	result := stripper.Strip(string(content))
	fileReport.UUIDRemovals = result.UUIDRemovals
	fileReport.ColumnEdits = result.ColumnEdits
	fileReport.Changed = result.Changed
	fileReport.Removals = result.Removals
	fileReport.Residuals = stripper.Residuals(result.Content)

	switch {
	case !result.Changed:
		slog.Debug("Seed file already clean", "file", file.Origin)
	case dryRun:
		diff, diffErr := unifiedDiff(string(content), result.Content, string(file.Origin))
		if diffErr != nil {
			slog.Error("Failed to build diff", "file", file.Origin, "error", diffErr)
			fileReport.Error = diffErr.Error()
		} else if err := w.DisplayDiff(ctx, file.Origin, diff); err != nil {
			slog.Error("Failed to display diff", "file", file.Origin, "error", err)
		}
	default:
		if err := w.WriteFile(ctx, file.Origin, []byte(result.Content), file.Mode); err != nil {
			slog.Error("Failed to write seed file", "file", file.Origin, "error", err)
			fileReport.Error = err.Error()

			return fileReport
		}

		slog.Info("Stripped seed file", "file", file.Origin,
			"uuids", result.UUIDRemovals, "columns", result.ColumnEdits)
	}

	return fileReport
}

func (w *workflow) scanFile(ctx context.Context, recognizer Recognizer, file m.SeedFile, matches pkg.Spool[m.FileMatch]) (controller.FileScan, error) {
	scan := controller.FileScan{File: file.Origin, ByRule: map[m.RuleName]int{}}

	content, err := w.ReadFile(ctx, file.Origin)
	if err != nil {
		return scan, fmt.Errorf("read %s: %w", file.Origin, err)
	}

	for _, match := range recognizer.ScanAll(string(content)) {
		if err := matches.Append(m.FileMatch{File: file.Origin, Match: match}); err != nil {
			return scan, fmt.Errorf("spool match: %w", err)
		}

		scan.Matches++
		scan.ByRule[match.Rule]++
	}

	slog.Debug("Scanned seed file", "file", file.Origin, "matches", scan.Matches)

	return scan, nil
}

// unifiedDiff renders the before and after contents the way diff -u would.
func unifiedDiff(before, after, path string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (stripped)",
		Context:  3,
	})
}

func rootsLabel(roots []m.Path) m.Path {
	if len(roots) == 0 {
		return "."
	}

	parts := make([]string, 0, len(roots))
	for _, root := range roots {
		parts = append(parts, string(root))
	}

	return m.Path(strings.Join(parts, ", "))
}
