package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "seedstrip.dev/pkg/seedstrip/internal/model"
	"seedstrip.dev/pkg/seedstrip/pkg"
)

const (
	// residualDisplayLimit caps the residual literals listed per file.
	residualDisplayLimit = 5
	// inlineMatchLimit caps the match lines printed after a scan table.
	inlineMatchLimit = 20
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayRunReport prints the per-file table, residual warnings and errors.
func (s *SimpleUI) DisplayRunReport(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderRunTable(report))

	if report.DryRun {
		s.printf("Dry run: no files were modified\n")
	}

	for _, file := range report.Files {
		if file.Error != "" {
			s.printf("Error processing %s: %s\n", file.File, file.Error)
		}
	}

	s.printResiduals(report)

	return nil
}

func renderRunTable(report m.RunReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "UUIDs", "Columns", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, file := range report.Files {
		table.Append([]string{
			string(file.File),
			fmt.Sprintf("%d", file.UUIDRemovals),
			fmt.Sprintf("%d", file.ColumnEdits),
			fileStatus(file),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", report.Totals.Files),
		fmt.Sprintf("%d", report.Totals.UUIDRemovals),
		fmt.Sprintf("%d", report.Totals.ColumnEdits),
		fmt.Sprintf("changed %d", report.Totals.Changed),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printResiduals(report m.RunReport) {
	for _, file := range report.Files {
		if len(file.Residuals) == 0 {
			continue
		}

		s.printf("Residual UUID-shaped tokens in %s:\n", file.File)

		shown := file.Residuals
		if len(shown) > residualDisplayLimit {
			shown = shown[:residualDisplayLimit]
		}

		for _, literal := range shown {
			s.printf("  - %s\n", literal)
		}

		if extra := len(file.Residuals) - len(shown); extra > 0 {
			s.printf("  ... and %d more\n", extra)
		}
	}
}

// DisplayScan prints per-file match counts and, for small result sets, the
// individual match lines.
func (s *SimpleUI) DisplayScan(ctx context.Context, scans []FileScan, matches pkg.Spool[m.FileMatch]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderScanTable(scans, matches.Len()))

	if matches.Len() == 0 || matches.Len() > inlineMatchLimit {
		return nil
	}

	s.printf("\n")

	return matches.Range(func(_ uint64, fm m.FileMatch) error {
		s.printf("%s\n", formatMatch(fm))
		return nil
	})
}

func renderScanTable(scans []FileScan, total uint64) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Matches", "Rules"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, scan := range scans {
		table.Append([]string{
			string(scan.File),
			fmt.Sprintf("%d", scan.Matches),
			formatRuleCounts(scan.ByRule),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(scans)),
		fmt.Sprintf("%d", total),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// formatRuleCounts renders rule counts ordered by count, then name.
func formatRuleCounts(byRule map[m.RuleName]int) string {
	if len(byRule) == 0 {
		return "-"
	}

	names := make([]m.RuleName, 0, len(byRule))
	for name := range byRule {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		if byRule[names[i]] != byRule[names[j]] {
			return byRule[names[i]] > byRule[names[j]]
		}

		return names[i] < names[j]
	})

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s(%d)", name, byRule[name]))
	}

	return strings.Join(parts, " ")
}

// DisplayReports prints one summary row per persisted run.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		s.printf("No reports found\n")
		return nil
	}

	s.printf("\n%s", renderReportsTable(reports))

	return nil
}

func renderReportsTable(reports []m.RunReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Started", "Root", "Files", "Changed", "UUIDs", "Columns", "Failures"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, report := range reports {
		root := string(report.Root)
		if report.DryRun {
			root += " (dry-run)"
		}

		table.Append([]string{
			report.StartedAt.Format("2006-01-02 15:04:05"),
			root,
			fmt.Sprintf("%d", report.Totals.Files),
			fmt.Sprintf("%d", report.Totals.Changed),
			fmt.Sprintf("%d", report.Totals.UUIDRemovals),
			fmt.Sprintf("%d", report.Totals.ColumnEdits),
			fmt.Sprintf("%d", report.Totals.Failures),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Runs %d", len(reports)), "", "", "", "", "", "",
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayDiff prints the unified diff for one file.
func (s *SimpleUI) DisplayDiff(ctx context.Context, file m.Path, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		return nil
	}

	s.printf("\nDiff for %s:\n%s", file, diff)

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
