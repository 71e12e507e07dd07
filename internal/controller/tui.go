package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "seedstrip.dev/pkg/seedstrip/internal/model"
	"seedstrip.dev/pkg/seedstrip/pkg"
)

// Styles shared by the TUI models. Zero-count rows are dimmed the same way
// regardless of which screen renders them.
var (
	tuiHeaderStyle  = lipgloss.NewStyle().Bold(true).Border(lipgloss.DoubleBorder()).Padding(0, 2)
	tuiTitleStyle   = lipgloss.NewStyle().Bold(true)
	tuiDimStyle     = lipgloss.NewStyle().Faint(true)
	tuiErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	tuiChangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tuiWarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	tuiHelpStyle    = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
	mode   StartMode
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start records the operating mode so screens can label themselves.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	config := StartConfig{}
	for _, option := range options {
		option(&config)
	}

	p.mode = config.mode

	return nil
}

// Close finalizes the UI.
func (p *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed. Display methods run their own
// programs, so there is nothing left to wait for.
func (p *TUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

func (p *TUI) header() string {
	title := "Seedstrip - Strip Run"

	switch p.mode {
	case ModeScan:
		title = "Seedstrip - Scan"
	case ModeView:
		title = "Seedstrip - Reports"
	case ModeRun:
	}

	return tuiHeaderStyle.Render(title) + "\n\n"
}

// renderOrPage prints small content directly and pages everything else.
func (p *TUI) renderOrPage(model pagerModel) error {
	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayRunReport shows the per-file outcome list with residual warnings.
func (p *TUI) DisplayRunReport(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newPagerModel(p.header(), buildRunLines(report), buildRunSummary(report))

	return p.renderOrPage(model)
}

func buildRunLines(report m.RunReport) []string {
	var lines []string

	for _, file := range report.Files {
		line := fmt.Sprintf("  %s: %d uuid(s), %d column(s) (%s)",
			file.File, file.UUIDRemovals, file.ColumnEdits, fileStatus(file))

		switch {
		case file.Error != "":
			line = tuiErrorStyle.Render(line)
		case file.Changed:
			line = tuiChangedStyle.Render(line)
		default:
			line = tuiDimStyle.Render(line)
		}

		lines = append(lines, line)

		for i, literal := range file.Residuals {
			if i == residualDisplayLimit {
				lines = append(lines, tuiWarnStyle.Render(fmt.Sprintf(
					"    ... and %d more residuals", len(file.Residuals)-residualDisplayLimit)))
				break
			}

			lines = append(lines, tuiWarnStyle.Render("    residual: "+literal))
		}
	}

	return lines
}

func buildRunSummary(report m.RunReport) []string {
	summary := []string{fmt.Sprintf(
		"  Total: %d file(s) | %d changed | %d uuid(s) | %d column(s) | %d failure(s)",
		report.Totals.Files, report.Totals.Changed, report.Totals.UUIDRemovals,
		report.Totals.ColumnEdits, report.Totals.Failures)}

	if report.DryRun {
		summary = append(summary, tuiDimStyle.Render("  Dry run: no files were modified"))
	}

	return summary
}

// DisplayScan shows per-file match counts with the individual match lines
// nested under each file.
func (p *TUI) DisplayScan(ctx context.Context, scans []FileScan, matches pkg.Spool[m.FileMatch]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	perFile := make(map[m.Path][]string, len(scans))

	err := matches.Range(func(_ uint64, fm m.FileMatch) error {
		perFile[fm.File] = append(perFile[fm.File], fmt.Sprintf(
			"    %d: [%s] %s", fm.Match.Line, fm.Match.Rule, fm.Match.Literal))
		return nil
	})
	if err != nil {
		return err
	}

	var lines []string

	for _, scan := range scans {
		line := fmt.Sprintf("  %s: %d match(es)", scan.File, scan.Matches)
		if scan.Matches == 0 {
			line = tuiDimStyle.Render(line)
		} else {
			line += " " + tuiDimStyle.Render(formatRuleCounts(scan.ByRule))
		}

		lines = append(lines, line)
		lines = append(lines, perFile[scan.File]...)
	}

	summary := []string{fmt.Sprintf(
		"  Total: %d match(es) across %d file(s)", matches.Len(), len(scans))}

	model := newPagerModel(p.header(), lines, summary)

	return p.renderOrPage(model)
}

// DisplayReports shows one line per persisted run.
func (p *TUI) DisplayReports(ctx context.Context, reports []m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var lines []string

	for _, report := range reports {
		root := string(report.Root)
		if report.DryRun {
			root += " (dry-run)"
		}

		lines = append(lines, fmt.Sprintf(
			"  %s  %s: %d file(s), %d changed, %d uuid(s), %d column(s), %d failure(s)",
			report.StartedAt.Format("2006-01-02 15:04:05"), root,
			report.Totals.Files, report.Totals.Changed, report.Totals.UUIDRemovals,
			report.Totals.ColumnEdits, report.Totals.Failures))
	}

	summary := []string{fmt.Sprintf("  Total: %d run(s)", len(reports))}

	model := newPagerModel(p.header(), lines, summary)

	return p.renderOrPage(model)
}

// diffReservedLines keeps room for the diff title and footer around the
// viewport.
const diffReservedLines = 4

// DisplayDiff pages a unified diff through a viewport when it does not fit
// on screen.
func (p *TUI) DisplayDiff(ctx context.Context, file m.Path, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		return nil
	}

	title := tuiTitleStyle.Render(fmt.Sprintf("Diff for %s", file))

	width, height := 0, 0
	if f, ok := p.output.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = w, h
		}
	}

	if height == 0 || strings.Count(diff, "\n") <= height-diffReservedLines {
		_, err := fmt.Fprintf(p.output, "%s\n%s", title, diff)
		return err
	}

	model := newDiffModel(title, diff, width, height)

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// pagerModel is the Bubble Tea model for scrollable line lists.
type pagerModel struct {
	header   string
	lines    []string
	summary  []string
	height   int
	width    int
	offset   int
	quitting bool
}

func newPagerModel(header string, lines, summary []string) pagerModel {
	return pagerModel{
		header:  header,
		lines:   lines,
		summary: summary,
	}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.height = msg.Height
		pm.width = msg.Width

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	return pm, nil
}

//nolint:cyclop,exhaustive // Key handling requires multiple cases for UI navigation
func (pm pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		pm.quitting = true
		return pm, tea.Quit
	default:
		// Handle other key types in the string switch below
	}

	switch msg.String() {
	case "q":
		pm.quitting = true
		return pm, tea.Quit

	case "down", "j":
		pm.offset++

		maxOffset := pm.maxOffset()
		if pm.offset > maxOffset {
			pm.offset = maxOffset
		}

		return pm, nil

	case "up", "k":
		pm.offset--
		if pm.offset < 0 {
			pm.offset = 0
		}

		return pm, nil

	case "g", "home":
		pm.offset = 0

		return pm, nil

	case "G", "end":
		pm.offset = pm.maxOffset()

		return pm, nil

	case "d", "pgdown":
		pm.offset += pm.itemsPerPage()

		maxOffset := pm.maxOffset()
		if pm.offset > maxOffset {
			pm.offset = maxOffset
		}

		return pm, nil

	case "u", "pgup":
		pm.offset -= pm.itemsPerPage()
		if pm.offset < 0 {
			pm.offset = 0
		}

		return pm, nil
	}

	return pm, nil
}

// itemsPerPage calculates how many lines fit on screen.
func (pm pagerModel) itemsPerPage() int {
	if pm.height == 0 {
		return 10 // Default
	}
	// Reserve space for:
	// - Header: 4 lines (box + empty)
	// - Summary: 3 lines (empty + totals)
	// - Footer: 3 lines (empty + page + help)
	// - Top margin: 2 lines
	// Total: 12 lines
	reserved := 12

	available := pm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

// maxOffset returns the maximum scroll offset.
func (pm pagerModel) maxOffset() int {
	maxOff := len(pm.lines) - pm.itemsPerPage()
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

// needsPagination returns true if the list is too large to fit on screen.
func (pm pagerModel) needsPagination() bool {
	if len(pm.lines) == 0 {
		return false
	}

	return len(pm.lines) > pm.itemsPerPage() && pm.height > 0
}

func (pm pagerModel) View() string {
	var b strings.Builder

	b.WriteString(pm.header)

	if len(pm.lines) == 0 {
		b.WriteString("  Nothing to display\n")
		return b.String()
	}

	needsPagination := pm.needsPagination()

	start := pm.offset
	if start >= len(pm.lines) {
		start = len(pm.lines) - 1
	}

	end := start + pm.itemsPerPage()
	if end > len(pm.lines) {
		end = len(pm.lines)
	}

	visible := pm.lines
	if needsPagination {
		visible = pm.lines[start:end]
	}

	for _, line := range visible {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")

	for _, line := range pm.summary {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if needsPagination {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  Lines %d-%d of %d\n", start+1, end, len(pm.lines))
		b.WriteString(tuiHelpStyle.Render("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit"))
		b.WriteString("\n")
	}

	return b.String()
}

// diffModel pages one file diff through a viewport.
type diffModel struct {
	title    string
	viewport viewport.Model
	quitting bool
}

func newDiffModel(title, diff string, width, height int) diffModel {
	vpHeight := height - diffReservedLines
	if vpHeight < 1 {
		vpHeight = 1
	}

	vp := viewport.New(width, vpHeight)
	vp.SetContent(diff)

	return diffModel{title: title, viewport: vp}
}

func (dm diffModel) Init() tea.Cmd {
	return nil
}

func (dm diffModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		dm.viewport.Width = msg.Width

		vpHeight := msg.Height - diffReservedLines
		if vpHeight < 1 {
			vpHeight = 1
		}

		dm.viewport.Height = vpHeight

		return dm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			dm.quitting = true
			return dm, tea.Quit
		}
	}

	var cmd tea.Cmd
	dm.viewport, cmd = dm.viewport.Update(msg)

	return dm, cmd
}

func (dm diffModel) View() string {
	var b strings.Builder

	b.WriteString(dm.title)
	b.WriteString("\n")
	b.WriteString(dm.viewport.View())
	b.WriteString("\n")
	b.WriteString(tuiHelpStyle.Render("  ↑/k: up | ↓/j: down | q: quit"))
	b.WriteString("\n")

	return b.String()
}
