package model

import "time"

// EditKind distinguishes the two edits the stripper applies.
type EditKind string

const (
	// EditValue is a tuple-leading UUID literal removal.
	EditValue EditKind = "value"
	// EditColumn is a leading "id" column-list removal.
	EditColumn EditKind = "column"
)

// Removal records one edit applied to a file.
type Removal struct {
	Kind    EditKind `yaml:"kind"`
	Rule    RuleName `yaml:"rule,omitempty"`
	Literal string   `yaml:"literal"`
	Line    int      `yaml:"line"`
}

// StripResult is the outcome of transforming one file's content.
type StripResult struct {
	Content      string
	Removals     []Removal
	UUIDRemovals int
	ColumnEdits  int
	Changed      bool
}

// FileReport summarizes what happened to a single file during a run.
type FileReport struct {
	File         Path      `yaml:"file"`
	UUIDRemovals int       `yaml:"uuid_removals"`
	ColumnEdits  int       `yaml:"column_edits"`
	Changed      bool      `yaml:"changed"`
	Skipped      bool      `yaml:"skipped,omitempty"`
	Error        string    `yaml:"error,omitempty"`
	Residuals    []string  `yaml:"residuals,omitempty"`
	Removals     []Removal `yaml:"removals,omitempty"`
}

// Totals aggregates counts across a whole run.
type Totals struct {
	Files        int `yaml:"files"`
	Changed      int `yaml:"changed"`
	UUIDRemovals int `yaml:"uuid_removals"`
	ColumnEdits  int `yaml:"column_edits"`
	Failures     int `yaml:"failures"`
	Residuals    int `yaml:"residuals"`
}

// RunReport is the persisted record of one execution.
type RunReport struct {
	StartedAt time.Time    `yaml:"started_at"`
	Root      Path         `yaml:"root"`
	DryRun    bool         `yaml:"dry_run,omitempty"`
	Files     []FileReport `yaml:"files"`
	Totals    Totals       `yaml:"totals"`
}

// Sum recomputes the aggregate counters from the per-file reports.
func (r *RunReport) Sum() {
	totals := Totals{Files: len(r.Files)}

	for _, file := range r.Files {
		if file.Changed {
			totals.Changed++
		}

		if file.Error != "" {
			totals.Failures++
		}

		totals.UUIDRemovals += file.UUIDRemovals
		totals.ColumnEdits += file.ColumnEdits
		totals.Residuals += len(file.Residuals)
	}

	r.Totals = totals
}
