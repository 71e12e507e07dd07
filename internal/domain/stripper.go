package domain

import (
	"regexp"
	"strings"

	"seedstrip.dev/pkg/seedstrip/internal/domain/rules"
	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

// Target identifies the table whose INSERT statements carry the id column
// to drop.
type Target struct {
	Schema   string
	Table    string
	IDColumn string
}

// Stripper rewrites seed file content so the datastore generates primary
// keys itself: tuple-leading UUID literals go, and the id column is dropped
// from matching INSERT column lists. It recognizes as well as strips, so
// callers can audit the output it produced.
type Stripper interface {
	Recognizer
	Strip(content string) m.StripResult
}

type stripper struct {
	Recognizer
	target        Target
	columnPattern *regexp.Regexp
}

// NewStripper creates a Stripper for the given target table. An empty
// table or id column disables column-list editing.
func NewStripper(recognizer Recognizer, target Target) Stripper {
	s := &stripper{Recognizer: recognizer, target: target}
	if target.Table != "" && target.IDColumn != "" {
		s.columnPattern = compileColumnPattern(target)
	}

	return s
}

// compileColumnPattern builds the INSERT header pattern. Group 1 captures
// everything up to the opening parenthesis so the rewrite preserves the
// original header bytes exactly.
func compileColumnPattern(target Target) *regexp.Regexp {
	return regexp.MustCompile(
		`(?i)(INSERT INTO\s+"` + regexp.QuoteMeta(target.Schema) +
			`"\."` + regexp.QuoteMeta(target.Table) + `"\s*\(\s*)"` +
			regexp.QuoteMeta(target.IDColumn) + `"\s*,\s*`,
	)
}

func (s *stripper) Strip(content string) m.StripResult {
	var result m.StripResult

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !candidateLine(line) {
			continue
		}

		stripped, removals := s.stripLine(line, i+1)
		if len(removals) == 0 {
			continue
		}

		lines[i] = stripped
		result.Removals = append(result.Removals, removals...)
		result.UUIDRemovals += len(removals)
	}

	transformed := strings.Join(lines, "\n")

	transformed, columnRemovals := s.stripIDColumn(transformed)
	result.Removals = append(result.Removals, columnRemovals...)
	result.ColumnEdits = len(columnRemovals)

	result.Content = transformed
	result.Changed = transformed != content

	return result
}

// candidateLine gates value scanning to lines that can hold value tuples.
func candidateLine(line string) bool {
	return strings.Contains(line, "VALUES") || strings.HasPrefix(strings.TrimSpace(line), "(")
}

// stripLine removes tuple-leading matches from one line until none remain.
// Each removal re-runs recognition on the shortened line, which is what
// clears rows keyed by several consecutive UUID columns.
func (s *stripper) stripLine(line string, lineNum int) (string, []m.Removal) {
	var removals []m.Removal

	for {
		removed := false

		for _, match := range s.Scan(line) {
			if !rules.TupleLeading(line, match.Start) {
				continue
			}

			sep := rules.SeparatorLen(line, match.End)
			if sep < 0 {
				continue
			}

			line = line[:match.Start] + line[match.End+sep:]
			removals = append(removals, m.Removal{
				Kind:    m.EditValue,
				Rule:    match.Rule,
				Literal: match.Literal,
				Line:    lineNum,
			})
			removed = true

			break
		}

		if !removed {
			return line, removals
		}
	}
}

// stripIDColumn drops the leading id column from every matching INSERT
// column list. Bytes outside the matched column span are copied through
// untouched.
func (s *stripper) stripIDColumn(content string) (string, []m.Removal) {
	if s.columnPattern == nil {
		return content, nil
	}

	locs := s.columnPattern.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return content, nil
	}

	removals := make([]m.Removal, 0, len(locs))

	var b strings.Builder

	last := 0
	for _, loc := range locs {
		b.WriteString(content[last:loc[3]])
		last = loc[1]

		removals = append(removals, m.Removal{
			Kind:    m.EditColumn,
			Literal: s.target.IDColumn,
			Line:    1 + strings.Count(content[:loc[0]], "\n"),
		})
	}
	b.WriteString(content[last:])

	return b.String(), removals
}
