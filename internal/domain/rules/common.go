// Package rules implements the recognizer rules that identify UUID-shaped
// literals in seed file lines. Each rule reports matches independently; the
// ordering and first-match-wins policy live in the domain recognizer.
package rules

import (
	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

// TupleLeading reports whether the span starting at start is in
// tuple-leading position: preceded by an opening parenthesis with nothing
// but whitespace in between.
func TupleLeading(line string, start int) bool {
	i := start - 1
	for i >= 0 && isSpace(line[i]) {
		i--
	}

	return i >= 0 && line[i] == '('
}

// SeparatorLen returns the length of the comma-plus-whitespace separator
// immediately after the span ending at end, or -1 when no comma follows.
// The separator is what gets removed together with a leading literal.
func SeparatorLen(line string, end int) int {
	if end >= len(line) || line[end] != ',' {
		return -1
	}

	n := 1
	for end+n < len(line) && isSpace(line[end+n]) {
		n++
	}

	return n
}

// isSpace checks for the whitespace allowed inside a tuple head.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// quotedMatch builds a Match from submatch indices where group 1 is the
// bare literal and the surrounding single quotes sit directly outside it.
func quotedMatch(rule m.RuleName, line string, loc []int) m.Match {
	return m.Match{
		Rule:    rule,
		Literal: line[loc[2]:loc[3]],
		Start:   loc[2] - 1,
		End:     loc[3] + 1,
		Quoted:  true,
	}
}
