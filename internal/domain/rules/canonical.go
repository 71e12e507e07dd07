package rules

import (
	"regexp"

	"github.com/google/uuid"

	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

// canonicalPattern matches a quoted hyphenated UUID in 8-4-4-4-12 hex form.
var canonicalPattern = regexp.MustCompile(
	`'([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})'`,
)

// MatchCanonical reports every quoted canonical UUID literal in line.
// Candidates are confirmed with a real UUID parse, so the primary rule never
// reports a token that is merely shaped like one.
func MatchCanonical(line string) []m.Match {
	var matches []m.Match

	for _, loc := range canonicalPattern.FindAllStringSubmatchIndex(line, -1) {
		if _, err := uuid.Parse(line[loc[2]:loc[3]]); err != nil {
			continue
		}

		matches = append(matches, quotedMatch(m.RuleCanonical, line, loc))
	}

	return matches
}
