package rules

import (
	"regexp"

	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

// compactPattern matches a quoted bare 32-hex token in tuple-leading
// position, directly before another quoted value. The trailing quote is the
// gate: a 32-hex token followed by a number or NULL is left alone.
var compactPattern = regexp.MustCompile(`\(\s*'([0-9a-fA-F]{32})',\s*'`)

// MatchCompact reports compact UUID literals, hex with the hyphens dropped.
func MatchCompact(line string) []m.Match {
	var matches []m.Match

	for _, loc := range compactPattern.FindAllStringSubmatchIndex(line, -1) {
		matches = append(matches, quotedMatch(m.RuleCompact, line, loc))
	}

	return matches
}
