package rules

import (
	"regexp"
	"strings"

	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

// loosePattern matches a long quoted hex-ish token in tuple-leading
// position, directly before another quoted value.
var loosePattern = regexp.MustCompile(`\(\s*'([0-9a-fA-F-]{25,})',\s*'`)

// looseMinHexLen is the minimum hex length for a hyphenless candidate.
const looseMinHexLen = 32

// MatchLoose reports long hex-like literals as a last-resort fallback.
// A candidate must contain a hyphen or be at least 32 hex characters once
// hyphens are stripped; anything shorter could be a legitimate value.
func MatchLoose(line string) []m.Match {
	var matches []m.Match

	for _, loc := range loosePattern.FindAllStringSubmatchIndex(line, -1) {
		literal := line[loc[2]:loc[3]]
		if !strings.Contains(literal, "-") &&
			len(strings.ReplaceAll(literal, "-", "")) < looseMinHexLen {
			continue
		}

		matches = append(matches, quotedMatch(m.RuleLoose, line, loc))
	}

	return matches
}
