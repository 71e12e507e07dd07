package rules

import (
	"regexp"

	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

// shapedPattern matches a quoted token with the 8-4-4-4-12 group layout but
// any alphanumeric digits. Seed data in the wild carries pseudo-hex fakes
// (letters past f) that a strict hex parse rejects; the shape alone marks
// them as primary-key filler.
var shapedPattern = regexp.MustCompile(
	`'([0-9a-zA-Z]{8}-[0-9a-zA-Z]{4}-[0-9a-zA-Z]{4}-[0-9a-zA-Z]{4}-[0-9a-zA-Z]{12})'`,
)

// MatchShaped reports UUID-shaped literals regardless of hex validity.
func MatchShaped(line string) []m.Match {
	var matches []m.Match

	for _, loc := range shapedPattern.FindAllStringSubmatchIndex(line, -1) {
		matches = append(matches, quotedMatch(m.RuleShaped, line, loc))
	}

	return matches
}
