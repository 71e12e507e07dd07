package domain

import (
	"strings"

	"seedstrip.dev/pkg/seedstrip/internal/domain/rules"
	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

// Recognizer applies the ordered recognizer rules to seed file text.
type Recognizer interface {
	// Scan returns the matches of the first rule that recognizes anything
	// on the line. Rules are tried in priority order and exactly one rule
	// wins per line, so a literal is never reported twice.
	Scan(line string) []m.Match
	// ScanAll runs Scan over every line of content and stamps each match
	// with its 1-based line number.
	ScanAll(content string) []m.Match
	// Residuals returns UUID-shaped literals left anywhere in content.
	// A correct transform leaves zero; anything else is surfaced to the
	// operator for review.
	Residuals(content string) []string
}

type recognizer struct {
	scanners []func(line string) []m.Match
}

// NewRecognizer creates a Recognizer. Known IDs supplied by the operator
// are matched ahead of every pattern rule.
func NewRecognizer(knownIDs []string) Recognizer {
	known := append([]string(nil), knownIDs...)

	return &recognizer{
		scanners: []func(string) []m.Match{
			func(line string) []m.Match { return rules.MatchKnown(line, known) },
			rules.MatchCanonical,
			rules.MatchCompact,
			rules.MatchShaped,
			rules.MatchGenerated,
			rules.MatchLoose,
		},
	}
}

func (r *recognizer) Scan(line string) []m.Match {
	for _, scan := range r.scanners {
		if matches := scan(line); len(matches) > 0 {
			return matches
		}
	}

	return nil
}

func (r *recognizer) ScanAll(content string) []m.Match {
	var all []m.Match

	for i, line := range strings.Split(content, "\n") {
		for _, match := range r.Scan(line) {
			match.Line = i + 1
			all = append(all, match)
		}
	}

	return all
}

func (r *recognizer) Residuals(content string) []string {
	var residuals []string

	for _, line := range strings.Split(content, "\n") {
		canonical := rules.MatchCanonical(line)
		seen := make(map[int]struct{}, len(canonical))

		for _, match := range canonical {
			residuals = append(residuals, match.Literal)
			seen[match.Start] = struct{}{}
		}

		// Shaped covers canonical spans too; skip the ones already listed.
		for _, match := range rules.MatchShaped(line) {
			if _, ok := seen[match.Start]; ok {
				continue
			}

			residuals = append(residuals, match.Literal)
		}
	}

	return residuals
}
