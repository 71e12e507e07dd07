package rules

import (
	"regexp"

	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

// generatedPattern matches the Postgres gen_random_uuid() call.
var generatedPattern = regexp.MustCompile(`(?i)gen_random_uuid\(\)`)

// MatchGenerated reports gen_random_uuid() calls. A generation call in the
// leading slot pins the key column just like a literal does and is removed
// the same way.
func MatchGenerated(line string) []m.Match {
	var matches []m.Match

	for _, loc := range generatedPattern.FindAllStringIndex(line, -1) {
		matches = append(matches, m.Match{
			Rule:    m.RuleGenerated,
			Literal: line[loc[0]:loc[1]],
			Start:   loc[0],
			End:     loc[1],
		})
	}

	return matches
}
