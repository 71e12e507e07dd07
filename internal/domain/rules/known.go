package rules

import (
	"sort"
	"strings"

	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

// MatchKnown reports quoted occurrences of operator-supplied literal IDs.
// Known IDs take priority over every pattern rule: the operator has already
// decided these exact tokens are primary keys, shape notwithstanding.
func MatchKnown(line string, ids []string) []m.Match {
	var matches []m.Match

	for _, id := range ids {
		if id == "" {
			continue
		}

		quoted := "'" + id + "'"
		from := 0

		for {
			i := strings.Index(line[from:], quoted)
			if i < 0 {
				break
			}

			start := from + i
			matches = append(matches, m.Match{
				Rule:    m.RuleKnown,
				Literal: id,
				Start:   start,
				End:     start + len(quoted),
				Quoted:  true,
			})
			from = start + len(quoted)
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Start < matches[j].Start })

	return matches
}
