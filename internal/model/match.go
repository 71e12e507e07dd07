// Package model defines the data structures for seed file stripping.
package model

// RuleName identifies one recognizer rule.
type RuleName string

const (
	// RuleKnown matches operator-supplied literal IDs from configuration.
	RuleKnown RuleName = "known"
	// RuleCanonical matches the hyphenated 8-4-4-4-12 hexadecimal form.
	RuleCanonical RuleName = "canonical"
	// RuleCompact matches a bare 32-hex token in tuple-leading position.
	RuleCompact RuleName = "compact"
	// RuleShaped matches 8-4-4-4-12 alphanumeric groups that are not
	// strictly hexadecimal (malformed fakes found in seed data).
	RuleShaped RuleName = "shaped"
	// RuleGenerated matches a gen_random_uuid() call.
	RuleGenerated RuleName = "generated"
	// RuleLoose matches long hex-ish quoted tokens behind a structural gate.
	RuleLoose RuleName = "loose"
)

// FileMatch attributes a recognizer match to the file it was found in.
type FileMatch struct {
	File  Path  `yaml:"file"`
	Match Match `yaml:"match"`
}

// Match is one recognized UUID-shaped occurrence within a line of text.
type Match struct {
	Rule    RuleName
	Literal string // matched token without surrounding quotes
	Line    int    // 1-based line number, 0 when scanning a bare line
	Start   int    // byte offset of the span within the line
	End     int    // byte offset one past the span
	Quoted  bool   // true when the span includes single quotes
}
