package rules

import "testing"

func TestTupleLeading(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		start int
		want  bool
	}{
		{"directly after paren", "('abc', 'def')", 1, true},
		{"whitespace after paren", "(  'abc', 'def')", 3, true},
		{"tab after paren", "(\t'abc')", 2, true},
		{"second value", "('abc', 'def')", 8, false},
		{"start of line", "'abc', 'def'", 0, false},
		{"after comma", "x, 'abc'", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TupleLeading(tt.line, tt.start); got != tt.want {
				t.Errorf("TupleLeading(%q, %d) = %v, want %v", tt.line, tt.start, got, tt.want)
			}
		})
	}
}

func TestSeparatorLen(t *testing.T) {
	tests := []struct {
		name string
		line string
		end  int
		want int
	}{
		{"comma space", "('a', 'b')", 4, 2},
		{"comma only", "('a','b')", 4, 1},
		{"comma many spaces", "('a',   'b')", 4, 4},
		{"no comma", "('a')", 4, -1},
		{"end of line", "('a'", 4, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeparatorLen(tt.line, tt.end); got != tt.want {
				t.Errorf("SeparatorLen(%q, %d) = %d, want %d", tt.line, tt.end, got, tt.want)
			}
		})
	}
}
