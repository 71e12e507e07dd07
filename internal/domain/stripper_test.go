package domain

import (
	"strings"
	"testing"

	m "seedstrip.dev/pkg/seedstrip/internal/model"
)

func defaultTarget() Target {
	return Target{Schema: "public", Table: "questions", IDColumn: "id"}
}

func newTestStripper(knownIDs []string) Stripper {
	return NewStripper(NewRecognizer(knownIDs), defaultTarget())
}

func TestStripSingleLineInsert(t *testing.T) {
	stripper := newTestStripper(nil)

	content := `INSERT INTO "public"."questions" ("id", "topic_id", "difficulty", "question") VALUES ('f6g7h8i9-j0k1-4234-9fgh-234567890131', 1, 2, 'Explain SQL indexes.');`
	want := `INSERT INTO "public"."questions" ("topic_id", "difficulty", "question") VALUES (1, 2, 'Explain SQL indexes.');`

	result := stripper.Strip(content)

	if result.Content != want {
		t.Errorf("unexpected content:\ngot  %s\nwant %s", result.Content, want)
	}
	if result.UUIDRemovals != 1 {
		t.Errorf("expected 1 UUID removal, got %d", result.UUIDRemovals)
	}
	if result.ColumnEdits != 1 {
		t.Errorf("expected 1 column edit, got %d", result.ColumnEdits)
	}
	if !result.Changed {
		t.Error("expected content to be marked changed")
	}
	if len(result.Removals) != 2 {
		t.Fatalf("expected 2 removals, got %d", len(result.Removals))
	}
	if result.Removals[0].Rule != m.RuleShaped {
		t.Errorf("expected rule %s, got %s", m.RuleShaped, result.Removals[0].Rule)
	}
	if result.Removals[1].Kind != m.EditColumn {
		t.Errorf("expected a column removal, got %s", result.Removals[1].Kind)
	}
}

func TestStripLooseFallback(t *testing.T) {
	stripper := newTestStripper(nil)

	content := "('a1b2c3d4e5f6478990abcdef123456789012', 'What is normalization?', 'cat-7'),"
	want := "('What is normalization?', 'cat-7'),"

	result := stripper.Strip(content)

	if result.Content != want {
		t.Errorf("unexpected content:\ngot  %s\nwant %s", result.Content, want)
	}
	if result.UUIDRemovals != 1 {
		t.Errorf("expected 1 UUID removal, got %d", result.UUIDRemovals)
	}
	if result.Removals[0].Rule != m.RuleLoose {
		t.Errorf("expected rule %s, got %s", m.RuleLoose, result.Removals[0].Rule)
	}
}

func TestStripConsecutiveUUIDs(t *testing.T) {
	stripper := newTestStripper(nil)

	content := "('11111111-1111-1111-1111-111111111111', '22222222-2222-2222-2222-222222222222', 'seed'),"
	want := "('seed'),"

	result := stripper.Strip(content)

	if result.Content != want {
		t.Errorf("unexpected content:\ngot  %s\nwant %s", result.Content, want)
	}
	if result.UUIDRemovals != 2 {
		t.Errorf("expected 2 UUID removals, got %d", result.UUIDRemovals)
	}
	if result.Removals[0].Literal != "11111111-1111-1111-1111-111111111111" ||
		result.Removals[1].Literal != "22222222-2222-2222-2222-222222222222" {
		t.Error("removals are not in left-to-right order")
	}
}

func TestStripIsIdempotent(t *testing.T) {
	stripper := newTestStripper(nil)

	content := `INSERT INTO "public"."questions" ("id", "question") VALUES
('33333333-3333-3333-3333-333333333333', 'Q1'),
('44444444-4444-4444-4444-444444444444', 'Q2');
`

	first := stripper.Strip(content)
	if !first.Changed {
		t.Fatal("expected first pass to change content")
	}

	second := stripper.Strip(first.Content)
	if second.Changed {
		t.Error("expected second pass to leave content unchanged")
	}
	if second.UUIDRemovals != 0 || second.ColumnEdits != 0 {
		t.Errorf("expected no edits on second pass, got %d and %d",
			second.UUIDRemovals, second.ColumnEdits)
	}
	if second.Content != first.Content {
		t.Error("second pass rewrote already clean content")
	}
}

func TestStripLeavesNonLeadingTokens(t *testing.T) {
	stripper := newTestStripper(nil)

	content := "('What is a checksum?', 'a1b2c3d4e5f6478990abcdef123456789012abcdef12', 3),"

	result := stripper.Strip(content)

	if result.Changed {
		t.Error("expected content to be unchanged")
	}
	if result.Content != content {
		t.Errorf("content was rewritten:\ngot  %s\nwant %s", result.Content, content)
	}
	if result.UUIDRemovals != 0 {
		t.Errorf("expected no removals, got %d", result.UUIDRemovals)
	}
}

func TestStripGeneratedCall(t *testing.T) {
	stripper := newTestStripper(nil)

	content := "(gen_random_uuid(), 'What is a mutex?', 4),"
	want := "('What is a mutex?', 4),"

	result := stripper.Strip(content)

	if result.Content != want {
		t.Errorf("unexpected content:\ngot  %s\nwant %s", result.Content, want)
	}
	if result.Removals[0].Rule != m.RuleGenerated {
		t.Errorf("expected rule %s, got %s", m.RuleGenerated, result.Removals[0].Rule)
	}
}

func TestStripKnownIDPriority(t *testing.T) {
	knownID := "b2c3d4e5-f6g7-4890-91bc-def123456790"
	stripper := newTestStripper([]string{knownID})

	content := "('" + knownID + "', 'What is REST?'),"

	result := stripper.Strip(content)

	if result.UUIDRemovals != 1 {
		t.Fatalf("expected 1 removal, got %d", result.UUIDRemovals)
	}
	if result.Removals[0].Rule != m.RuleKnown {
		t.Errorf("expected rule %s, got %s", m.RuleKnown, result.Removals[0].Rule)
	}
}

func TestStripMultilineInsert(t *testing.T) {
	stripper := newTestStripper(nil)

	content := `-- question seed data
INSERT INTO "public"."questions" ("id", "question") VALUES
('33333333-3333-3333-3333-333333333333', 'Q1'),
('44444444-4444-4444-4444-444444444444', 'Q2');
`
	want := `-- question seed data
INSERT INTO "public"."questions" ("question") VALUES
('Q1'),
('Q2');
`

	result := stripper.Strip(content)

	if result.Content != want {
		t.Errorf("unexpected content:\ngot  %s\nwant %s", result.Content, want)
	}
	if result.UUIDRemovals != 2 || result.ColumnEdits != 1 {
		t.Errorf("expected 2 UUID removals and 1 column edit, got %d and %d",
			result.UUIDRemovals, result.ColumnEdits)
	}

	lines := map[m.EditKind][]int{}
	for _, removal := range result.Removals {
		lines[removal.Kind] = append(lines[removal.Kind], removal.Line)
	}
	if got := lines[m.EditValue]; len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("unexpected value removal lines %v", got)
	}
	if got := lines[m.EditColumn]; len(got) != 1 || got[0] != 2 {
		t.Errorf("unexpected column removal lines %v", got)
	}
}

func TestStripCountsEveryInsertHeader(t *testing.T) {
	stripper := newTestStripper(nil)

	content := `INSERT INTO "public"."questions" ("id", "question") VALUES ('11111111-1111-1111-1111-111111111111', 'one');
INSERT INTO "public"."questions" ("id", "question") VALUES ('22222222-2222-2222-2222-222222222222', 'two');
`

	result := stripper.Strip(content)

	if result.ColumnEdits != 2 {
		t.Errorf("expected 2 column edits, got %d", result.ColumnEdits)
	}
	if result.UUIDRemovals != 2 {
		t.Errorf("expected 2 UUID removals, got %d", result.UUIDRemovals)
	}
}

func TestStripHeaderCaseInsensitive(t *testing.T) {
	stripper := newTestStripper(nil)

	content := `insert into "public"."questions" ("id", "question") values ('plain');`

	result := stripper.Strip(content)

	if result.ColumnEdits != 1 {
		t.Errorf("expected 1 column edit, got %d", result.ColumnEdits)
	}
	if strings.Contains(result.Content, `"id"`) {
		t.Errorf("id column survived: %s", result.Content)
	}
}

func TestStripCustomTarget(t *testing.T) {
	target := Target{Schema: "app", Table: "users", IDColumn: "user_id"}
	stripper := NewStripper(NewRecognizer(nil), target)

	content := `INSERT INTO "app"."users" ("user_id", "name") VALUES ('5e151ca6-6e10-44be-80c1-b5d6f7b76b92', 'casey');`
	want := `INSERT INTO "app"."users" ("name") VALUES ('casey');`

	result := stripper.Strip(content)

	if result.Content != want {
		t.Errorf("unexpected content:\ngot  %s\nwant %s", result.Content, want)
	}
}

func TestStripPreservesSurroundingBytes(t *testing.T) {
	stripper := newTestStripper(nil)

	content := "-- exact   spacing\t preserved\n" +
		"SET search_path TO public;\n" +
		"('55555555-5555-5555-5555-555555555555', 'Q'),\n" +
		"COMMIT;\n"

	result := stripper.Strip(content)

	for _, untouched := range []string{
		"-- exact   spacing\t preserved\n",
		"SET search_path TO public;\n",
		"COMMIT;\n",
	} {
		if !strings.Contains(result.Content, untouched) {
			t.Errorf("expected %q to survive untouched", untouched)
		}
	}
	if !strings.Contains(result.Content, "('Q'),\n") {
		t.Errorf("unexpected tuple rewrite: %s", result.Content)
	}
}

func TestStripEmptyContent(t *testing.T) {
	result := newTestStripper(nil).Strip("")

	if result.Changed || len(result.Removals) != 0 {
		t.Error("expected empty content to pass through untouched")
	}
}
