package resolution

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func testMinter() *Minter {
	seq := 0
	base := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	return NewMinter(
		WithIDs(func() string {
			seq++
			return fmt.Sprintf("rec-%d", seq)
		}),
		WithClock(func() time.Time { return base }),
	)
}

func TestLedgerPrependsNewestFirst(t *testing.T) {
	m := testMinter()
	ledger := NewLedger()
	r1, err := m.Mint(Draft{Thought: "first", Kind: KindDo, Action: "a", Source: SourceDump})
	if err != nil {
		t.Fatalf("mint r1: %v", err)
	}
	r2, err := m.Mint(Draft{Thought: "second", Kind: KindIgnore, Source: SourceImportance})
	if err != nil {
		t.Fatalf("mint r2: %v", err)
	}
	ledger.Append(r1)
	ledger.Append(r2)

	got := ledger.Records()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != r2.ID || got[1].ID != r1.ID {
		t.Fatalf("order = [%s %s], want [%s %s]", got[0].ID, got[1].ID, r2.ID, r1.ID)
	}
}

func TestLedgerRecordsIsSnapshot(t *testing.T) {
	m := testMinter()
	ledger := NewLedger()
	rec, _ := m.Mint(Draft{Thought: "keep", Kind: KindSchedule, Action: "later"})
	ledger.Append(rec)

	snap := ledger.Records()
	snap[0].Thought = "mutated"
	if ledger.Records()[0].Thought != "keep" {
		t.Fatalf("ledger changed through snapshot")
	}
}

func TestLedgerAllowsDuplicates(t *testing.T) {
	m := testMinter()
	ledger := NewLedger()
	rec, _ := m.Mint(Draft{Thought: "same", Kind: KindDo})
	ledger.Append(rec)
	ledger.Append(rec)
	if ledger.Len() != 2 {
		t.Fatalf("len = %d, want 2", ledger.Len())
	}
}

func TestCountsGroupByKind(t *testing.T) {
	m := testMinter()
	ledger := NewLedger()
	for _, k := range []Kind{KindDo, KindDo, KindSchedule, KindIgnore, KindDo} {
		rec, err := m.Mint(Draft{Thought: "t", Kind: k})
		if err != nil {
			t.Fatalf("mint %s: %v", k, err)
		}
		ledger.Append(rec)
	}
	got := ledger.Counts()
	want := Summary{Do: 3, Schedule: 1, Ignore: 1}
	if got != want {
		t.Fatalf("counts = %+v, want %+v", got, want)
	}
	if got.Total() != ledger.Len() {
		t.Fatalf("total = %d, want %d", got.Total(), ledger.Len())
	}
	if got.Count(KindSchedule) != 1 {
		t.Fatalf("schedule count = %d, want 1", got.Count(KindSchedule))
	}
}

func TestMintRejectsUnknownKind(t *testing.T) {
	if _, err := testMinter().Mint(Draft{Thought: "x", Kind: "later"}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestMintStampsIDAndTime(t *testing.T) {
	rec, err := NewMinter().Mint(Draft{Thought: " raw ", Kind: KindDo, Action: "  ship it  "})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if rec.ID == "" {
		t.Fatalf("expected generated id")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatalf("expected timestamp")
	}
	if rec.Thought != " raw " {
		t.Fatalf("thought must be kept verbatim, got %q", rec.Thought)
	}
	if rec.Action != "ship it" {
		t.Fatalf("action = %q, want trimmed", rec.Action)
	}
	other, _ := NewMinter().Mint(Draft{Thought: "y", Kind: KindDo})
	if other.ID == rec.ID {
		t.Fatalf("ids must be unique")
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{"do": KindDo, " Schedule ": KindSchedule, "IGNORE": KindIgnore}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseKind("maybe"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestRecapListsRecordsAndHidesIgnoredActions(t *testing.T) {
	m := testMinter()
	do, _ := m.Mint(Draft{Thought: "pick\nproject", Kind: KindDo, Action: "Project A"})
	ign, _ := m.Mint(Draft{Thought: "noise", Kind: KindIgnore, Action: "Marked as noise"})
	text := Recap([]Record{do, ign})
	if !strings.Contains(text, "Resolved thoughts: 2 (1 actions, 0 scheduled, 1 discarded)") {
		t.Fatalf("missing header in %q", text)
	}
	if !strings.Contains(text, "- [Action] pick project -> Project A") {
		t.Fatalf("missing action line in %q", text)
	}
	if strings.Contains(text, "Marked as noise") {
		t.Fatalf("ignored action should not be listed: %q", text)
	}
}
