package importance

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kingrea/endthought/internal/modes"
	"github.com/kingrea/endthought/internal/resolution"
	"github.com/kingrea/endthought/internal/scoring"
	"github.com/kingrea/endthought/internal/workflow"
)

func newContext() *modes.ModeContext {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	return &modes.ModeContext{
		Ledger: resolution.NewLedger(),
		Minter: resolution.NewMinter(resolution.WithClock(func() time.Time { return now })),
	}
}

func pressRunes(m *Mode, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func begin(t *testing.T, ctx *modes.ModeContext, thought string) *Mode {
	t.Helper()
	m := New()
	m.Init(ctx)
	pressRunes(m, thought)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Workflow().Step() != workflow.StepFilter {
		t.Fatalf("step = %s, want filter", m.Workflow().Step())
	}
	return m
}

func TestNoiseOnlyOffersDiscard(t *testing.T) {
	ctx := newContext()
	m := begin(t, ctx, "email")
	if m.Capturing() {
		t.Fatalf("filter step should not capture keys")
	}
	pressRunes(m, "nnn")

	v, ok := m.Workflow().Verdict()
	if !ok || v != scoring.Noise {
		t.Fatalf("verdict = %s ok=%v, want noise", v, ok)
	}
	if !strings.Contains(m.View(), "This is noise.") {
		t.Fatalf("result view missing headline")
	}

	pressRunes(m, "d")
	pressRunes(m, "s")
	if ctx.Ledger.Len() != 0 {
		t.Fatalf("noise accepted a non-discard resolution")
	}

	pressRunes(m, "x")
	rec := ctx.Ledger.Records()[0]
	if rec.Kind != resolution.KindIgnore || rec.Action != workflow.NoiseAction || rec.Thought != "email" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if m.Workflow().Step() != workflow.StepInput || !m.Capturing() {
		t.Fatalf("filter did not return to input")
	}
}

func TestAnswersFollowCursor(t *testing.T) {
	ctx := newContext()
	m := begin(t, ctx, "career")

	// answer the year first, then the remaining two in order
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	pressRunes(m, "y")
	answers := m.Workflow().Answers()
	if answers.Get(scoring.Year) != scoring.Yes || answers.Get(scoring.Week) != scoring.Unanswered {
		t.Fatalf("answers = %v", answers)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want first unanswered horizon", m.cursor)
	}
	pressRunes(m, "yy")

	v, _ := m.Workflow().Verdict()
	if v != scoring.Important {
		t.Fatalf("verdict = %s, want important", v)
	}
	pressRunes(m, "d")
	rec := ctx.Ledger.Records()[0]
	if rec.Kind != resolution.KindDo || rec.Action != "career" || rec.Source != resolution.SourceImportance {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestFilterAnotherDropsThought(t *testing.T) {
	ctx := newContext()
	m := begin(t, ctx, "rent")
	pressRunes(m, "ynn")
	pressRunes(m, "f")
	if m.Workflow().Step() != workflow.StepInput || m.Workflow().Thought() != "" {
		t.Fatalf("filter another did not clear the workflow")
	}
	if ctx.Ledger.Len() != 0 {
		t.Fatalf("filter another should not resolve")
	}
}

func TestEmptyThoughtDoesNotBegin(t *testing.T) {
	m := New()
	m.Init(newContext())
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Workflow().Step() != workflow.StepInput {
		t.Fatalf("empty thought started the filter")
	}
}
