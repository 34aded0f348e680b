package timer

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kingrea/endthought/internal/config"
	"github.com/kingrea/endthought/internal/countdown"
	"github.com/kingrea/endthought/internal/modes"
	"github.com/kingrea/endthought/internal/resolution"
	"github.com/kingrea/endthought/internal/workflow"
)

func newContext(t *testing.T, seconds int) *modes.ModeContext {
	t.Helper()
	cfg := config.Default(t.TempDir())
	if err := cfg.SetTimerSeconds(seconds); err != nil {
		t.Fatalf("set timer: %v", err)
	}
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	return &modes.ModeContext{
		Config: cfg,
		Ledger: resolution.NewLedger(),
		Minter: resolution.NewMinter(resolution.WithClock(func() time.Time { return now })),
	}
}

func typeText(m *Mode, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func startThinking(t *testing.T, ctx *modes.ModeContext) *Mode {
	t.Helper()
	m := New()
	m.Init(ctx)
	typeText(m, "move")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Workflow().Step() != workflow.StepThinking {
		t.Fatalf("step = %s, want thinking", m.Workflow().Step())
	}
	if cmd == nil {
		t.Fatalf("starting the timer should schedule a tick")
	}
	return m
}

func TestCountdownExpiryForcesDecision(t *testing.T) {
	m := startThinking(t, newContext(t, 3))
	if m.Capturing() {
		t.Fatalf("thinking step should not capture keys")
	}
	epoch := m.Workflow().Clock().Epoch()

	_, cmd := m.Update(countdown.TickMsg{Epoch: epoch})
	if cmd == nil {
		t.Fatalf("accepted tick should schedule the next one")
	}
	m.Update(countdown.TickMsg{Epoch: epoch})
	m.Update(countdown.TickMsg{Epoch: epoch})

	wf := m.Workflow()
	if wf.Step() != workflow.StepDecide || !wf.Expired() {
		t.Fatalf("step = %s expired = %v", wf.Step(), wf.Expired())
	}
	if !m.Capturing() {
		t.Fatalf("decide step should focus the decision field")
	}
	if !strings.Contains(m.View(), "Time's up. Decide now.") {
		t.Fatalf("expired view missing title:\n%s", m.View())
	}

	_, cmd = m.Update(countdown.TickMsg{Epoch: epoch})
	if cmd != nil || wf.Remaining() != 0 {
		t.Fatalf("tick after expiry was not ignored")
	}
}

func TestPausedClockDropsStaleTicks(t *testing.T) {
	m := startThinking(t, newContext(t, 10))
	epoch := m.Workflow().Clock().Epoch()
	m.Update(countdown.TickMsg{Epoch: epoch})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if m.Workflow().Running() {
		t.Fatalf("p should pause the countdown")
	}
	_, cmd := m.Update(countdown.TickMsg{Epoch: epoch})
	if cmd != nil || m.Workflow().Remaining() != 9 {
		t.Fatalf("stale tick changed remaining to %d", m.Workflow().Remaining())
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.Workflow().Running() || cmd == nil {
		t.Fatalf("space should resume and schedule a tick")
	}
	if m.Workflow().Clock().Epoch() == epoch {
		t.Fatalf("resume reused the old epoch")
	}
}

func TestDecideRequiresDecisionForDo(t *testing.T) {
	ctx := newContext(t, 60)
	m := startThinking(t, ctx)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Workflow().Step() != workflow.StepDecide || m.Workflow().Expired() {
		t.Fatalf("ready to decide should stop early without expiring")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if ctx.Ledger.Len() != 0 {
		t.Fatalf("empty decision was committed")
	}

	typeText(m, "go")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	records := ctx.Ledger.Records()
	if len(records) != 1 {
		t.Fatalf("ledger has %d records", len(records))
	}
	rec := records[0]
	if rec.Kind != resolution.KindSchedule || rec.Action != "go" || rec.Thought != "move" || rec.Source != resolution.SourceTimer {
		t.Fatalf("unexpected record %+v", rec)
	}
	if m.Workflow().Step() != workflow.StepSetup {
		t.Fatalf("timer not reset after resolve")
	}
}

func TestDiscardWithoutDecision(t *testing.T) {
	ctx := newContext(t, 60)
	m := startThinking(t, ctx)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	rec := ctx.Ledger.Records()[0]
	if rec.Kind != resolution.KindIgnore || rec.HasAction() {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestStartOverStopsCountdown(t *testing.T) {
	m := startThinking(t, newContext(t, 60))
	epoch := m.Workflow().Clock().Epoch()
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.Workflow().Step() != workflow.StepSetup || m.Workflow().Running() {
		t.Fatalf("start over left the countdown running")
	}
	if _, cmd := m.Update(countdown.TickMsg{Epoch: epoch}); cmd != nil {
		t.Fatalf("tick from the abandoned countdown was accepted")
	}
	if m.Workflow().Remaining() != 60 {
		t.Fatalf("remaining = %d, want 60", m.Workflow().Remaining())
	}
}
