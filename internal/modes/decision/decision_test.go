package decision

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kingrea/endthought/internal/config"
	"github.com/kingrea/endthought/internal/modes"
	"github.com/kingrea/endthought/internal/resolution"
	"github.com/kingrea/endthought/internal/scoring"
)

func newContext(cfg *config.Config) *modes.ModeContext {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	return &modes.ModeContext{
		Config: cfg,
		Ledger: resolution.NewLedger(),
		Minter: resolution.NewMinter(resolution.WithClock(func() time.Time { return now })),
	}
}

func send(m *Mode, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func keyOf(t tea.KeyType) tea.Msg { return tea.KeyMsg{Type: t} }

func runes(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func fillForm(m *Mode) {
	send(m, runes("job?")...)
	send(m, keyOf(tea.KeyTab))
	send(m, runes("new")...)
	send(m, keyOf(tea.KeyTab))
	send(m, runes("stay")...)
	send(m, keyOf(tea.KeyTab))
	send(m, runes("salary")...)
	send(m, keyOf(tea.KeyTab))
	send(m, runes("balance")...)
}

func TestSlidersStayHiddenUntilReady(t *testing.T) {
	m := New()
	m.Init(newContext(nil))
	send(m, runes("job?")...)
	send(m, keyOf(tea.KeyEnter))
	if m.Workflow().ShowResult() {
		t.Fatalf("incomplete form analyzed")
	}
	for i := 0; i < 10; i++ {
		send(m, keyOf(tea.KeyTab))
		if !m.Capturing() {
			t.Fatalf("tab reached a slider before the form was complete")
		}
	}
}

func TestKeyboardFlowResolvesWinner(t *testing.T) {
	ctx := newContext(nil)
	m := New()
	m.Init(ctx)
	fillForm(m)
	send(m, keyOf(tea.KeyEnter))

	if m.Capturing() {
		t.Fatalf("calculate should move focus to the sliders")
	}
	if !m.Workflow().ResultVisible() {
		t.Fatalf("result not visible after calculate")
	}

	// factor 1 toward "new", factor 2 toward "stay"
	for i := 0; i < 4; i++ {
		send(m, keyOf(tea.KeyLeft))
	}
	send(m, keyOf(tea.KeyTab))
	for i := 0; i < 2; i++ {
		send(m, keyOf(tea.KeyRight))
	}

	want := scoring.Matrix{{70, 30}, {40, 60}}
	if got := m.Workflow().Scores(); got != want {
		t.Fatalf("scores = %v, want %v", got, want)
	}
	if !strings.Contains(m.View(), "Recommendation") {
		t.Fatalf("view missing recommendation")
	}

	send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	records := ctx.Ledger.Records()
	if len(records) != 1 {
		t.Fatalf("ledger has %d records", len(records))
	}
	rec := records[0]
	if rec.Kind != resolution.KindDo || rec.Action != "new" || rec.Thought != "job?" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if m.Workflow().Question() != "" || !m.Capturing() {
		t.Fatalf("engine not reset after resolve")
	}
}

func TestSliderStepComesFromConfig(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.File.Decision.SliderStep = 10
	m := New()
	m.Init(newContext(cfg))
	fillForm(m)
	send(m, keyOf(tea.KeyEnter), keyOf(tea.KeyRight))
	if got := m.Workflow().Scores()[0]; got != [2]int{40, 60} {
		t.Fatalf("factor 1 = %v, want [40 60]", got)
	}
}

func TestLettersTypeIntoFieldsInsteadOfResolving(t *testing.T) {
	ctx := newContext(nil)
	m := New()
	m.Init(ctx)
	fillForm(m)
	send(m, keyOf(tea.KeyEnter), keyOf(tea.KeyEsc))
	if !m.Capturing() {
		t.Fatalf("esc should return to the question field")
	}
	send(m, runes("dsx")...)
	if ctx.Ledger.Len() != 0 {
		t.Fatalf("typing resolved the decision")
	}
	if m.Workflow().Question() != "job?dsx" {
		t.Fatalf("question = %q", m.Workflow().Question())
	}
}

func TestResetClearsEverything(t *testing.T) {
	m := New()
	m.Init(newContext(nil))
	fillForm(m)
	send(m, keyOf(tea.KeyEnter), keyOf(tea.KeyLeft), keyOf(tea.KeyCtrlR))
	wf := m.Workflow()
	if wf.Ready() || wf.ShowResult() || wf.Scores() != scoring.NewMatrix() {
		t.Fatalf("reset left state behind")
	}
	if m.inputs[fieldOptionA].Value() != "" {
		t.Fatalf("inputs not cleared")
	}
}
