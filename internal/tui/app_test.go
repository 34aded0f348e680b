package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/endthought/internal/config"
	"github.com/kingrea/endthought/internal/countdown"
	"github.com/kingrea/endthought/internal/logbook"
	"github.com/kingrea/endthought/internal/modes"
	"github.com/kingrea/endthought/internal/modes/braindump"
	"github.com/kingrea/endthought/internal/modes/timer"
	"github.com/kingrea/endthought/internal/resolution"
	"github.com/kingrea/endthought/internal/workflow"
)

var testNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T, cfg *config.Config, opts ...AppOption) *App {
	t.Helper()
	if cfg == nil {
		cfg = config.Default(t.TempDir())
	}
	baseOpts := []AppOption{
		WithClock(func() time.Time { return testNow }),
		WithClipboard(func(string) error { return nil }),
	}
	app, err := NewApp(cfg, append(baseOpts, opts...)...)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	app.Init()
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}

func send(app *App, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = app.Update(msg)
	}
	return cmd
}

func typeText(app *App, text string) {
	for _, r := range text {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func alt(digit rune) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{digit}, Alt: true}
}

func TestNewAppRequiresConfig(t *testing.T) {
	if _, err := NewApp(nil); err == nil {
		t.Fatalf("expected error without config")
	}
}

func TestStartsOnConfiguredScreen(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.SetStartMode(workflow.ModeTimer)
	app := newTestApp(t, cfg)
	if app.Screen() != modes.ScreenTimer {
		t.Fatalf("screen = %v, want timer", app.Screen())
	}
	if _, ok := app.Active().(*timer.Mode); !ok {
		t.Fatalf("active = %T, want *timer.Mode", app.Active())
	}
}

func TestTabCyclingWraps(t *testing.T) {
	app := newTestApp(t, nil)
	send(app, tea.KeyMsg{Type: tea.KeyCtrlP})
	if app.Screen() != modes.ScreenResolved {
		t.Fatalf("ctrl+p from the first tab = %v, want resolved", app.Screen())
	}
	send(app, tea.KeyMsg{Type: tea.KeyCtrlN})
	if app.Screen() != modes.ScreenDump {
		t.Fatalf("ctrl+n from the last tab = %v, want dump", app.Screen())
	}
	send(app, tea.KeyMsg{Type: tea.KeyCtrlN}, tea.KeyMsg{Type: tea.KeyCtrlN})
	if app.Screen() != modes.ScreenTimer {
		t.Fatalf("screen = %v, want timer", app.Screen())
	}
}

func TestDigitsJumpOnlyWhenNotCapturing(t *testing.T) {
	app := newTestApp(t, nil)
	typeText(app, "3")
	if app.Screen() != modes.ScreenDump {
		t.Fatalf("digit typed into the dump switched tabs")
	}
	dump := app.Active().(*braindump.Mode)
	if dump.Workflow().Thought() != "3" {
		t.Fatalf("thought = %q, want the typed digit", dump.Workflow().Thought())
	}

	send(app, alt('5'))
	if app.Screen() != modes.ScreenResolved {
		t.Fatalf("alt+5 = %v, want resolved", app.Screen())
	}
	typeText(app, "2")
	if app.Screen() != modes.ScreenDecision {
		t.Fatalf("digit on a non-capturing screen = %v, want decision", app.Screen())
	}
}

func TestSwitchingTabsDiscardsWorkflow(t *testing.T) {
	app := newTestApp(t, nil)
	typeText(app, "half a thought")
	send(app, alt('2'), alt('1'))
	dump := app.Active().(*braindump.Mode)
	if dump.Workflow().Thought() != "" {
		t.Fatalf("dump kept %q across a tab switch", dump.Workflow().Thought())
	}
}

func TestSwitchingTabsRetiresCountdown(t *testing.T) {
	cfg := config.Default(t.TempDir())
	if err := cfg.SetTimerSeconds(30); err != nil {
		t.Fatalf("set timer: %v", err)
	}
	app := newTestApp(t, cfg)
	send(app, alt('3'))
	typeText(app, "move")
	if cmd := send(app, tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Fatalf("starting the countdown returned no command")
	}
	old := app.Active().(*timer.Mode).Workflow()
	epoch := old.Clock().Epoch()
	if epoch == 0 || !old.Running() {
		t.Fatalf("countdown not running")
	}

	send(app, alt('1'), alt('3'))
	fresh := app.Active().(*timer.Mode).Workflow()
	if fresh == old {
		t.Fatalf("timer screen was reused")
	}
	if cmd := send(app, countdown.TickMsg{Epoch: epoch}); cmd != nil {
		t.Fatalf("stale tick scheduled another one")
	}
	if fresh.Step() != workflow.StepSetup || fresh.Remaining() != 30 {
		t.Fatalf("fresh timer changed: step=%s remaining=%d", fresh.Step(), fresh.Remaining())
	}
}

func TestResolutionReachesLedgerJournalAndBadge(t *testing.T) {
	book, err := logbook.New(filepath.Join(t.TempDir(), "logs", "journey.log"))
	if err != nil {
		t.Fatalf("logbook: %v", err)
	}
	app := newTestApp(t, nil, WithLogbook(book))
	send(app, alt('4'))
	typeText(app, "inbox zero")
	send(app, tea.KeyMsg{Type: tea.KeyEnter})
	typeText(app, "nnnx")

	records := app.Ledger().Records()
	if len(records) != 1 {
		t.Fatalf("ledger has %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Kind != resolution.KindIgnore || rec.Source != resolution.SourceImportance {
		t.Fatalf("unexpected record %+v", rec)
	}
	if !rec.CreatedAt.Equal(testNow) {
		t.Fatalf("created at %v, want injected clock", rec.CreatedAt)
	}

	send(app, modes.ResolvedMsg{Record: rec})
	view := app.View()
	if !strings.Contains(view, "Resolved (1)") {
		t.Fatalf("tab badge missing:\n%s", view)
	}
	if !strings.Contains(view, "✓ Discarded") {
		t.Fatalf("status line missing:\n%s", view)
	}

	entries, _ := book.Tail(10)
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	journal := strings.Join(lines, "\n")
	if !strings.Contains(journal, "Resolved · importance · Discarded") {
		t.Fatalf("journal missing resolution:\n%s", journal)
	}
	if strings.Contains(journal, "inbox zero") {
		t.Fatalf("journal leaked thought text:\n%s", journal)
	}
}

func TestQuitKeys(t *testing.T) {
	app := newTestApp(t, nil)
	typeText(app, "q")
	if app.Active().(*braindump.Mode).Workflow().Thought() != "q" {
		t.Fatalf("q should be typed while a field has focus")
	}

	send(app, alt('5'))
	cmd := send(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("q on the resolved screen returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}

	cmd = send(app, tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c did not quit")
	}
}

func TestJournalDisabledLeavesNoFile(t *testing.T) {
	home := t.TempDir()
	cfg := config.Default(home)
	disabled := false
	cfg.File.Journal.Enabled = &disabled
	app := newTestApp(t, cfg)
	if app.logbook != nil {
		t.Fatalf("journal opened while disabled")
	}
	if matches, _ := filepath.Glob(filepath.Join(home, "logs", "*")); len(matches) != 0 {
		t.Fatalf("unexpected journal files: %v", matches)
	}
}
