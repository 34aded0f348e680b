// internal/tui/app.go
//
// This is the main TUI (Terminal User Interface) for endthought.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The shell owns the tab bar and the session ledger. Each tab is a
// modes.Mode; switching tabs throws the old screen away and builds a fresh
// one, so a half-finished workflow never survives leaving its tab.

package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/endthought/internal/clipboard"
	"github.com/kingrea/endthought/internal/config"
	"github.com/kingrea/endthought/internal/logbook"
	"github.com/kingrea/endthought/internal/modes"
	"github.com/kingrea/endthought/internal/modes/braindump"
	"github.com/kingrea/endthought/internal/modes/decision"
	"github.com/kingrea/endthought/internal/modes/importance"
	"github.com/kingrea/endthought/internal/modes/resolved"
	"github.com/kingrea/endthought/internal/modes/timer"
	"github.com/kingrea/endthought/internal/resolution"
)

const (
	appTitle   = "⬡ ENDTHOUGHT"
	appTagline = "End thoughts. Don't store them."

	// rows used by the header, tab bar, status line and help footer
	chromeHeight = 7
)

type shellKeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	JumpTab   key.Binding
	Digit     key.Binding
}

var shellKeys = shellKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n/p", "switch tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("ctrl+p"),
	),
	JumpTab: key.NewBinding(
		key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5"),
		key.WithHelp("alt+1-5", "jump"),
	),
	Digit: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5"),
		key.WithHelp("1-5", "jump"),
	),
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// WithClipboard overrides how the resolved screen copies its recap.
func WithClipboard(write func(string) error) AppOption {
	return func(a *App) {
		if write != nil {
			a.clipboard = write
		}
	}
}

// WithLogbook replaces the journal derived from the configuration.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
		a.logbookSet = true
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config     *config.Config
	ledger     *resolution.Ledger
	logbook    *logbook.Logbook
	logbookSet bool
	now        func() time.Time
	clipboard  func(string) error
	ctx        *modes.ModeContext

	screen   modes.Screen
	active   modes.Mode
	startCmd tea.Cmd

	help      help.Model
	statusMsg string // Status message to display

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp creates a new App instance
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	if cfg == nil {
		return nil, errors.New("tui: config is required")
	}
	a := &App{
		config:    cfg,
		ledger:    resolution.NewLedger(),
		now:       time.Now,
		clipboard: clipboard.WriteAll,
		help:      help.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if !a.logbookSet {
		if path := cfg.JournalPath(); path != "" {
			if lb, err := logbook.New(path); err == nil {
				a.logbook = lb
			}
		}
	}

	a.ctx = &modes.ModeContext{
		Config:    cfg,
		Ledger:    a.ledger,
		Logbook:   a.logbook,
		Minter:    resolution.NewMinter(resolution.WithClock(a.now)),
		Now:       a.now,
		Clipboard: a.clipboard,
	}

	start := modes.ScreenFor(cfg.StartMode())
	a.logInfo("Session opened · start screen: %s", start.Title())
	a.startCmd = a.activate(start)
	return a, nil
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

// Ledger returns the session ledger.
func (a *App) Ledger() *resolution.Ledger {
	return a.ledger
}

// Screen returns the active tab.
func (a *App) Screen() modes.Screen {
	return a.screen
}

// Active returns the active screen's model.
func (a *App) Active() modes.Mode {
	return a.active
}

// Init is called once when the program starts
func (a *App) Init() tea.Cmd {
	return a.startCmd
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, a.forward(a.contentSize())

	case modes.ResolvedMsg:
		a.statusMsg = resolvedStatus(msg.Record)
		return a, a.forward(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, shellKeys.ForceQuit):
			return a, tea.Quit
		case key.Matches(msg, shellKeys.NextTab):
			return a, a.switchTo(a.offset(1))
		case key.Matches(msg, shellKeys.PrevTab):
			return a, a.switchTo(a.offset(-1))
		case key.Matches(msg, shellKeys.JumpTab):
			return a, a.switchTo(screenForDigit(strings.TrimPrefix(msg.String(), "alt+")))
		}
		if !a.active.Capturing() {
			switch {
			case key.Matches(msg, shellKeys.Quit):
				return a, tea.Quit
			case key.Matches(msg, shellKeys.Digit):
				return a, a.switchTo(screenForDigit(msg.String()))
			}
		}
	}

	return a, a.forward(msg)
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	next, cmd := a.active.Update(msg)
	a.active = next
	return cmd
}

func (a *App) contentSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{
		Width:  max(20, a.width-2),
		Height: max(6, a.height-chromeHeight),
	}
}

// switchTo replaces the active screen. Re-selecting the current tab keeps it.
func (a *App) switchTo(screen modes.Screen) tea.Cmd {
	if screen == a.screen && a.active != nil {
		return nil
	}
	a.logInfo("Switched to %s", screen.Title())
	return a.activate(screen)
}

func (a *App) activate(screen modes.Screen) tea.Cmd {
	a.screen = screen
	a.active = newMode(screen)
	cmd := a.active.Init(a.ctx)
	if a.width > 0 {
		a.forward(a.contentSize())
	}
	return cmd
}

func newMode(screen modes.Screen) modes.Mode {
	switch screen {
	case modes.ScreenDecision:
		return decision.New()
	case modes.ScreenTimer:
		return timer.New()
	case modes.ScreenImportance:
		return importance.New()
	case modes.ScreenResolved:
		return resolved.New()
	default:
		return braindump.New()
	}
}

func (a *App) offset(delta int) modes.Screen {
	n := len(modes.Screens)
	return modes.Screens[((int(a.screen)+delta)%n+n)%n]
}

func screenForDigit(digit string) modes.Screen {
	if len(digit) != 1 || digit[0] < '1' || int(digit[0]-'1') >= len(modes.Screens) {
		return modes.ScreenDump
	}
	return modes.Screens[digit[0]-'1']
}

func resolvedStatus(rec resolution.Record) string {
	status := fmt.Sprintf("✓ %s", rec.Kind.Label())
	if rec.HasAction() && rec.Kind != resolution.KindIgnore {
		status += " → " + rec.Action
	}
	return status
}

// View renders the current state as a string
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(modes.ColorAccent).Render(appTitle) +
		"  " + modes.SubtleStyle.Render(appTagline)

	parts := []string{header, a.renderTabs(), "", a.active.View()}
	if a.statusMsg != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(modes.ColorAccent).Render(a.statusMsg))
	}
	parts = append(parts, a.help.ShortHelpView(a.bindings()))
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, "\n"))
}

func (a *App) renderTabs() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#5B8DEF")).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(modes.ColorMuted).
		Padding(0, 1)

	tabs := make([]string, 0, len(modes.Screens))
	for i, screen := range modes.Screens {
		label := fmt.Sprintf("%d %s", i+1, screen.Title())
		if screen == modes.ScreenResolved && a.ledger.Len() > 0 {
			label = fmt.Sprintf("%s (%d)", label, a.ledger.Len())
		}
		if screen == a.screen {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, inactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) bindings() []key.Binding {
	bindings := append([]key.Binding{}, a.active.Bindings()...)
	bindings = append(bindings, shellKeys.NextTab)
	if a.active.Capturing() {
		bindings = append(bindings, shellKeys.JumpTab, shellKeys.ForceQuit)
	} else {
		bindings = append(bindings, shellKeys.Digit, shellKeys.Quit)
	}
	return bindings
}
