// internal/modes/mode.go
//
// Defines the Mode interface that every screen implements. Each workflow
// screen wraps one state machine from internal/workflow and reports
// resolved thoughts back to the shell through the shared context.

package modes

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kingrea/endthought/internal/config"
	"github.com/kingrea/endthought/internal/logbook"
	"github.com/kingrea/endthought/internal/resolution"
	"github.com/kingrea/endthought/internal/workflow"
)

// Screen identifies a tab in the shell.
type Screen int

const (
	ScreenDump Screen = iota
	ScreenDecision
	ScreenTimer
	ScreenImportance
	ScreenResolved
)

// Screens lists the tabs in display order.
var Screens = []Screen{ScreenDump, ScreenDecision, ScreenTimer, ScreenImportance, ScreenResolved}

// ScreenFor maps a workflow mode onto its screen.
func ScreenFor(m workflow.Mode) Screen {
	switch m {
	case workflow.ModeDecision:
		return ScreenDecision
	case workflow.ModeTimer:
		return ScreenTimer
	case workflow.ModeImportance:
		return ScreenImportance
	default:
		return ScreenDump
	}
}

// Title returns the tab label.
func (s Screen) Title() string {
	switch s {
	case ScreenDump:
		return workflow.ModeDump.FriendlyName()
	case ScreenDecision:
		return workflow.ModeDecision.FriendlyName()
	case ScreenTimer:
		return workflow.ModeTimer.FriendlyName()
	case ScreenImportance:
		return workflow.ModeImportance.FriendlyName()
	case ScreenResolved:
		return "Resolved"
	default:
		return "?"
	}
}

// ModeContext provides shared context for all modes
type ModeContext struct {
	Config    *config.Config
	Ledger    *resolution.Ledger
	Logbook   *logbook.Logbook
	Minter    *resolution.Minter
	Now       func() time.Time
	Clipboard func(string) error
}

// Resolver returns the callback workflows hand their records to. It appends
// to the session ledger and notes the resolution in the journal; the thought
// text itself is never written out.
func (c *ModeContext) Resolver() workflow.ResolveFunc {
	return func(rec resolution.Record) {
		if c == nil {
			return
		}
		if c.Ledger != nil {
			c.Ledger.Append(rec)
		}
		if c.Logbook != nil {
			total := 0
			if c.Ledger != nil {
				total = c.Ledger.Len()
			}
			c.Logbook.Info("Resolved · %s · %s (%d this session)", rec.Source, rec.Kind.Label(), total)
		}
	}
}

// Clock returns the context's time source.
func (c *ModeContext) Clock() time.Time {
	if c == nil || c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Mode defines the interface that all screens must implement
type Mode interface {
	// Name returns the mode's display name
	Name() string

	// Screen returns which tab this mode renders
	Screen() Screen

	// Init initializes the mode and returns a startup command
	Init(ctx *ModeContext) tea.Cmd

	// Update handles messages and returns the updated mode plus any commands
	Update(msg tea.Msg) (Mode, tea.Cmd)

	// View renders the mode's current state
	View() string

	// Capturing reports whether a text field has focus, in which case the
	// shell leaves printable keys alone
	Capturing() bool

	// Bindings lists the keys shown in the help footer
	Bindings() []key.Binding
}

// ResolvedMsg signals that a workflow appended a record to the ledger.
type ResolvedMsg struct {
	Record resolution.Record
}

// Resolved wraps a record in a command the shell can observe.
func Resolved(rec resolution.Record) tea.Cmd {
	return func() tea.Msg {
		return ResolvedMsg{Record: rec}
	}
}

// BaseMode provides common functionality for all modes
type BaseMode struct {
	ctx       *ModeContext
	name      string
	screen    Screen
	statusMsg string
	width     int
	height    int
}

// NewBaseMode creates a new BaseMode with the given name and screen
func NewBaseMode(name string, screen Screen) BaseMode {
	return BaseMode{
		name:   name,
		screen: screen,
	}
}

// Name returns the mode's display name
func (m *BaseMode) Name() string {
	return m.name
}

// Screen returns which tab this mode renders
func (m *BaseMode) Screen() Screen {
	return m.screen
}

// Context returns the mode context
func (m *BaseMode) Context() *ModeContext {
	return m.ctx
}

// SetContext sets the mode context
func (m *BaseMode) SetContext(ctx *ModeContext) {
	m.ctx = ctx
}

// StatusMsg returns the current status message
func (m *BaseMode) StatusMsg() string {
	return m.statusMsg
}

// SetStatusMsg sets the status message
func (m *BaseMode) SetStatusMsg(msg string) {
	m.statusMsg = msg
}

// SetSize records the space available to the mode.
func (m *BaseMode) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Width returns the content width, with a sane default before the first
// window size message arrives.
func (m *BaseMode) Width() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// Height returns the content height.
func (m *BaseMode) Height() int {
	if m.height <= 0 {
		return 24
	}
	return m.height
}

// Minter returns the context's record minter.
func (m *BaseMode) Minter() *resolution.Minter {
	if m.ctx == nil {
		return nil
	}
	return m.ctx.Minter
}

// Resolver returns the context's resolve callback.
func (m *BaseMode) Resolver() workflow.ResolveFunc {
	return m.ctx.Resolver()
}

// LogInfo writes to the journal when one is configured.
func (m *BaseMode) LogInfo(format string, args ...any) {
	if m.ctx == nil || m.ctx.Logbook == nil {
		return
	}
	m.ctx.Logbook.Info(format, args...)
}

// LogWarn writes a warning to the journal when one is configured.
func (m *BaseMode) LogWarn(format string, args ...any) {
	if m.ctx == nil || m.ctx.Logbook == nil {
		return
	}
	m.ctx.Logbook.Warn(format, args...)
}
