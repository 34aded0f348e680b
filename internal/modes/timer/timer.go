// internal/modes/timer/timer.go
//
// Five-minute rule screen. The thought gets a fixed countdown; when it runs
// out the screen jumps straight to the decision.

package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/endthought/internal/countdown"
	"github.com/kingrea/endthought/internal/modes"
	"github.com/kingrea/endthought/internal/resolution"
	"github.com/kingrea/endthought/internal/workflow"
)

// Mode drives a workflow.TimerMode.
type Mode struct {
	modes.BaseMode
	wf       *workflow.TimerMode
	thought  textarea.Model
	decision textinput.Model
	bar      progress.Model
}

// New creates a new timer mode
func New() *Mode {
	return &Mode{
		BaseMode: modes.NewBaseMode("5-Min Rule", modes.ScreenTimer),
		thought:  modes.NewArea("What are you overthinking about?", 60),
		decision: modes.NewInput("e.g., I'll go with option A because...", 60),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Init builds the workflow with the configured thinking time.
func (m *Mode) Init(ctx *modes.ModeContext) tea.Cmd {
	m.SetContext(ctx)
	duration := countdown.DefaultDuration
	if ctx != nil && ctx.Config != nil {
		duration = ctx.Config.TimerSeconds()
	}
	m.wf = workflow.NewTimerMode(duration, m.Minter(), m.Resolver())
	return tea.Batch(m.thought.Focus(), textarea.Blink)
}

// Workflow exposes the underlying state machine.
func (m *Mode) Workflow() *workflow.TimerMode {
	return m.wf
}

// Capturing reports whether a text field has focus.
func (m *Mode) Capturing() bool {
	return m.wf == nil || m.wf.Step() != workflow.StepThinking
}

// Update handles messages for the timer
func (m *Mode) Update(msg tea.Msg) (modes.Mode, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		width := max(20, msg.Width-8)
		m.thought.SetWidth(width)
		m.decision.Width = width - 4
		m.bar.Width = width
		return m, nil

	case countdown.TickMsg:
		clock := m.wf.Clock()
		if msg.Epoch == 0 || msg.Epoch != clock.Epoch() {
			return m, nil
		}
		if m.wf.Tick(msg.Epoch) {
			m.SetStatusMsg("")
			m.LogInfo("Countdown expired after %s", countdown.Format(clock.Duration()))
			return m, m.syncFocus()
		}
		return m, clock.Schedule()

	case tea.KeyMsg:
		if key.Matches(msg, modes.Keys.Reset) {
			m.wf.Reset()
			m.SetStatusMsg("Started over")
			return m, m.syncFocus()
		}
		switch m.wf.Step() {
		case workflow.StepSetup:
			return m.updateSetup(msg)
		case workflow.StepThinking:
			return m.updateThinking(msg)
		case workflow.StepDecide:
			return m.updateDecide(msg)
		}
	}

	return m, m.forward(msg)
}

func (m *Mode) updateSetup(msg tea.KeyMsg) (modes.Mode, tea.Cmd) {
	if key.Matches(msg, modes.Keys.Submit) {
		if !m.wf.Start() {
			return m, nil
		}
		m.SetStatusMsg("")
		return m, tea.Batch(m.syncFocus(), m.wf.Clock().Schedule())
	}
	return m, m.forward(msg)
}

func (m *Mode) updateThinking(msg tea.KeyMsg) (modes.Mode, tea.Cmd) {
	switch {
	case key.Matches(msg, modes.Keys.Pause):
		if m.wf.TogglePause() {
			m.SetStatusMsg("")
			return m, m.wf.Clock().Schedule()
		}
		m.SetStatusMsg("Paused")
		return m, nil
	case key.Matches(msg, modes.Keys.Submit):
		if m.wf.ReadyToDecide() {
			m.SetStatusMsg("")
			return m, m.syncFocus()
		}
	}
	return m, nil
}

func (m *Mode) updateDecide(msg tea.KeyMsg) (modes.Mode, tea.Cmd) {
	var kind resolution.Kind
	switch {
	case key.Matches(msg, modes.Keys.Submit):
		kind = resolution.KindDo
	case key.Matches(msg, modes.Keys.CommitSchedule):
		kind = resolution.KindSchedule
	case key.Matches(msg, modes.Keys.CommitDiscard):
		kind = resolution.KindIgnore
	default:
		return m, m.forward(msg)
	}
	rec, ok := m.wf.Resolve(kind)
	if !ok {
		return m, nil
	}
	m.SetStatusMsg(fmt.Sprintf("Resolved: %s", rec.Kind.Label()))
	return m, tea.Batch(m.syncFocus(), modes.Resolved(rec))
}

func (m *Mode) forward(msg tea.Msg) tea.Cmd {
	if m.wf == nil {
		return nil
	}
	var cmd tea.Cmd
	switch m.wf.Step() {
	case workflow.StepSetup:
		m.thought, cmd = m.thought.Update(msg)
		m.wf.SetThought(m.thought.Value())
	case workflow.StepDecide:
		m.decision, cmd = m.decision.Update(msg)
		m.wf.SetDecision(m.decision.Value())
	}
	return cmd
}

func (m *Mode) syncFocus() tea.Cmd {
	if m.wf.Thought() == "" {
		m.thought.Reset()
	}
	if m.wf.Decision() == "" {
		m.decision.Reset()
	}
	m.thought.Blur()
	m.decision.Blur()
	switch m.wf.Step() {
	case workflow.StepSetup:
		return m.thought.Focus()
	case workflow.StepDecide:
		return m.decision.Focus()
	}
	return nil
}

// Bindings lists the keys for the current step.
func (m *Mode) Bindings() []key.Binding {
	if m.wf == nil {
		return nil
	}
	switch m.wf.Step() {
	case workflow.StepSetup:
		return []key.Binding{modes.WithHelp(modes.Keys.Submit, "start timer")}
	case workflow.StepThinking:
		return []key.Binding{
			modes.Keys.Pause,
			modes.WithHelp(modes.Keys.Submit, "ready to decide"),
			modes.Keys.Reset,
		}
	default:
		return []key.Binding{
			modes.WithHelp(modes.Keys.Submit, "commit"),
			modes.Keys.CommitSchedule,
			modes.Keys.CommitDiscard,
			modes.Keys.Reset,
		}
	}
}

// View renders the timer
func (m *Mode) View() string {
	if m.wf == nil {
		return ""
	}
	width := m.Width()
	clock := m.wf.Clock()

	var out string
	switch m.wf.Step() {
	case workflow.StepSetup:
		desc := fmt.Sprintf("You have %s to think. When time ends, you must decide.", countdown.Format(clock.Duration()))
		out = modes.Card(width, "5-Minute Rule Mode", desc, m.thought.View(), nil)

	case workflow.StepThinking:
		big := lipgloss.NewStyle().Bold(true).Render(countdown.Format(clock.Remaining()))
		state := "remaining"
		if !clock.Running() {
			state = "paused"
		}
		body := strings.Join([]string{
			lipgloss.PlaceHorizontal(max(10, width-6), lipgloss.Center, big+" "+modes.SubtleStyle.Render(state)),
			"",
			m.bar.ViewAs(clock.Progress() / 100),
			"",
			modes.SubtleStyle.Render("Thinking about:"),
			modes.Quote(width, m.wf.Thought()),
		}, "\n")
		out = modes.Card(width, "Think. But not forever.", "", body, nil)

	case workflow.StepDecide:
		title := "Make your decision"
		desc := "You've decided to stop thinking. What's the outcome?"
		border := lipgloss.TerminalColor(modes.ColorAccent)
		if m.wf.Expired() {
			title = "Time's up. Decide now."
			desc = "No more thinking. Pick an option or define your next action."
			border = modes.ColorDanger
		}
		commit := m.wf.CanCommit()
		body := strings.Join([]string{
			modes.SubtleStyle.Render("Your thought:"),
			modes.Quote(width, m.wf.Thought()),
			"",
			modes.LabelStyle.Render("What's the decision or next action?"),
			m.decision.View(),
			"",
			modes.Choice("enter", "Do this", commit) + "   " +
				modes.Choice("ctrl+s", "Schedule", commit) + "   " +
				modes.Choice("ctrl+x", "Discard", true),
		}, "\n")
		out = modes.Card(width, title, desc, body, border)
	}

	if status := m.StatusMsg(); status != "" {
		out += "\n" + modes.StatusStyle.Render(status)
	}
	return out
}
