// internal/modes/braindump/braindump.go
//
// Brain dump screen: dump a messy thought, name the real decision, narrow it
// to two options and one priority, then resolve.

package braindump

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/endthought/internal/modes"
	"github.com/kingrea/endthought/internal/resolution"
	"github.com/kingrea/endthought/internal/workflow"
)

const (
	fieldOptionA = iota
	fieldOptionB
	fieldPriority
	fieldCount
)

// Mode drives a workflow.BrainDump.
type Mode struct {
	modes.BaseMode
	wf       *workflow.BrainDump
	thought  textarea.Model
	decision textinput.Model
	fields   [fieldCount]textinput.Model
	focus    int
}

// New creates a new brain dump mode
func New() *Mode {
	m := &Mode{
		BaseMode: modes.NewBaseMode("Brain Dump", modes.ScreenDump),
	}
	m.thought = modes.NewArea("I don't know if I should work on project A or B, both matter, I'm stuck and keep going back and forth...", 60)
	m.decision = modes.NewInput("e.g., Which project should I prioritize this week?", 60)
	m.fields[fieldOptionA] = modes.NewInput("e.g., Focus on Project A", 40)
	m.fields[fieldOptionB] = modes.NewInput("e.g., Focus on Project B", 40)
	m.fields[fieldPriority] = modes.NewInput("e.g., Deadline urgency", 40)
	return m
}

// Init wires the workflow to the shared ledger.
func (m *Mode) Init(ctx *modes.ModeContext) tea.Cmd {
	m.SetContext(ctx)
	m.wf = workflow.NewBrainDump(m.Minter(), m.Resolver())
	return tea.Batch(m.thought.Focus(), textarea.Blink)
}

// Workflow exposes the underlying state machine.
func (m *Mode) Workflow() *workflow.BrainDump {
	return m.wf
}

// Capturing reports whether a text field has focus.
func (m *Mode) Capturing() bool {
	return m.wf != nil && m.wf.Step() != workflow.StepResolve
}

// Update handles messages for the brain dump
func (m *Mode) Update(msg tea.Msg) (modes.Mode, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		width := max(20, msg.Width-8)
		m.thought.SetWidth(width)
		m.decision.Width = width - 4
		for i := range m.fields {
			m.fields[i].Width = width - 4
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, modes.Keys.Reset) {
			m.wf.StartOver()
			m.SetStatusMsg("Started over")
			return m, m.syncFocus()
		}
		switch m.wf.Step() {
		case workflow.StepDump:
			return m.updateDump(msg)
		case workflow.StepBreakdown:
			return m.updateBreakdown(msg)
		case workflow.StepOptions:
			return m.updateOptions(msg)
		case workflow.StepResolve:
			return m.updateResolve(msg)
		}
	}

	return m, m.forward(msg)
}

func (m *Mode) updateDump(msg tea.KeyMsg) (modes.Mode, tea.Cmd) {
	if key.Matches(msg, modes.Keys.Submit) {
		if m.wf.Breakdown() {
			m.SetStatusMsg("")
			return m, m.syncFocus()
		}
		return m, nil
	}
	return m, m.forward(msg)
}

func (m *Mode) updateBreakdown(msg tea.KeyMsg) (modes.Mode, tea.Cmd) {
	switch {
	case key.Matches(msg, modes.Keys.Submit):
		if m.wf.DefineOptions() {
			m.focus = fieldOptionA
			return m, m.syncFocus()
		}
		return m, nil
	case key.Matches(msg, modes.Keys.Back):
		m.wf.StartOver()
		m.SetStatusMsg("Started over")
		return m, m.syncFocus()
	}
	return m, m.forward(msg)
}

func (m *Mode) updateOptions(msg tea.KeyMsg) (modes.Mode, tea.Cmd) {
	switch {
	case key.Matches(msg, modes.Keys.NextField):
		m.focus = (m.focus + 1) % fieldCount
		return m, m.syncFocus()
	case key.Matches(msg, modes.Keys.PrevField):
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return m, m.syncFocus()
	case key.Matches(msg, modes.Keys.Back):
		if m.wf.Back() {
			return m, m.syncFocus()
		}
		return m, nil
	case key.Matches(msg, modes.Keys.Submit):
		if m.wf.Decide() {
			return m, m.syncFocus()
		}
		if m.focus < fieldPriority {
			m.focus++
			return m, m.syncFocus()
		}
		return m, nil
	}
	return m, m.forward(msg)
}

func (m *Mode) updateResolve(msg tea.KeyMsg) (modes.Mode, tea.Cmd) {
	var (
		rec resolution.Record
		ok  bool
	)
	switch {
	case key.Matches(msg, modes.Keys.OptionA):
		rec, ok = m.wf.Choose(0)
	case key.Matches(msg, modes.Keys.OptionB):
		rec, ok = m.wf.Choose(1)
	case key.Matches(msg, modes.Keys.Schedule):
		rec, ok = m.wf.Schedule()
	case key.Matches(msg, modes.Keys.Discard):
		rec, ok = m.wf.Discard()
	default:
		return m, nil
	}
	if !ok {
		return m, nil
	}
	m.SetStatusMsg(fmt.Sprintf("Resolved: %s", rec.Kind.Label()))
	return m, tea.Batch(m.syncFocus(), modes.Resolved(rec))
}

// forward hands msg to the focused field and copies its value into the
// workflow.
func (m *Mode) forward(msg tea.Msg) tea.Cmd {
	if m.wf == nil {
		return nil
	}
	var cmd tea.Cmd
	switch m.wf.Step() {
	case workflow.StepDump:
		m.thought, cmd = m.thought.Update(msg)
		m.wf.SetThought(m.thought.Value())
	case workflow.StepBreakdown:
		m.decision, cmd = m.decision.Update(msg)
		m.wf.SetDecision(m.decision.Value())
	case workflow.StepOptions:
		m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
		value := m.fields[m.focus].Value()
		if m.focus == fieldPriority {
			m.wf.SetPriority(value)
		} else {
			m.wf.SetOption(m.focus, value)
		}
	}
	return cmd
}

// syncFocus makes the widgets mirror the workflow after a transition. A
// workflow that was reset gets empty widgets.
func (m *Mode) syncFocus() tea.Cmd {
	if m.wf.Thought() == "" && m.thought.Value() != "" {
		m.thought.Reset()
	}
	if m.wf.Decision() == "" {
		m.decision.Reset()
	}
	opts := m.wf.Options()
	for i := fieldOptionA; i <= fieldOptionB; i++ {
		if opts[i] == "" {
			m.fields[i].Reset()
		}
	}
	if m.wf.Priority() == "" {
		m.fields[fieldPriority].Reset()
		if m.wf.Step() == workflow.StepDump {
			m.focus = fieldOptionA
		}
	}

	m.thought.Blur()
	m.decision.Blur()
	for i := range m.fields {
		m.fields[i].Blur()
	}
	switch m.wf.Step() {
	case workflow.StepDump:
		return m.thought.Focus()
	case workflow.StepBreakdown:
		return m.decision.Focus()
	case workflow.StepOptions:
		return m.fields[m.focus].Focus()
	}
	return nil
}

// Bindings lists the keys for the current step.
func (m *Mode) Bindings() []key.Binding {
	if m.wf == nil {
		return nil
	}
	switch m.wf.Step() {
	case workflow.StepDump:
		return []key.Binding{modes.WithHelp(modes.Keys.Submit, "break it down")}
	case workflow.StepBreakdown:
		return []key.Binding{
			modes.WithHelp(modes.Keys.Submit, "define options"),
			modes.WithHelp(modes.Keys.Back, "start over"),
		}
	case workflow.StepOptions:
		return []key.Binding{
			modes.WithHelp(modes.Keys.Submit, "decide"),
			modes.Keys.NextField,
			modes.Keys.Back,
		}
	default:
		return []key.Binding{
			modes.Keys.OptionA,
			modes.Keys.OptionB,
			modes.Keys.Schedule,
			modes.Keys.Discard,
			modes.Keys.Reset,
		}
	}
}

// View renders the brain dump
func (m *Mode) View() string {
	if m.wf == nil {
		return ""
	}
	width := m.Width()
	var b strings.Builder
	b.WriteString(m.renderSteps())
	b.WriteString("\n\n")

	switch m.wf.Step() {
	case workflow.StepDump:
		b.WriteString(modes.Card(width, "Brain Dump",
			"Type out your messy thought. Don't filter. Just dump it all.",
			m.thought.View(), nil))
	case workflow.StepBreakdown:
		body := modes.LabelStyle.Render("Your thought:") + "\n" +
			modes.Quote(width, m.wf.Thought()) + "\n\n" +
			m.decision.View()
		b.WriteString(modes.Card(width, "What is the actual decision?",
			"Strip away the noise. What are you really trying to decide?", body, nil))
	case workflow.StepOptions:
		body := modes.LabelStyle.Render("Decision: ") + m.wf.Decision() + "\n\n" +
			modes.LabelStyle.Render("Option A") + "\n" + m.fields[fieldOptionA].View() + "\n" +
			modes.LabelStyle.Render("Option B") + "\n" + m.fields[fieldOptionB].View() + "\n\n" +
			modes.LabelStyle.Render("What matters most? (1 factor only)") + "\n" + m.fields[fieldPriority].View()
		b.WriteString(modes.Card(width, "Your top 2 options",
			"No 20-variable spirals. Just 2 options. That's the constraint.", body, nil))
	case workflow.StepResolve:
		opts := m.wf.Options()
		body := strings.Join([]string{
			modes.Choice("a", opts[0], true) + "  " + modes.SubtleStyle.Render("Do this now"),
			modes.Choice("b", opts[1], true) + "  " + modes.SubtleStyle.Render("Do this now"),
			"",
			modes.Choice("s", "Schedule for later", true) + "    " + modes.Choice("x", "Discard thought", true),
		}, "\n")
		b.WriteString(modes.Card(width, "Time to decide",
			fmt.Sprintf("Based on %q being what matters most:", m.wf.Priority()), body, modes.ColorAccent))
	}

	if status := m.StatusMsg(); status != "" {
		b.WriteString("\n")
		b.WriteString(modes.StatusStyle.Render(status))
	}
	return b.String()
}

func (m *Mode) renderSteps() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(modes.ColorAccent)
	done := lipgloss.NewStyle().Foreground(modes.ColorInfo)
	pending := lipgloss.NewStyle().Foreground(modes.ColorMuted)
	current := m.wf.Step()
	parts := make([]string, 0, len(workflow.DumpSteps))
	for i, step := range workflow.DumpSteps {
		label := fmt.Sprintf("%d %s", i+1, step.Label())
		switch {
		case step == current:
			parts = append(parts, active.Render(label))
		case step < current:
			parts = append(parts, done.Render(label))
		default:
			parts = append(parts, pending.Render(label))
		}
	}
	return strings.Join(parts, pending.Render(" ─ "))
}
