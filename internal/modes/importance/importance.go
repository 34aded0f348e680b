// internal/modes/importance/importance.go
//
// Importance filter screen: will this thought matter in a week, a month, a
// year? The number of yes answers decides whether it deserves any energy.

package importance

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/endthought/internal/modes"
	"github.com/kingrea/endthought/internal/resolution"
	"github.com/kingrea/endthought/internal/scoring"
	"github.com/kingrea/endthought/internal/workflow"
)

// Mode drives a workflow.ImportanceFilter.
type Mode struct {
	modes.BaseMode
	wf      *workflow.ImportanceFilter
	thought textarea.Model
	cursor  int
}

// New creates a new importance filter mode
func New() *Mode {
	return &Mode{
		BaseMode: modes.NewBaseMode("Importance Filter", modes.ScreenImportance),
		thought:  modes.NewArea("What's the thought taking up space in your head?", 60),
	}
}

// Init wires the filter to the shared ledger.
func (m *Mode) Init(ctx *modes.ModeContext) tea.Cmd {
	m.SetContext(ctx)
	m.wf = workflow.NewImportanceFilter(m.Minter(), m.Resolver())
	return tea.Batch(m.thought.Focus(), textarea.Blink)
}

// Workflow exposes the underlying state machine.
func (m *Mode) Workflow() *workflow.ImportanceFilter {
	return m.wf
}

// Capturing reports whether the thought field has focus.
func (m *Mode) Capturing() bool {
	return m.wf == nil || m.wf.Step() == workflow.StepInput
}

// Update handles messages for the importance filter
func (m *Mode) Update(msg tea.Msg) (modes.Mode, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.thought.SetWidth(max(20, msg.Width-8))
		return m, nil

	case tea.KeyMsg:
		switch m.wf.Step() {
		case workflow.StepInput:
			if key.Matches(msg, modes.Keys.Submit) {
				if m.wf.Begin() {
					m.cursor = 0
					m.thought.Blur()
				}
				return m, nil
			}
		case workflow.StepFilter:
			return m.updateFilter(msg)
		case workflow.StepResult:
			return m.updateResult(msg)
		}
	}

	if m.wf != nil && m.wf.Step() == workflow.StepInput {
		var cmd tea.Cmd
		m.thought, cmd = m.thought.Update(msg)
		m.wf.SetThought(m.thought.Value())
		return m, cmd
	}
	return m, nil
}

func (m *Mode) updateFilter(msg tea.KeyMsg) (modes.Mode, tea.Cmd) {
	switch {
	case key.Matches(msg, modes.Keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, modes.Keys.Down):
		if m.cursor < len(scoring.Horizons)-1 {
			m.cursor++
		}
	case key.Matches(msg, modes.Keys.Yes):
		return m.answer(true)
	case key.Matches(msg, modes.Keys.No):
		return m.answer(false)
	case key.Matches(msg, modes.Keys.Back):
		return m, m.startAgain()
	}
	return m, nil
}

func (m *Mode) answer(yes bool) (modes.Mode, tea.Cmd) {
	m.wf.Answer(scoring.Horizons[m.cursor], yes)
	if m.wf.Step() == workflow.StepResult {
		if v, ok := m.wf.Verdict(); ok {
			m.LogInfo("Importance verdict: %s", v)
		}
		return m, nil
	}
	// move to the next unanswered horizon
	answers := m.wf.Answers()
	for i := 1; i <= len(scoring.Horizons); i++ {
		next := (m.cursor + i) % len(scoring.Horizons)
		if answers.Get(scoring.Horizons[next]) == scoring.Unanswered {
			m.cursor = next
			break
		}
	}
	return m, nil
}

func (m *Mode) updateResult(msg tea.KeyMsg) (modes.Mode, tea.Cmd) {
	var kind resolution.Kind
	switch {
	case key.Matches(msg, modes.Keys.Do):
		kind = resolution.KindDo
	case key.Matches(msg, modes.Keys.Schedule):
		kind = resolution.KindSchedule
	case key.Matches(msg, modes.Keys.Discard):
		kind = resolution.KindIgnore
	case key.Matches(msg, modes.Keys.Another), key.Matches(msg, modes.Keys.Back):
		return m, m.startAgain()
	default:
		return m, nil
	}
	rec, ok := m.wf.Resolve(kind)
	if !ok {
		return m, nil
	}
	m.SetStatusMsg(fmt.Sprintf("Resolved: %s", rec.Kind.Label()))
	return m, tea.Batch(m.startAgain(), modes.Resolved(rec))
}

func (m *Mode) startAgain() tea.Cmd {
	m.wf.FilterAnother()
	m.cursor = 0
	m.thought.Reset()
	return m.thought.Focus()
}

// Bindings lists the keys for the current step.
func (m *Mode) Bindings() []key.Binding {
	if m.wf == nil {
		return nil
	}
	switch m.wf.Step() {
	case workflow.StepInput:
		return []key.Binding{modes.WithHelp(modes.Keys.Submit, "run importance filter")}
	case workflow.StepFilter:
		return []key.Binding{modes.Keys.Up, modes.Keys.Down, modes.Keys.Yes, modes.Keys.No, modes.Keys.Back}
	default:
		v, _ := m.wf.Verdict()
		var bindings []key.Binding
		if v.Offers(resolution.KindDo) {
			bindings = append(bindings, modes.WithHelp(modes.Keys.Do, "take action"))
		}
		if v.Offers(resolution.KindSchedule) {
			bindings = append(bindings, modes.Keys.Schedule)
		}
		return append(bindings, modes.Keys.Discard, modes.Keys.Another)
	}
}

// View renders the importance filter
func (m *Mode) View() string {
	if m.wf == nil {
		return ""
	}
	width := m.Width()

	var out string
	switch m.wf.Step() {
	case workflow.StepInput:
		out = modes.Card(width, "Is this even important?",
			"Filter out the noise. Some thoughts don't deserve your energy.", m.thought.View(), nil)
	case workflow.StepFilter:
		out = modes.Card(width, "Will this matter in...",
			"Answer honestly. Most things we stress about don't matter.", m.renderQuestions(width), nil)
	case workflow.StepResult:
		out = m.renderResult(width)
	}

	if status := m.StatusMsg(); status != "" {
		out += "\n" + modes.StatusStyle.Render(status)
	}
	return out
}

func (m *Mode) renderQuestions(width int) string {
	answers := m.wf.Answers()
	yes := lipgloss.NewStyle().Bold(true).Foreground(modes.ColorAccent)
	no := lipgloss.NewStyle().Bold(true).Foreground(modes.ColorDanger)

	lines := []string{
		modes.SubtleStyle.Render("Your thought:"),
		modes.Quote(width, m.wf.Thought()),
		"",
	}
	for i, h := range scoring.Horizons {
		pointer := "  "
		if i == m.cursor {
			pointer = lipgloss.NewStyle().Foreground(modes.ColorInfo).Render("▸ ")
		}
		var mark string
		switch answers.Get(h) {
		case scoring.Yes:
			mark = yes.Render("Yes")
		case scoring.No:
			mark = no.Render("No")
		default:
			mark = modes.SubtleStyle.Render("y / n")
		}
		lines = append(lines, fmt.Sprintf("%sWill this matter in %-8s %s", pointer, h.Label()+"?", mark))
	}
	return strings.Join(lines, "\n")
}

func (m *Mode) renderResult(width int) string {
	v, _ := m.wf.Verdict()
	tone := lipgloss.TerminalColor(modes.ColorMuted)
	border := lipgloss.TerminalColor(modes.ColorBorder)
	switch v {
	case scoring.Noise:
		tone, border = modes.ColorDanger, modes.ColorDanger
	case scoring.Important:
		tone, border = modes.ColorAccent, modes.ColorAccent
	}

	segments := make([]string, len(scoring.Verdicts))
	for i := range scoring.Verdicts {
		color := lipgloss.TerminalColor(modes.ColorInactive)
		if i <= v.Level() {
			color = tone
		}
		segments[i] = lipgloss.NewStyle().Foreground(color).Render("━━━━━━")
	}

	var actions []string
	if v == scoring.Noise {
		actions = append(actions, modes.Choice("x", "Discard this thought", true))
	} else {
		actions = append(actions,
			modes.Choice("d", "Take action", true),
			modes.Choice("s", "Schedule", true),
			modes.Choice("x", "Discard", true),
		)
	}

	body := strings.Join([]string{
		modes.SubtleStyle.Render("Your thought:"),
		modes.Quote(width, m.wf.Thought()),
		"",
		strings.Join(segments, " "),
		"",
		strings.Join(actions, "   "),
		modes.Choice("f", "Filter another thought", true),
	}, "\n")

	headline := lipgloss.NewStyle().Foreground(tone).Render(v.Headline())
	return modes.Card(width, headline, v.Advice(), body, border)
}
