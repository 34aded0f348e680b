// internal/modes/resolved/resolved.go
//
// Resolved screen: the session ledger, newest first, with per-kind counts,
// a copyable recap, and the tail of the session journal.

package resolved

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/kingrea/endthought/internal/modes"
	"github.com/kingrea/endthought/internal/resolution"
	"github.com/kingrea/endthought/internal/workflow"
)

const (
	// EmptyText is shown before anything has been resolved.
	EmptyText = "Use the Brain Dump, Decision Engine, Timer, or Importance Filter to process your thoughts. They'll show up here once resolved."

	journalLines = 5
	chromeHeight = 8
)

var (
	doStyle       = lipgloss.NewStyle().Foreground(modes.ColorAccent)
	scheduleStyle = lipgloss.NewStyle().Foreground(modes.ColorWarn)
	ignoreStyle   = lipgloss.NewStyle().Foreground(modes.ColorMuted)
)

// Mode shows the ledger.
type Mode struct {
	modes.BaseMode
	view viewport.Model
}

// New creates a new resolved mode
func New() *Mode {
	return &Mode{
		BaseMode: modes.NewBaseMode("Resolved", modes.ScreenResolved),
		view:     viewport.New(80, 16),
	}
}

// Init renders the current ledger.
func (m *Mode) Init(ctx *modes.ModeContext) tea.Cmd {
	m.SetContext(ctx)
	m.refresh()
	return nil
}

// Capturing is always false: the screen has no text fields.
func (m *Mode) Capturing() bool {
	return false
}

// Update handles messages for the resolved screen
func (m *Mode) Update(msg tea.Msg) (modes.Mode, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.view.Width = max(20, msg.Width-4)
		m.view.Height = max(3, msg.Height-chromeHeight)
		m.refresh()
		return m, nil

	case modes.ResolvedMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, modes.Keys.Copy) {
			m.copyRecap()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *Mode) copyRecap() {
	ctx := m.Context()
	if ctx == nil || ctx.Ledger == nil || ctx.Ledger.Len() == 0 {
		m.SetStatusMsg("Nothing to copy yet")
		return
	}
	if ctx.Clipboard == nil {
		m.SetStatusMsg("Clipboard unavailable")
		return
	}
	if err := ctx.Clipboard(resolution.Recap(ctx.Ledger.Records())); err != nil {
		m.SetStatusMsg(fmt.Sprintf("Copy failed: %v", err))
		m.LogWarn("Recap copy failed: %v", err)
		return
	}
	m.SetStatusMsg(fmt.Sprintf("Copied recap of %d thoughts", ctx.Ledger.Len()))
}

func (m *Mode) refresh() {
	ctx := m.Context()
	var records []resolution.Record
	if ctx != nil && ctx.Ledger != nil {
		records = ctx.Ledger.Records()
	}
	m.view.SetContent(m.renderRecords(records))
}

// Bindings lists the keys for the resolved screen.
func (m *Mode) Bindings() []key.Binding {
	return []key.Binding{modes.Keys.Up, modes.Keys.Down, modes.Keys.Copy}
}

// View renders the resolved screen
func (m *Mode) View() string {
	ctx := m.Context()
	width := m.Width()

	var summary resolution.Summary
	if ctx != nil && ctx.Ledger != nil {
		summary = ctx.Ledger.Counts()
	}

	var b strings.Builder
	if summary.Total() == 0 {
		body := lipgloss.NewStyle().Width(max(20, width-6)).Render(modes.SubtleStyle.Render(EmptyText))
		b.WriteString(modes.Card(width, "No resolved thoughts yet", "", body, nil))
	} else {
		b.WriteString(renderStats(summary))
		b.WriteString("\n\n")
		b.WriteString(modes.TitleStyle.Render("Resolved Thoughts"))
		b.WriteString("  ")
		b.WriteString(modes.SubtleStyle.Render("Every thought here has been processed. No loose ends."))
		b.WriteString("\n")
		b.WriteString(m.view.View())
	}

	if journal := m.renderJournal(); journal != "" {
		b.WriteString("\n\n")
		b.WriteString(journal)
	}
	if status := m.StatusMsg(); status != "" {
		b.WriteString("\n")
		b.WriteString(modes.StatusStyle.Render(status))
	}
	return b.String()
}

func renderStats(s resolution.Summary) string {
	stat := func(style lipgloss.Style, n int, label string) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(modes.ColorBorder).
			Padding(0, 2).
			Align(lipgloss.Center).
			Render(style.Bold(true).Render(fmt.Sprint(n)) + "\n" + modes.SubtleStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		stat(doStyle, s.Do, "Actions taken"), " ",
		stat(scheduleStyle, s.Schedule, "Scheduled"), " ",
		stat(ignoreStyle, s.Ignore, "Discarded"),
	)
}

func (m *Mode) renderRecords(records []resolution.Record) string {
	now := time.Now()
	if ctx := m.Context(); ctx != nil {
		now = ctx.Clock()
	}
	width := max(20, m.view.Width-2)

	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		style := kindStyle(rec.Kind)
		thought := lipgloss.NewStyle().Width(width - 14)
		if rec.Kind == resolution.KindIgnore {
			thought = thought.Strikethrough(true).Foreground(modes.ColorMuted)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			thought.Render(rec.Thought),
			" ",
			style.Render("["+rec.Kind.Label()+"]"),
		))
		b.WriteString("\n")
		if rec.HasAction() && rec.Kind != resolution.KindIgnore {
			b.WriteString(lipgloss.NewStyle().Bold(true).Render("→ " + rec.Action))
			b.WriteString("\n")
		}
		b.WriteString(modes.SubtleStyle.Render(fmt.Sprintf("%s · %s (%s)",
			sourceName(rec.Source),
			rec.CreatedAt.Local().Format("3:04 PM"),
			humanize.RelTime(rec.CreatedAt, now, "ago", "from now"),
		)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Mode) renderJournal() string {
	ctx := m.Context()
	if ctx == nil || ctx.Logbook == nil {
		return ""
	}
	entries, total := ctx.Logbook.Tail(journalLines)
	if total == 0 {
		return ""
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		if e.At.IsZero() {
			lines[i] = e.Message
			continue
		}
		lines[i] = fmt.Sprintf("%s %-5s %s", e.At.Local().Format("15:04:05"), e.Level, e.Message)
	}
	header := modes.SubtleStyle.Render(fmt.Sprintf("Journal · %s entries · %s",
		humanize.Comma(int64(total)), ctx.Logbook.Path()))
	return header + "\n" + modes.SubtleStyle.Render(strings.Join(lines, "\n"))
}

func kindStyle(k resolution.Kind) lipgloss.Style {
	switch k {
	case resolution.KindDo:
		return doStyle
	case resolution.KindSchedule:
		return scheduleStyle
	default:
		return ignoreStyle
	}
}

func sourceName(src resolution.Source) string {
	for _, mode := range workflow.Modes {
		if mode.Source() == src {
			return mode.FriendlyName()
		}
	}
	return string(src)
}
