package countdown

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Interval is the wall-clock length of one tick.
const Interval = time.Second

// TickMsg is delivered once per Interval to whichever model scheduled it.
type TickMsg struct {
	Epoch uint64
	At    time.Time
}

// Schedule returns a command that delivers the next tick for the clock's
// live epoch, or nil when the clock is not running. Callers schedule again
// after each accepted tick so exactly one tick is ever in flight.
func (c *Clock) Schedule() tea.Cmd {
	if c == nil || !c.running || c.epoch == 0 {
		return nil
	}
	epoch := c.epoch
	return tea.Tick(Interval, func(at time.Time) tea.Msg {
		return TickMsg{Epoch: epoch, At: at}
	})
}
