// Package tui provides the Bubble Tea front end: the animated route viewer,
// the run history browser and the SSH server that hosts them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// minStepDelay keeps zero-delay configurations from spinning the event loop.
const minStepDelay = 10 * time.Millisecond

// TickMsg is sent to reveal the next path cell.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after delay.
func tickCmd(delay time.Duration) tea.Cmd {
	if delay < minStepDelay {
		delay = minStepDelay
	}
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
