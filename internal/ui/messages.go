package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/angelmondragon/shopfront-miniapp/pkg/bridge"
)

// Message types feeding the event loop.
type bridgeEventMsg struct {
	ev bridge.Event
}

type bridgeClosedMsg struct{}

// waitForBridgeEvent arms a command that resolves with the next inbound
// bridge event. The model re-arms it after every delivery so the loop
// keeps draining.
func waitForBridgeEvent(events <-chan bridge.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return bridgeClosedMsg{}
		}
		return bridgeEventMsg{ev: ev}
	}
}
