// Package ui renders the storefront screens in the terminal. The
// bubbletea loop is the app's single event loop: key presses and inbound
// bridge events both arrive here as messages, so every controller call
// stays serialized.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/angelmondragon/shopfront-miniapp/internal/session"
	"github.com/angelmondragon/shopfront-miniapp/pkg/bridge"
	"github.com/angelmondragon/shopfront-miniapp/pkg/enums"
)

// Model is the bubbletea model wrapping the screen controller.
type Model struct {
	ctrl     *session.Controller
	events   <-chan bridge.Event
	dispatch func(bridge.Event)

	cursor     int
	lastScreen enums.Screen
	width      int
	height     int
	quitting   bool
	styles     styles
}

// NewModel wires the controller to the event loop. dispatch hands one
// inbound event to the bridge's registered handlers; events is the queue
// the transport fills.
func NewModel(ctrl *session.Controller, events <-chan bridge.Event, dispatch func(bridge.Event)) *Model {
	return &Model{
		ctrl:       ctrl,
		events:     events,
		dispatch:   dispatch,
		lastScreen: ctrl.Screen(),
		styles:     defaultStyles(),
	}
}

// Init starts draining bridge events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, waitForBridgeEvent(m.events))
}

// Update handles messages and navigation.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case bridgeEventMsg:
		m.dispatch(msg.ev)
		m.afterAction()
		if m.ctrl.Closed() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, waitForBridgeEvent(m.events)
	case bridgeClosedMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < m.maxIndex() {
			m.cursor++
		}
		return m, nil
	case "esc", "backspace":
		m.ctrl.Back()
		m.afterAction()
		return m, nil
	case "c":
		m.ctrl.OpenCart()
		m.afterAction()
		return m, nil
	}

	view := m.ctrl.View()
	switch view.Screen {
	case enums.ScreenCategories:
		if msg.String() == "enter" && m.cursor < len(view.Categories) {
			m.ctrl.SelectCategory(view.Categories[m.cursor].ID)
			m.afterAction()
		}
	case enums.ScreenProducts:
		if msg.String() == "enter" && m.cursor < len(view.Products) {
			m.ctrl.SelectProduct(view.Products[m.cursor].ID)
			m.afterAction()
		}
	case enums.ScreenProductDetails:
		switch msg.String() {
		case "s":
			m.ctrl.ChooseSize(nextOption(view.Product.Sizes, view.SelectedSize))
		case "o":
			m.ctrl.ChooseColor(nextOption(view.Product.Colors, view.SelectedColor))
		case "enter", "a":
			m.ctrl.AddToCart()
		}
	case enums.ScreenCart:
		switch msg.String() {
		case "x", "delete":
			if m.cursor < len(view.CartEntries) {
				m.ctrl.RemoveFromCart(view.CartEntries[m.cursor].Item.Key())
				m.afterAction()
			}
		case "enter", "p":
			// The main button lives in host chrome; in the terminal the
			// same trigger is a key press.
			m.dispatch(bridge.Event{Type: bridge.EventMainButtonClicked})
		}
	}
	return m, nil
}

// afterAction clamps the cursor and resets it when the screen changed.
func (m *Model) afterAction() {
	if screen := m.ctrl.Screen(); screen != m.lastScreen {
		m.lastScreen = screen
		m.cursor = 0
		return
	}
	if max := m.maxIndex(); m.cursor > max {
		m.cursor = max
	}
}

func (m *Model) maxIndex() int {
	view := m.ctrl.View()
	var n int
	switch view.Screen {
	case enums.ScreenCategories:
		n = len(view.Categories)
	case enums.ScreenProducts:
		n = len(view.Products)
	case enums.ScreenCart:
		n = len(view.CartEntries)
	}
	if n == 0 {
		return 0
	}
	return n - 1
}

func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, option := range options {
		if option == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}
