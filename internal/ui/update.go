package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all UI state updates based on incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case startMsg:
		m.total = msg.total
		m.started = time.Now()
		return m, nil

	case completedMsg:
		m.done++
		if msg.err != nil {
			m.failed++
		}
		m.current = msg.item.Name()
		return m, nil

	case finishMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}
