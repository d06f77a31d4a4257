package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type homeState struct {
	idx int
}

func newHomeState() homeState {
	return homeState{}
}

func (m appModel) homeEntries() []string {
	return []string{"Log in", "Sign up", "Quit"}
}

func (m appModel) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	entries := m.homeEntries()
	switch key.String() {
	case "up", "k":
		if m.home.idx > 0 {
			m.home.idx--
		}
	case "down", "j":
		if m.home.idx < len(entries)-1 {
			m.home.idx++
		}
	case "l":
		m.flash = ""
		m.view = viewLogin
	case "s":
		m.flash = ""
		m.view = viewSignup
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		m.flash = ""
		switch m.home.idx {
		case 0:
			m.view = viewLogin
		case 1:
			m.view = viewSignup
		case 2:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m appModel) viewHomePage() string {
	var b strings.Builder
	b.WriteString(styleMuted().Render("Task management for the terminal") + "\n\n")
	for i, entry := range m.homeEntries() {
		cursor := "  "
		line := entry
		if i == m.home.idx {
			cursor = "> "
			line = lipgloss.NewStyle().
				Foreground(colorSelectedFg).
				Background(colorSelectedBg).
				Render(" " + entry + " ")
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("↑/↓ move · enter select · q quit"))
	if e := m.errLine(); e != "" {
		b.WriteString("\n\n" + e)
	}
	return b.String()
}
