// Package tui is the interactive terminal front end: login/signup flow, the
// user task dashboard, and the admin dashboard, composed over the view-models.
package tui

import (
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck-cli/internal/session"
	"taskdeck-cli/internal/viewmodel"
)

// Backend is everything the TUI needs from the API client.
type Backend interface {
	viewmodel.AuthBackend
	viewmodel.TaskBackend
	viewmodel.AdminBackend
}

// Deps wires the TUI to the API client and session store.
type Deps struct {
	Client  Backend
	Session session.Store
}

// Run starts the interactive program and blocks until the user quits.
// TASKDECK_DEBUG_LOG, when set to a path, routes log output there; stdout is
// owned by the renderer while the program runs.
func Run(deps Deps) error {
	if path := strings.TrimSpace(os.Getenv("TASKDECK_DEBUG_LOG")); path != "" {
		f, err := tea.LogToFile(path, "taskdeck")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(deps)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
