package tui

import "github.com/charmbracelet/lipgloss"

// overlayModal renders the active modal centered on a blank screen. The page
// underneath is intentionally not drawn; the modal is the only live surface
// while it is open.
func (m appModel) overlayModal() string {
	var box string
	switch m.modal {
	case modalAddTask, modalEditTask:
		box = m.renderTaskFormModal()
	case modalPickStatus:
		box = m.renderStatusPickerModal()
	case modalConfirmDelete:
		body := "This permanently removes the task from the backend."
		if e := m.tasks.Err(); e != "" {
			body += "\n\n" + styleError().Render(e)
		}
		box = renderConfirmModal(m.width,
			"Delete task",
			body,
			"Delete", "Cancel",
			m.taskspg.confirmFocus)
	case modalEditUser:
		box = m.renderUserFormModal()
	case modalEditAdminTask:
		box = m.renderAdminTaskFormModal()
	default:
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
