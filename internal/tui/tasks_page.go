package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck-cli/internal/model"
)

// taskFormState backs both the add and edit modals. A zero editingID means the
// form creates a new task.
type taskFormState struct {
	inputs    [3]textinput.Model // title, description, due date
	statusIdx int
	focus     int // 0..2 inputs, 3 status field
	editingID int64
}

func newTaskForm() taskFormState {
	var f taskFormState
	f.inputs[0] = newFormInput("title", 0)
	f.inputs[1] = newFormInput("description", 0)
	f.inputs[2] = newFormInput("YYYY-MM-DD", 0)
	f.inputs[0].Focus()
	return f
}

func taskFormFrom(t model.Task) taskFormState {
	f := newTaskForm()
	f.editingID = t.ID
	f.inputs[0].SetValue(t.Title)
	f.inputs[1].SetValue(t.Description)
	f.inputs[2].SetValue(t.DueDate)
	for i, s := range model.StatusOptions() {
		if s == t.Status {
			f.statusIdx = i
		}
	}
	return f
}

func (f taskFormState) draft() model.TaskDraft {
	return model.TaskDraft{
		Title:       strings.TrimSpace(f.inputs[0].Value()),
		Description: strings.TrimSpace(f.inputs[1].Value()),
		DueDate:     strings.TrimSpace(f.inputs[2].Value()),
		Status:      model.StatusOptions()[f.statusIdx],
	}
}

type tasksPageState struct {
	tbl  table.Model
	rows []model.Task

	form         taskFormState
	statusIdx    int
	statusForID  int64
	deleteID     int64
	confirmFocus confirmModalFocus

	showPreview bool

	width  int
	height int
}

func newTasksPageState() tasksPageState {
	s := tasksPageState{width: 80, height: 24}
	s.tbl = table.New(
		table.WithColumns(taskColumns(s.width)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s.tbl.SetStyles(tableStyles())
	return s
}

func taskColumns(width int) []table.Column {
	// Fixed columns first; title and description share what is left.
	avail := width - 2 - 5 - 12 - 12
	if avail < 20 {
		avail = 20
	}
	title := avail * 4 / 10
	desc := avail - title
	return []table.Column{
		{Title: "S.No", Width: 5},
		{Title: "Title", Width: title},
		{Title: "Description", Width: desc},
		{Title: "Due Date", Width: 12},
		{Title: "Status", Width: 12},
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(colorAccent)
	s.Selected = s.Selected.Foreground(colorSelectedFg).Background(colorSelectedBg)
	return s
}

func (s *tasksPageState) resize(width, height int) {
	s.width = width
	s.height = height
	s.tbl.SetColumns(taskColumns(width))
	h := height - 8
	if h < 4 {
		h = 4
	}
	s.tbl.SetHeight(h)
}

func (s *tasksPageState) setRows(tasks []model.Task) {
	s.rows = tasks
	rows := make([]table.Row, len(tasks))
	for i, t := range tasks {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			t.Title,
			t.Description,
			t.DueDate,
			t.Status,
		}
	}
	s.tbl.SetRows(rows)
	if s.tbl.Cursor() >= len(rows) && len(rows) > 0 {
		s.tbl.SetCursor(len(rows) - 1)
	}
}

func (s *tasksPageState) selected() (model.Task, bool) {
	i := s.tbl.Cursor()
	if i < 0 || i >= len(s.rows) {
		return model.Task{}, false
	}
	return s.rows[i], true
}

func (m appModel) updateTasks(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalAddTask, modalEditTask:
		return m.updateTaskForm(msg)
	case modalPickStatus:
		return m.updateStatusPicker(msg)
	case modalConfirmDelete:
		return m.updateDeleteConfirm(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q":
			return m, tea.Quit
		case "r":
			if m.pending {
				return m, nil
			}
			m.pending = true
			return m, m.loadTasksCmd()
		case "a":
			m.taskspg.form = newTaskForm()
			m.modal = modalAddTask
			return m, nil
		case "e", "u":
			if t, ok := m.taskspg.selected(); ok {
				m.taskspg.form = taskFormFrom(t)
				m.modal = modalEditTask
			}
			return m, nil
		case "s":
			if t, ok := m.taskspg.selected(); ok {
				m.taskspg.statusForID = t.ID
				m.taskspg.statusIdx = 0
				for i, s := range model.StatusOptions() {
					if s == t.Status {
						m.taskspg.statusIdx = i
					}
				}
				m.modal = modalPickStatus
			}
			return m, nil
		case "d":
			if t, ok := m.taskspg.selected(); ok {
				m.taskspg.deleteID = t.ID
				m.taskspg.confirmFocus = confirmFocusCancel
				m.modal = modalConfirmDelete
			}
			return m, nil
		case "p":
			m.taskspg.showPreview = !m.taskspg.showPreview
			return m, nil
		case "A":
			m.view = viewAdmin
			m.pending = true
			return m, m.loadAdminCmd()
		case "L":
			m.pending = true
			return m, m.logoutCmd()
		}
	}
	var cmd tea.Cmd
	m.taskspg.tbl, cmd = m.taskspg.tbl.Update(msg)
	return m, cmd
}

func (m appModel) updateTaskForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := &m.taskspg.form
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.modal = modalNone
			m.flash = ""
			return m, nil
		case "tab", "down":
			f.focus = (f.focus + 1) % 4
			focusInputs(f.inputs[:], f.focus)
			return m, nil
		case "shift+tab", "up":
			f.focus = (f.focus + 3) % 4
			focusInputs(f.inputs[:], f.focus)
			return m, nil
		case "left":
			if f.focus == 3 {
				f.statusIdx = (f.statusIdx + len(model.StatusOptions()) - 1) % len(model.StatusOptions())
				return m, nil
			}
		case "right":
			if f.focus == 3 {
				f.statusIdx = (f.statusIdx + 1) % len(model.StatusOptions())
				return m, nil
			}
		case "enter":
			if m.pending {
				return m, nil
			}
			d := f.draft()
			if d.Title == "" || d.Description == "" || d.DueDate == "" {
				m.flash = "All fields are required."
				return m, nil
			}
			m.flash = ""
			m.pending = true
			if f.editingID != 0 {
				return m, m.updateTaskCmd(model.Task{
					ID:          f.editingID,
					Title:       d.Title,
					Description: d.Description,
					DueDate:     d.DueDate,
					Status:      d.Status,
				})
			}
			return m, m.createTaskCmd(d)
		}
	}
	if f.focus < 3 {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateStatusPicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	opts := model.StatusOptions()
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.modal = modalNone
			return m, nil
		case "up", "k":
			m.taskspg.statusIdx = (m.taskspg.statusIdx + len(opts) - 1) % len(opts)
		case "down", "j":
			m.taskspg.statusIdx = (m.taskspg.statusIdx + 1) % len(opts)
		case "enter":
			if m.pending {
				return m, nil
			}
			m.pending = true
			return m, m.updateStatusCmd(m.taskspg.statusForID, opts[m.taskspg.statusIdx])
		}
	}
	return m, nil
}

func (m appModel) updateDeleteConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "n":
			m.modal = modalNone
			return m, nil
		case "tab", "left", "right":
			if m.taskspg.confirmFocus == confirmFocusConfirm {
				m.taskspg.confirmFocus = confirmFocusCancel
			} else {
				m.taskspg.confirmFocus = confirmFocusConfirm
			}
			return m, nil
		case "y":
			m.pending = true
			return m, m.deleteTaskCmd(m.taskspg.deleteID)
		case "enter":
			if m.taskspg.confirmFocus == confirmFocusCancel {
				m.modal = modalNone
				return m, nil
			}
			if m.pending {
				return m, nil
			}
			m.pending = true
			return m, m.deleteTaskCmd(m.taskspg.deleteID)
		}
	}
	return m, nil
}

func (m appModel) viewTasksPage() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Tasks") + "\n")
	if len(m.taskspg.rows) == 0 {
		b.WriteString("\n" + styleMuted().Render("No tasks available") + "\n")
	} else {
		b.WriteString(m.taskspg.tbl.View() + "\n")
	}
	if m.taskspg.showPreview {
		if t, ok := m.taskspg.selected(); ok && t.Description != "" {
			w := m.width - 4
			if w > 80 {
				w = 80
			}
			b.WriteString("\n" + renderMarkdown(t.Description, w))
		}
	}
	b.WriteString("\n" + styleMuted().Render(
		"a add · e edit · s status · d delete · p preview · r reload · A admin · L logout · q quit"))
	if s := m.pendingLine(); s != "" {
		b.WriteString("\n" + s)
	}
	if e := m.errLine(); e != "" {
		b.WriteString("\n" + e)
	}
	return b.String()
}

func (m appModel) renderTaskFormModal() string {
	f := m.taskspg.form
	title := "Add task"
	if f.editingID != 0 {
		title = "Edit task"
	}
	bodyW := modalBodyWidth(m.width)

	var b strings.Builder
	labels := []string{"Title", "Description", "Due Date"}
	for i, in := range f.inputs {
		b.WriteString(formLabel(labels[i], f.focus == i))
		b.WriteString(renderInputLine(bodyW, in.View()) + "\n")
	}
	b.WriteString(formLabel("Status", f.focus == 3))
	b.WriteString(renderStatusField(model.StatusOptions()[f.statusIdx], f.focus == 3) + "\n")
	b.WriteString("\n" + styleMuted().Render("tab field · ←/→ status · enter save · esc cancel"))
	if m.flash != "" {
		b.WriteString("\n" + styleError().Render(m.flash))
	}
	if e := m.tasks.Err(); e != "" {
		b.WriteString("\n" + styleError().Render(e))
	}
	return renderModalBox(m.width, title, b.String())
}

func renderStatusField(status string, focused bool) string {
	s := statusStyle(status).Render(status)
	if focused {
		return "◂ " + s + " ▸"
	}
	return "  " + s
}

func (m appModel) renderStatusPickerModal() string {
	var b strings.Builder
	for i, opt := range model.StatusOptions() {
		cursor := "  "
		line := statusStyle(opt).Render(opt)
		if i == m.taskspg.statusIdx {
			cursor = "> "
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("↑/↓ pick · enter apply · esc cancel"))
	if e := m.tasks.Err(); e != "" {
		b.WriteString("\n" + styleError().Render(e))
	}
	return renderModalBox(m.width, "Set status", b.String())
}
