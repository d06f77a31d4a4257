package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/viewmodel"
)

type adminPane int

const (
	paneUsers adminPane = iota
	paneTasks
)

type userFormState struct {
	// username, email, roles, new password
	inputs [4]textinput.Model
	focus  int
	id     int64
}

func userFormFrom(u model.User) userFormState {
	var f userFormState
	f.id = u.ID
	f.inputs[0] = newFormInput("username", 0)
	f.inputs[1] = newFormInput("email", 0)
	f.inputs[2] = newFormInput("roles (comma separated)", 0)
	f.inputs[3] = newFormInput("new password (blank keeps current)", 0)
	f.inputs[3].EchoMode = textinput.EchoPassword
	f.inputs[0].SetValue(u.Username)
	f.inputs[1].SetValue(u.Email)
	f.inputs[2].SetValue(viewmodel.JoinRoles(u.Roles))
	f.inputs[0].Focus()
	return f
}

func (f userFormState) record() model.User {
	return model.User{
		ID:       f.id,
		Username: strings.TrimSpace(f.inputs[0].Value()),
		Email:    strings.TrimSpace(f.inputs[1].Value()),
		Roles:    viewmodel.SplitRoles(f.inputs[2].Value()),
		Password: f.inputs[3].Value(),
	}
}

type adminTaskFormState struct {
	inputs    [3]textinput.Model // title, description, due date
	statusIdx int
	focus     int // 0..2 inputs, 3 status field
	id        int64
}

func adminTaskFormFrom(t model.Task) adminTaskFormState {
	var f adminTaskFormState
	f.id = t.ID
	f.inputs[0] = newFormInput("title", 0)
	f.inputs[1] = newFormInput("description", 0)
	f.inputs[2] = newFormInput("YYYY-MM-DD", 0)
	f.inputs[0].SetValue(t.Title)
	f.inputs[1].SetValue(t.Description)
	f.inputs[2].SetValue(t.DueDate)
	for i, s := range model.AdminStatusOptions() {
		if s == t.Status {
			f.statusIdx = i
		}
	}
	f.inputs[0].Focus()
	return f
}

func (f adminTaskFormState) record() model.Task {
	return model.Task{
		ID:          f.id,
		Title:       strings.TrimSpace(f.inputs[0].Value()),
		Description: strings.TrimSpace(f.inputs[1].Value()),
		DueDate:     strings.TrimSpace(f.inputs[2].Value()),
		Status:      model.AdminStatusOptions()[f.statusIdx],
	}
}

type adminPageState struct {
	pane     adminPane
	userTbl  table.Model
	taskTbl  table.Model
	userRows []model.User
	taskRows []model.Task
	userForm userFormState
	taskForm adminTaskFormState
	width    int
	height   int
}

func newAdminPageState() adminPageState {
	s := adminPageState{width: 80, height: 24}
	s.userTbl = table.New(
		table.WithColumns(userColumns(s.width)),
		table.WithFocused(true),
		table.WithHeight(6),
	)
	s.userTbl.SetStyles(tableStyles())
	s.taskTbl = table.New(
		table.WithColumns(taskColumns(s.width)),
		table.WithHeight(6),
	)
	s.taskTbl.SetStyles(tableStyles())
	return s
}

func userColumns(width int) []table.Column {
	avail := width - 2 - 5 - 8
	if avail < 30 {
		avail = 30
	}
	username := avail * 3 / 10
	email := avail * 4 / 10
	roles := avail - username - email
	return []table.Column{
		{Title: "S.No", Width: 5},
		{Title: "ID", Width: 8},
		{Title: "Username", Width: username},
		{Title: "Email", Width: email},
		{Title: "Roles", Width: roles},
	}
}

func (s *adminPageState) resize(width, height int) {
	s.width = width
	s.height = height
	s.userTbl.SetColumns(userColumns(width))
	s.taskTbl.SetColumns(taskColumns(width))
	h := (height - 12) / 2
	if h < 4 {
		h = 4
	}
	s.userTbl.SetHeight(h)
	s.taskTbl.SetHeight(h)
}

func (s *adminPageState) setRows(users []model.User, tasks []model.Task) {
	s.userRows = users
	urows := make([]table.Row, len(users))
	for i, u := range users {
		urows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.FormatInt(u.ID, 10),
			u.Username,
			u.Email,
			viewmodel.JoinRoles(u.Roles),
		}
	}
	s.userTbl.SetRows(urows)
	if s.userTbl.Cursor() >= len(urows) && len(urows) > 0 {
		s.userTbl.SetCursor(len(urows) - 1)
	}

	s.taskRows = tasks
	trows := make([]table.Row, len(tasks))
	for i, t := range tasks {
		trows[i] = table.Row{
			strconv.Itoa(i + 1),
			t.Title,
			t.Description,
			t.DueDate,
			t.Status,
		}
	}
	s.taskTbl.SetRows(trows)
	if s.taskTbl.Cursor() >= len(trows) && len(trows) > 0 {
		s.taskTbl.SetCursor(len(trows) - 1)
	}
}

func (s *adminPageState) selectedUser() (model.User, bool) {
	i := s.userTbl.Cursor()
	if i < 0 || i >= len(s.userRows) {
		return model.User{}, false
	}
	return s.userRows[i], true
}

func (s *adminPageState) selectedTask() (model.Task, bool) {
	i := s.taskTbl.Cursor()
	if i < 0 || i >= len(s.taskRows) {
		return model.Task{}, false
	}
	return s.taskRows[i], true
}

func (s *adminPageState) focusPane(p adminPane) {
	s.pane = p
	if p == paneUsers {
		s.userTbl.Focus()
		s.taskTbl.Blur()
	} else {
		s.userTbl.Blur()
		s.taskTbl.Focus()
	}
}

func (m appModel) updateAdmin(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalEditUser:
		return m.updateUserForm(msg)
	case modalEditAdminTask:
		return m.updateAdminTaskForm(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q":
			return m, tea.Quit
		case "esc", "b":
			m.view = viewTasks
			return m, nil
		case "tab":
			if m.adminpg.pane == paneUsers {
				m.adminpg.focusPane(paneTasks)
			} else {
				m.adminpg.focusPane(paneUsers)
			}
			return m, nil
		case "r":
			if m.pending {
				return m, nil
			}
			m.pending = true
			return m, m.loadAdminCmd()
		case "e", "u":
			if m.adminpg.pane == paneUsers {
				if u, ok := m.adminpg.selectedUser(); ok {
					m.adminpg.userForm = userFormFrom(u)
					m.modal = modalEditUser
				}
			} else {
				if t, ok := m.adminpg.selectedTask(); ok {
					m.adminpg.taskForm = adminTaskFormFrom(t)
					m.modal = modalEditAdminTask
				}
			}
			return m, nil
		case "L":
			m.pending = true
			return m, m.logoutCmd()
		}
	}
	var cmd tea.Cmd
	if m.adminpg.pane == paneUsers {
		m.adminpg.userTbl, cmd = m.adminpg.userTbl.Update(msg)
	} else {
		m.adminpg.taskTbl, cmd = m.adminpg.taskTbl.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateUserForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := &m.adminpg.userForm
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.modal = modalNone
			m.flash = ""
			return m, nil
		case "tab", "down":
			f.focus = (f.focus + 1) % len(f.inputs)
			focusInputs(f.inputs[:], f.focus)
			return m, nil
		case "shift+tab", "up":
			f.focus = (f.focus + len(f.inputs) - 1) % len(f.inputs)
			focusInputs(f.inputs[:], f.focus)
			return m, nil
		case "enter":
			if m.pending {
				return m, nil
			}
			u := f.record()
			if u.Username == "" || u.Email == "" {
				m.flash = "Username and email are required."
				return m, nil
			}
			m.flash = ""
			m.pending = true
			return m, m.updateUserCmd(u)
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateAdminTaskForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := &m.adminpg.taskForm
	opts := model.AdminStatusOptions()
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
				f.statusIdx = (f.statusIdx + len(opts) - 1) % len(opts)
				return m, nil
			}
		case "right":
			if f.focus == 3 {
				f.statusIdx = (f.statusIdx + 1) % len(opts)
				return m, nil
			}
		case "enter":
			if m.pending {
				return m, nil
			}
			t := f.record()
			if t.Title == "" {
				m.flash = "Title is required."
				return m, nil
			}
			m.flash = ""
			m.pending = true
			return m, m.updateAdminTaskCmd(t)
		}
	}
	if f.focus < 3 {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) viewAdminPage() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Admin") + "\n")

	b.WriteString(paneTitle("Users", m.adminpg.pane == paneUsers) + "\n")
	if len(m.adminpg.userRows) == 0 {
		b.WriteString(styleMuted().Render("No users available") + "\n")
	} else {
		b.WriteString(m.adminpg.userTbl.View() + "\n")
	}

	b.WriteString("\n" + paneTitle("Tasks", m.adminpg.pane == paneTasks) + "\n")
	if len(m.adminpg.taskRows) == 0 {
		b.WriteString(styleMuted().Render("No tasks available") + "\n")
	} else {
		b.WriteString(m.adminpg.taskTbl.View() + "\n")
	}

	b.WriteString("\n" + styleMuted().Render(
		"tab pane · e edit · r reload · esc back · L logout · q quit"))
	if s := m.pendingLine(); s != "" {
		b.WriteString("\n" + s)
	}
	if e := m.errLine(); e != "" {
		b.WriteString("\n" + e)
	}
	return b.String()
}

func paneTitle(name string, active bool) string {
	if active {
		return styleTitle().Render("▸ " + name)
	}
	return styleMuted().Render("  " + name)
}

func (m appModel) renderUserFormModal() string {
	f := m.adminpg.userForm
	bodyW := modalBodyWidth(m.width)

	var b strings.Builder
	labels := []string{"Username", "Email", "Roles", "New Password"}
	for i, in := range f.inputs {
		b.WriteString(formLabel(labels[i], f.focus == i))
		b.WriteString(renderInputLine(bodyW, in.View()) + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("tab field · enter save · esc cancel"))
	if m.flash != "" {
		b.WriteString("\n" + styleError().Render(m.flash))
	}
	if e := m.admin.Err(); e != "" {
		b.WriteString("\n" + styleError().Render(e))
	}
	return renderModalBox(m.width, "Edit user", b.String())
}

func (m appModel) renderAdminTaskFormModal() string {
	f := m.adminpg.taskForm
	bodyW := modalBodyWidth(m.width)

	var b strings.Builder
	labels := []string{"Title", "Description", "Due Date"}
	for i, in := range f.inputs {
		b.WriteString(formLabel(labels[i], f.focus == i))
		b.WriteString(renderInputLine(bodyW, in.View()) + "\n")
	}
	b.WriteString(formLabel("Status", f.focus == 3))
	status := model.AdminStatusOptions()[f.statusIdx]
	b.WriteString(renderStatusField(status, f.focus == 3) + "\n")
	b.WriteString("\n" + styleMuted().Render("tab field · ←/→ status · enter save · esc cancel"))
	if m.flash != "" {
		b.WriteString("\n" + styleError().Render(m.flash))
	}
	if e := m.admin.Err(); e != "" {
		b.WriteString("\n" + styleError().Render(e))
	}
	return renderModalBox(m.width, "Edit task", b.String())
}
