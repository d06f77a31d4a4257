package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/viewmodel"
)

type view int

const (
	viewHome view = iota
	viewLogin
	viewSignup
	viewTasks
	viewAdmin
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAddTask
	modalEditTask
	modalPickStatus
	modalConfirmDelete
	modalEditUser
	modalEditAdminTask
)

// Operation results. Every backend call runs inside a tea.Cmd; the view-model
// has already applied (or refused) the mutation by the time the msg arrives.
type (
	loginDoneMsg   struct{ err error }
	signupDoneMsg  struct{ err error }
	logoutDoneMsg  struct{ err error }
	tasksOpDoneMsg struct{ err error }
	adminOpDoneMsg struct{ err error }
)

type appModel struct {
	deps Deps

	auth  *viewmodel.Authenticator
	tasks *viewmodel.TaskList
	admin *viewmodel.Admin

	width  int
	height int

	view    view
	modal   modalKind
	pending bool
	// flash holds transient local form validation messages; backend errors
	// live on the view-models. notice is for non-error confirmations.
	flash  string
	notice string

	home    homeState
	login   loginState
	signup  signupState
	taskspg tasksPageState
	adminpg adminPageState
}

func newAppModel(deps Deps) appModel {
	m := appModel{
		deps:  deps,
		auth:  viewmodel.NewAuthenticator(deps.Client, deps.Session),
		tasks: viewmodel.NewTaskList(deps.Client),
		admin: viewmodel.NewAdmin(deps.Client),
	}
	m.home = newHomeState()
	m.login = newLoginState()
	m.signup = newSignupState()
	m.taskspg = newTasksPageState()
	m.adminpg = newAdminPageState()

	if m.auth.State() == viewmodel.StateAuthenticated {
		m.view = viewTasks
		m.pending = true
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.view == viewTasks {
		// A persisted session goes straight to the dashboard; the token is
		// trusted until the backend rejects it.
		return m.loadTasksCmd()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.taskspg.resize(msg.Width, msg.Height)
		m.adminpg.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case loginDoneMsg:
		m.pending = false
		if msg.err != nil {
			return m, nil
		}
		m.login = newLoginState()
		m.notice = ""
		m.view = viewTasks
		m.pending = true
		return m, m.loadTasksCmd()

	case signupDoneMsg:
		m.pending = false
		if msg.err != nil {
			return m, nil
		}
		// Signup does not auto-login; the user logs in separately.
		m.signup = newSignupState()
		m.notice = "Account created. Log in to continue."
		m.view = viewLogin
		return m, nil

	case logoutDoneMsg:
		m.pending = false
		m.view = viewHome
		m.home = newHomeState()
		return m, nil

	case tasksOpDoneMsg:
		m.pending = false
		if msg.err == nil {
			m.modal = modalNone
			m.flash = ""
		}
		m.taskspg.setRows(m.tasks.Tasks())
		return m, nil

	case adminOpDoneMsg:
		m.pending = false
		if msg.err == nil {
			m.modal = modalNone
			m.flash = ""
		}
		m.adminpg.setRows(m.admin.Users(), m.admin.Tasks())
		return m, nil
	}

	switch m.view {
	case viewHome:
		return m.updateHome(msg)
	case viewLogin:
		return m.updateLogin(msg)
	case viewSignup:
		return m.updateSignup(msg)
	case viewTasks:
		return m.updateTasks(msg)
	case viewAdmin:
		return m.updateAdmin(msg)
	}
	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewHome:
		body = m.viewHomePage()
	case viewLogin:
		body = m.viewLoginPage()
	case viewSignup:
		body = m.viewSignupPage()
	case viewTasks:
		body = m.viewTasksPage()
	case viewAdmin:
		body = m.viewAdminPage()
	}

	page := lipgloss.JoinVertical(lipgloss.Left, m.header(), body)
	if m.modal != modalNone {
		return m.overlayModal()
	}
	return page
}

func (m appModel) header() string {
	title := styleTitle().Render("Taskdeck")
	who := ""
	if name, ok := m.auth.CurrentUser(); ok {
		who = styleMuted().Render("  user: " + name)
	}
	return title + who + "\n"
}

// errLine picks the error belonging to the current page.
func (m appModel) errLine() string {
	var s string
	switch m.view {
	case viewHome, viewLogin, viewSignup:
		s = m.auth.Err()
	case viewTasks:
		s = m.tasks.Err()
	case viewAdmin:
		s = m.admin.Err()
	}
	if m.flash != "" {
		s = m.flash
	}
	if s == "" {
		return ""
	}
	return styleError().Render(s)
}

func (m appModel) noticeLine() string {
	if m.notice == "" {
		return ""
	}
	return styleMuted().Render(m.notice)
}

func (m appModel) pendingLine() string {
	if !m.pending {
		return ""
	}
	return styleMuted().Render("working…")
}

// ---- commands

func (m appModel) loginCmd(email, password string) tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		return loginDoneMsg{err: auth.Login(context.Background(), email, password)}
	}
}

func (m appModel) signupCmd(draft model.SignupDraft) tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		return signupDoneMsg{err: auth.Signup(context.Background(), draft)}
	}
}

func (m appModel) logoutCmd() tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		return logoutDoneMsg{err: auth.Logout()}
	}
}

func (m appModel) loadTasksCmd() tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		return tasksOpDoneMsg{err: tasks.Load(context.Background())}
	}
}

func (m appModel) createTaskCmd(draft model.TaskDraft) tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		return tasksOpDoneMsg{err: tasks.Create(context.Background(), draft)}
	}
}

func (m appModel) updateTaskCmd(t model.Task) tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		return tasksOpDoneMsg{err: tasks.UpdateFields(context.Background(), t)}
	}
}

func (m appModel) updateStatusCmd(id int64, status string) tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		return tasksOpDoneMsg{err: tasks.UpdateStatus(context.Background(), id, status)}
	}
}

func (m appModel) deleteTaskCmd(id int64) tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		return tasksOpDoneMsg{err: tasks.Delete(context.Background(), id)}
	}
}

func (m appModel) loadAdminCmd() tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		return adminOpDoneMsg{err: admin.Load(context.Background())}
	}
}

func (m appModel) updateUserCmd(u model.User) tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		return adminOpDoneMsg{err: admin.UpdateUser(context.Background(), u)}
	}
}

func (m appModel) updateAdminTaskCmd(t model.Task) tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		return adminOpDoneMsg{err: admin.UpdateTask(context.Background(), t)}
	}
}
