package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/viewmodel"
)

type loginState struct {
	inputs [2]textinput.Model // email, password
	focus  int
}

func newLoginState() loginState {
	var s loginState
	s.inputs[0] = newFormInput("email", 0)
	s.inputs[1] = newFormInput("password", 0)
	s.inputs[1].EchoMode = textinput.EchoPassword
	s.inputs[0].Focus()
	return s
}

type signupState struct {
	// username, email, password, roles
	inputs [4]textinput.Model
	focus  int
}

func newSignupState() signupState {
	var s signupState
	s.inputs[0] = newFormInput("username", 0)
	s.inputs[1] = newFormInput("email", 0)
	s.inputs[2] = newFormInput("password", 0)
	s.inputs[2].EchoMode = textinput.EchoPassword
	s.inputs[3] = newFormInput("roles (comma separated)", 0)
	s.inputs[3].SetValue("USER")
	s.inputs[0].Focus()
	return s
}

func newFormInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	if width > 0 {
		ti.Width = width
	} else {
		ti.Width = 40
	}
	return ti
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.flash = ""
			m.notice = ""
			m.login = newLoginState()
			m.view = viewHome
			return m, nil
		case "tab", "down":
			m.login.focus = (m.login.focus + 1) % len(m.login.inputs)
			focusInputs(m.login.inputs[:], m.login.focus)
			return m, nil
		case "shift+tab", "up":
			m.login.focus = (m.login.focus + len(m.login.inputs) - 1) % len(m.login.inputs)
			focusInputs(m.login.inputs[:], m.login.focus)
			return m, nil
		case "enter":
			if m.pending {
				return m, nil
			}
			email := strings.TrimSpace(m.login.inputs[0].Value())
			password := m.login.inputs[1].Value()
			if email == "" || password == "" {
				m.flash = "Email and password are required."
				return m, nil
			}
			m.flash = ""
			m.notice = ""
			m.pending = true
			return m, m.loginCmd(email, password)
		}
	}
	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) viewLoginPage() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Log in") + "\n\n")
	labels := []string{"Email", "Password"}
	for i, in := range m.login.inputs {
		b.WriteString(formLabel(labels[i], i == m.login.focus))
		b.WriteString(in.View() + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("tab next field · enter submit · esc back"))
	if n := m.noticeLine(); n != "" {
		b.WriteString("\n\n" + n)
	}
	if s := m.pendingLine(); s != "" {
		b.WriteString("\n\n" + s)
	}
	if e := m.errLine(); e != "" {
		b.WriteString("\n\n" + e)
	}
	return b.String()
}

func (m appModel) updateSignup(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.flash = ""
			m.signup = newSignupState()
			m.view = viewHome
			return m, nil
		case "tab", "down":
			m.signup.focus = (m.signup.focus + 1) % len(m.signup.inputs)
			focusInputs(m.signup.inputs[:], m.signup.focus)
			return m, nil
		case "shift+tab", "up":
			m.signup.focus = (m.signup.focus + len(m.signup.inputs) - 1) % len(m.signup.inputs)
			focusInputs(m.signup.inputs[:], m.signup.focus)
			return m, nil
		case "enter":
			if m.pending {
				return m, nil
			}
			draft := model.SignupDraft{
				Username: strings.TrimSpace(m.signup.inputs[0].Value()),
				Email:    strings.TrimSpace(m.signup.inputs[1].Value()),
				Password: m.signup.inputs[2].Value(),
				Roles:    viewmodel.SplitRoles(m.signup.inputs[3].Value()),
			}
			if draft.Username == "" || draft.Email == "" || draft.Password == "" {
				m.flash = "Username, email and password are required."
				return m, nil
			}
			m.flash = ""
			m.pending = true
			return m, m.signupCmd(draft)
		}
	}
	var cmd tea.Cmd
	m.signup.inputs[m.signup.focus], cmd = m.signup.inputs[m.signup.focus].Update(msg)
	return m, cmd
}

func (m appModel) viewSignupPage() string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Sign up") + "\n\n")
	labels := []string{"Username", "Email", "Password", "Roles"}
	for i, in := range m.signup.inputs {
		b.WriteString(formLabel(labels[i], i == m.signup.focus))
		b.WriteString(in.View() + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("tab next field · enter submit · esc back"))
	if s := m.pendingLine(); s != "" {
		b.WriteString("\n\n" + s)
	}
	if e := m.errLine(); e != "" {
		b.WriteString("\n\n" + e)
	}
	return b.String()
}

func focusInputs(inputs []textinput.Model, focus int) {
	for i := range inputs {
		if i == focus {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}

func formLabel(label string, focused bool) string {
	if focused {
		return styleTitle().Render(label) + "\n"
	}
	return styleMuted().Render(label) + "\n"
}
