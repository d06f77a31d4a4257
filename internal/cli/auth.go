package cli

import (
	"github.com/spf13/cobra"

	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/session"
)

func newLoginCmd(app *App) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := newAuthenticator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := auth.Login(cmd.Context(), email, password); err != nil {
				return writeErr(cmd, err)
			}
			username, _ := auth.CurrentUser()
			return writeOut(cmd, app, map[string]string{"username": username, "status": "logged in"})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newSignupCmd(app *App) *cobra.Command {
	var username string
	var email string
	var password string
	var roles []string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account (does not log in)",
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := newAuthenticator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			draft := model.SignupDraft{
				Username: username,
				Email:    email,
				Roles:    roles,
				Password: password,
			}
			if err := auth.Signup(cmd.Context(), draft); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"status": "signed up", "username": username})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringSliceVar(&roles, "roles", []string{"user"}, "Roles for the new account")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := newAuthenticator(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := auth.Logout(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"status": "logged out"})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session's username",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := session.Open()
			if err != nil {
				return writeErr(cmd, err)
			}
			s, ok := st.Current()
			if !ok {
				return writeErr(cmd, errNotLoggedIn())
			}
			return writeOut(cmd, app, map[string]string{"username": s.Username})
		},
	}
}

// currentSession guards commands that need a stored token up front, so the
// user gets a clear message instead of a backend 401 for the common case.
// The token itself is still only validated by the backend.
func currentSession() (session.Session, error) {
	st, err := session.Open()
	if err != nil {
		return session.Session{}, err
	}
	s, ok := st.Current()
	if !ok {
		return session.Session{}, errNotLoggedIn()
	}
	return s, nil
}
