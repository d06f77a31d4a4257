package cli

import (
	"github.com/spf13/cobra"

	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/viewmodel"
)

func newAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands (privileged)",
	}

	users := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}
	users.AddCommand(newAdminUsersListCmd(app))
	users.AddCommand(newAdminUsersUpdateCmd(app))

	tasks := &cobra.Command{
		Use:   "tasks",
		Short: "Manage all tasks",
	}
	tasks.AddCommand(newAdminTasksListCmd(app))
	tasks.AddCommand(newAdminTasksUpdateCmd(app))

	cmd.AddCommand(users)
	cmd.AddCommand(tasks)
	return cmd
}

func newAdminUsersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := currentSession(); err != nil {
				return writeErr(cmd, err)
			}
			admin, err := newAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := admin.Load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, admin.Users())
		},
	}
}

func newAdminUsersUpdateCmd(app *App) *cobra.Command {
	var username string
	var email string
	var password string
	var roles string

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Replace a user record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := currentSession(); err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, errNotFound("user", args[0]))
			}
			admin, err := newAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := admin.Load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			var user model.User
			found := false
			for _, u := range admin.Users() {
				if u.ID == id {
					user = u
					found = true
					break
				}
			}
			if !found {
				return writeErr(cmd, errNotFound("user", args[0]))
			}

			if cmd.Flags().Changed("username") {
				user.Username = username
			}
			if cmd.Flags().Changed("email") {
				user.Email = email
			}
			if cmd.Flags().Changed("password") {
				user.Password = password
			}
			if cmd.Flags().Changed("roles") {
				user.Roles = viewmodel.SplitRoles(roles)
			}

			if err := admin.UpdateUser(cmd.Context(), user); err != nil {
				return writeErr(cmd, mapBackendNotFound(err, "user", args[0]))
			}
			// Never echo a freshly set password back out.
			user.Password = ""
			return writeOut(cmd, app, user)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "New username")
	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&password, "password", "", "New password")
	cmd.Flags().StringVar(&roles, "roles", "", "New roles, comma-separated")
	return cmd
}

func newAdminTasksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks across users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := currentSession(); err != nil {
				return writeErr(cmd, err)
			}
			admin, err := newAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := admin.Load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, admin.Tasks())
		},
	}
}

func newAdminTasksUpdateCmd(app *App) *cobra.Command {
	var title string
	var description string
	var due string
	var status string

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Replace a task record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := currentSession(); err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			admin, err := newAdmin(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := admin.Load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			var task model.Task
			found := false
			for _, t := range admin.Tasks() {
				if t.ID == id {
					task = t
					found = true
					break
				}
			}
			if !found {
				return writeErr(cmd, errNotFound("task", args[0]))
			}

			if cmd.Flags().Changed("title") {
				task.Title = title
			}
			if cmd.Flags().Changed("description") {
				task.Description = description
			}
			if cmd.Flags().Changed("due") {
				task.DueDate = due
			}
			if cmd.Flags().Changed("status") {
				// Admin statuses are freeform; the backend owns the vocabulary.
				task.Status = status
			}

			if err := admin.UpdateTask(cmd.Context(), task); err != nil {
				return writeErr(cmd, mapBackendNotFound(err, "task", args[0]))
			}
			return writeOut(cmd, app, task)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "New status (freeform, e.g. Pending | In Progress | Completed)")
	return cmd
}
