package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck-cli/internal/api"
	"taskdeck-cli/internal/config"
	"taskdeck-cli/internal/format"
	"taskdeck-cli/internal/session"
	"taskdeck-cli/internal/tui"
	"taskdeck-cli/internal/viewmodel"
)

type App struct {
	APIBase    string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskdeck",
		Short:        "Taskdeck — terminal client for the task-manager backend (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  taskdeck

  # Scriptable commands
  taskdeck login --email you@example.com --password secret
  taskdeck tasks list
  taskdeck tasks add --title "Buy milk" --description "2%" --due 2024-01-01
  taskdeck tasks set-status 7 COMPLETE
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIBase, "api", envOr("TASKDECK_API", ""), "Backend base URL (overrides config file; default http://localhost:8011)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newSignupCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newAdminCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	client, st, err := newClient(app)
	if err != nil {
		return err
	}
	return tui.Run(tui.Deps{
		Client:  client,
		Session: st,
	})
}

// newClient resolves config and wires the session-backed API client.
func newClient(app *App) (*api.Client, session.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if v := strings.TrimSpace(app.APIBase); v != "" {
		cfg.APIBase = strings.TrimRight(v, "/")
	}
	st, err := session.Open()
	if err != nil {
		return nil, nil, err
	}
	return api.New(cfg.APIBase, cfg.Timeout(), st), st, nil
}

func newTaskList(app *App) (*viewmodel.TaskList, error) {
	client, _, err := newClient(app)
	if err != nil {
		return nil, err
	}
	return viewmodel.NewTaskList(client), nil
}

func newAdmin(app *App) (*viewmodel.Admin, error) {
	client, _, err := newClient(app)
	if err != nil {
		return nil, err
	}
	return viewmodel.NewAdmin(client), nil
}

func newAuthenticator(app *App) (*viewmodel.Authenticator, error) {
	client, st, err := newClient(app)
	if err != nil {
		return nil, err
	}
	return viewmodel.NewAuthenticator(client, st), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
