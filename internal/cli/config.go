package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"taskdeck-cli/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective client configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			apiBase := cfg.APIBase
			source := "default"
			if cfg.File != "" {
				source = "file"
			}
			if envOr("TASKDECK_API", "") != "" {
				source = "env"
			}
			if v := strings.TrimSpace(app.APIBase); v != "" && v != envOr("TASKDECK_API", "") {
				apiBase = strings.TrimRight(v, "/")
				source = "flag"
			}
			return writeOut(cmd, app, map[string]any{
				"apiBase":        apiBase,
				"apiBaseSource":  source,
				"timeoutSeconds": cfg.TimeoutSeconds,
				"configFile":     cfg.File,
			})
		},
	}
}
