package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"taskdeck-cli/internal/docs"
)

func newDocsCmd(app *App) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:       "docs [topic]",
		Short:     "Show built-in documentation",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: docs.Topics(),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := docs.DefaultTopic
			if len(args) == 1 {
				topic = args[0]
			}
			src, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, errNotFound("docs topic", topic))
			}
			if plain {
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(src, "\n"))
				return nil
			}
			out, err := renderDocs(src)
			if err != nil {
				// Fall back to the raw markdown rather than failing the
				// command over rendering.
				out = src
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print raw markdown without styling")

	topics := &cobra.Command{
		Use:   "topics",
		Short: "List documentation topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			type topicRow struct {
				Topic string `json:"topic"`
				Title string `json:"title"`
			}
			rows := make([]topicRow, 0, len(docs.Topics()))
			for _, t := range docs.Topics() {
				rows = append(rows, topicRow{Topic: t, Title: docs.Title(t)})
			}
			return writeOut(cmd, app, rows)
		},
	}
	cmd.AddCommand(topics)

	return cmd
}

func renderDocs(src string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(src)
}
