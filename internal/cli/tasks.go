package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck-cli/internal/model"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands (current user)",
	}

	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksSetStatusCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))

	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the current user's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := currentSession(); err != nil {
				return writeErr(cmd, err)
			}
			list, err := newTaskList(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := list.Load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, list.Tasks())
		},
	}
}

func newTasksAddCmd(app *App) *cobra.Command {
	var title string
	var description string
	var due string
	var status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := currentSession(); err != nil {
				return writeErr(cmd, err)
			}
			normalized, err := model.NormalizeStatus(status)
			if err != nil {
				return writeErr(cmd, err)
			}
			list, err := newTaskList(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			draft := model.TaskDraft{
				Title:       title,
				Description: description,
				DueDate:     due,
				Status:      normalized,
			}
			if err := list.Create(cmd.Context(), draft); err != nil {
				return writeErr(cmd, err)
			}
			created := list.Tasks()
			return writeOut(cmd, app, created[len(created)-1])
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", model.StatusTodo, "Status (TODO|PENDING|INPROGRESS|COMPLETE)")
	return cmd
}

func newTasksSetStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <task-id> <status>",
		Short: "Change a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := currentSession(); err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			status, err := model.NormalizeStatus(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			list, err := newTaskList(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := list.UpdateStatus(cmd.Context(), id, status); err != nil {
				return writeErr(cmd, mapBackendNotFound(err, "task", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"id": id, "status": status})
		},
	}
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var title string
	var description string
	var due string
	var status string

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := currentSession(); err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			list, err := newTaskList(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			// The update endpoint takes a full record, so fetch the current
			// copy and overlay only the flags the user passed.
			if err := list.Load(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			var task model.Task
			found := false
			for _, t := range list.Tasks() {
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
				normalized, err := model.NormalizeStatus(status)
				if err != nil {
					return writeErr(cmd, err)
				}
				task.Status = normalized
			}

			if err := list.UpdateFields(cmd.Context(), task); err != nil {
				return writeErr(cmd, mapBackendNotFound(err, "task", args[0]))
			}
			return writeOut(cmd, app, task)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := currentSession(); err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			list, err := newTaskList(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := list.Delete(cmd.Context(), id); err != nil {
				return writeErr(cmd, mapBackendNotFound(err, "task", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"id": id, "status": "deleted"})
		},
	}
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errNotFound("task", s)
	}
	return id, nil
}
