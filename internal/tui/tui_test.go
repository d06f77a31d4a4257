package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/session"
)

// stubBackend satisfies Backend with canned responses and per-operation
// fault injection.
type stubBackend struct {
	createErr error
	updateErr error
	deleteErr error
}

func (s *stubBackend) Login(ctx context.Context, creds model.Credentials) (model.LoginResult, error) {
	return model.LoginResult{AccessToken: "tok", Username: "ada"}, nil
}

func (s *stubBackend) Signup(ctx context.Context, draft model.SignupDraft) error { return nil }

func (s *stubBackend) Tasks(ctx context.Context) (model.TaskPage, error) {
	return model.TaskPage{}, nil
}

func (s *stubBackend) CreateTask(ctx context.Context, d model.TaskDraft) (model.Task, error) {
	if s.createErr != nil {
		return model.Task{}, s.createErr
	}
	return model.Task{ID: 1, Title: d.Title, Description: d.Description, DueDate: d.DueDate, Status: d.Status}, nil
}

func (s *stubBackend) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	return s.updateErr
}

func (s *stubBackend) UpdateTask(ctx context.Context, t model.Task) error { return s.updateErr }

func (s *stubBackend) DeleteTask(ctx context.Context, id int64) error { return s.deleteErr }

func (s *stubBackend) AdminUsers(ctx context.Context) ([]model.User, error) { return nil, nil }

func (s *stubBackend) AdminUpdateUser(ctx context.Context, u model.User) error { return s.updateErr }

func (s *stubBackend) AdminTasks(ctx context.Context) ([]model.Task, error) { return nil, nil }

func (s *stubBackend) AdminUpdateTask(ctx context.Context, t model.Task) error { return s.updateErr }

func TestModalWidthBounds(t *testing.T) {
	tests := []struct {
		screenW int
		want    int
	}{
		{screenW: 200, want: 64},
		{screenW: 80, want: 64},
		{screenW: 40, want: 32},
		{screenW: 10, want: 24},
		{screenW: 0, want: 24},
	}
	for _, tt := range tests {
		if got := modalWidth(tt.screenW); got != tt.want {
			t.Fatalf("modalWidth(%d) = %d, want %d", tt.screenW, got, tt.want)
		}
	}
}

func TestRenderInputLineSingleLine(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	got := renderInputLine(30, "hello\nworld\r!")
	if strings.ContainsAny(got, "\n\r") {
		t.Fatalf("input line contains line breaks: %q", got)
	}
}

func TestRenderInputLineClampsWidth(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	long := strings.Repeat("x", 100)
	got := renderInputLine(20, long)
	if w := xansi.StringWidth(got); w > 20 {
		t.Fatalf("input line width = %d, want <= 20", w)
	}
}

func TestTaskColumnsFillWidth(t *testing.T) {
	for _, width := range []int{40, 80, 120} {
		cols := taskColumns(width)
		if len(cols) != 5 {
			t.Fatalf("taskColumns(%d) returned %d columns", width, len(cols))
		}
		if cols[0].Title != "S.No" {
			t.Fatalf("first column = %q, want S.No", cols[0].Title)
		}
		for _, c := range cols {
			if c.Width <= 0 {
				t.Fatalf("taskColumns(%d): column %q has width %d", width, c.Title, c.Width)
			}
		}
	}
}

func TestTasksPageSetRows(t *testing.T) {
	s := newTasksPageState()
	s.setRows([]model.Task{
		{ID: 7, Title: "Buy milk", Description: "2L", DueDate: "2026-09-05", Status: "TODO"},
		{ID: 9, Title: "Ship it", Description: "", DueDate: "2026-09-06", Status: "COMPLETE"},
	})

	rows := s.tbl.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Serial numbers are positional, not backend ids.
	if rows[0][0] != "1" || rows[1][0] != "2" {
		t.Fatalf("serial column = %q, %q; want 1, 2", rows[0][0], rows[1][0])
	}
	if rows[1][1] != "Ship it" {
		t.Fatalf("title column = %q, want Ship it", rows[1][1])
	}

	sel, ok := s.selected()
	if !ok || sel.ID != 7 {
		t.Fatalf("selected() = %+v, %v; want task 7", sel, ok)
	}
}

func TestTasksPageCursorClampsAfterShrink(t *testing.T) {
	s := newTasksPageState()
	s.setRows([]model.Task{{ID: 1}, {ID: 2}, {ID: 3}})
	s.tbl.SetCursor(2)

	s.setRows([]model.Task{{ID: 1}})
	sel, ok := s.selected()
	if !ok || sel.ID != 1 {
		t.Fatalf("selected() after shrink = %+v, %v; want task 1", sel, ok)
	}
}

func TestTaskFormRoundTrip(t *testing.T) {
	f := taskFormFrom(model.Task{
		ID:          42,
		Title:       "Buy milk",
		Description: "2L whole",
		DueDate:     "2026-09-05",
		Status:      "INPROGRESS",
	})
	d := f.draft()
	if d.Title != "Buy milk" || d.Description != "2L whole" || d.DueDate != "2026-09-05" {
		t.Fatalf("draft = %+v", d)
	}
	if d.Status != "INPROGRESS" {
		t.Fatalf("draft status = %q, want INPROGRESS", d.Status)
	}
	if f.editingID != 42 {
		t.Fatalf("editingID = %d, want 42", f.editingID)
	}
}

func TestNewTaskFormDefaultsToTodo(t *testing.T) {
	f := newTaskForm()
	if got := f.draft().Status; got != model.StatusTodo {
		t.Fatalf("default status = %q, want %q", got, model.StatusTodo)
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if got := renderMarkdown("   ", 40); got != "" {
		t.Fatalf("renderMarkdown(blank) = %q, want empty", got)
	}
}

func TestAddTaskModalShowsBackendError(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	be := &stubBackend{createErr: errors.New("backend returned 500: boom")}
	m := newAppModel(Deps{Client: be, Session: &session.MemoryStore{}})
	m.view = viewTasks
	m.modal = modalAddTask
	m.taskspg.form = newTaskForm()

	cmd := m.createTaskCmd(model.TaskDraft{
		Title: "a", Description: "b", DueDate: "2026-09-05", Status: model.StatusTodo,
	})
	next, _ := m.Update(cmd())
	got := next.(appModel)

	if got.modal != modalAddTask {
		t.Fatal("modal should stay open after a failed save")
	}
	if view := got.View(); !strings.Contains(view, "boom") {
		t.Fatalf("view does not surface the backend error:\n%s", view)
	}
}

func TestDeleteConfirmModalShowsBackendError(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	be := &stubBackend{deleteErr: errors.New("backend returned 404: no such task")}
	m := newAppModel(Deps{Client: be, Session: &session.MemoryStore{}})
	m.view = viewTasks
	m.modal = modalConfirmDelete
	m.taskspg.deleteID = 9

	next, _ := m.Update(m.deleteTaskCmd(9)())
	got := next.(appModel)

	if got.modal != modalConfirmDelete {
		t.Fatal("confirm modal should stay open after a failed delete")
	}
	if view := got.View(); !strings.Contains(view, "no such task") {
		t.Fatalf("view does not surface the backend error:\n%s", view)
	}
}

func TestSignupSuccessShowsNoticeNotError(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	m := newAppModel(Deps{Client: &stubBackend{}, Session: &session.MemoryStore{}})
	m.view = viewSignup

	next, _ := m.Update(signupDoneMsg{})
	got := next.(appModel)

	if got.view != viewLogin {
		t.Fatalf("view = %d, want login", got.view)
	}
	if e := got.errLine(); e != "" {
		t.Fatalf("confirmation rendered on the error line: %q", e)
	}
	if view := got.View(); !strings.Contains(view, "Account created") {
		t.Fatalf("login page missing the confirmation notice:\n%s", view)
	}
}

func TestApplyThemePreferenceEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"explicit light", map[string]string{"TASKDECK_TUI_THEME": "light"}, false},
		{"explicit dark", map[string]string{"TASKDECK_TUI_THEME": "dark"}, true},
		{"darkbg flag", map[string]string{"TASKDECK_TUI_DARKBG": "true"}, true},
		{"colorfgbg dark", map[string]string{"COLORFGBG": "15;0"}, true},
		{"colorfgbg light", map[string]string{"COLORFGBG": "0;15"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"TASKDECK_TUI_THEME", "TASKDECK_TUI_DARKBG", "COLORFGBG"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			applyThemePreference()
			if got := lipgloss.HasDarkBackground(); got != tt.want {
				t.Fatalf("dark background = %v, want %v", got, tt.want)
			}
		})
	}
}
