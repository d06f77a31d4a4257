// Package viewmodel holds the in-memory representations and mutation
// operations the pages use to interact with backend-owned entities.
//
// Every view-model depends on a narrow backend interface rather than the
// concrete API client, so tests can inject fakes and fault injection is
// deterministic. Collections are caches of the last-known server response:
// they are only mutated after the backend confirms success, and a failed
// operation leaves them untouched.
package viewmodel

import (
	"context"
	"errors"
	"strings"
	"sync"

	"taskdeck-cli/internal/model"
)

// ErrBusy is returned when an operation is rejected because another one is
// still in flight on the same view-model. This is the client-side guard
// against duplicate submissions from a rapid double press.
var ErrBusy = errors.New("another operation is already in flight")

// ErrMissingFields is the local validation failure for task creation. It is
// raised before any network call.
var ErrMissingFields = errors.New("title, description, due date and status are all required")

// ErrInvalidStatus is the local validation failure for a status change that
// is not in the task-surface vocabulary. Raised before any network call.
var ErrInvalidStatus = errors.New("status must be one of " + strings.Join(model.StatusOptions(), ", "))

// TaskBackend is the slice of the API client the task list needs.
type TaskBackend interface {
	Tasks(ctx context.Context) (model.TaskPage, error)
	CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error)
	UpdateTaskStatus(ctx context.Context, id int64, status string) error
	UpdateTask(ctx context.Context, t model.Task) error
	DeleteTask(ctx context.Context, id int64) error
}

// TaskList is the user dashboard's view-model: the current user's tasks plus
// the page-local error line.
type TaskList struct {
	api TaskBackend

	mu    sync.Mutex
	tasks []model.Task
	busy  bool
	err   string
}

// NewTaskList returns an empty task list backed by api.
func NewTaskList(api TaskBackend) *TaskList {
	return &TaskList{api: api}
}

// Tasks returns a copy of the current list.
func (l *TaskList) Tasks() []model.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Err returns the current page-local error message, empty when the last
// operation succeeded.
func (l *TaskList) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Busy reports whether an operation is in flight.
func (l *TaskList) Busy() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.busy
}

// Load fetches the first page of the user's tasks and replaces the list
// wholesale. On failure the previous list is left intact.
func (l *TaskList) Load(ctx context.Context) error {
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	page, err := l.api.Tasks(ctx)
	if err != nil {
		return l.fail(err)
	}

	l.mu.Lock()
	l.tasks = append([]model.Task(nil), page.Content...)
	l.mu.Unlock()
	return l.ok()
}

// Create validates the draft locally, then creates it on the backend and
// appends the server-returned task (with its assigned id) to the list.
func (l *TaskList) Create(ctx context.Context, draft model.TaskDraft) error {
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	if strings.TrimSpace(draft.Title) == "" ||
		strings.TrimSpace(draft.Description) == "" ||
		strings.TrimSpace(draft.DueDate) == "" ||
		strings.TrimSpace(draft.Status) == "" {
		return l.fail(ErrMissingFields)
	}

	created, err := l.api.CreateTask(ctx, draft)
	if err != nil {
		return l.fail(err)
	}

	l.mu.Lock()
	l.tasks = append(l.tasks, created)
	l.mu.Unlock()
	return l.ok()
}

// UpdateStatus sends only the new status and, on success, patches the status
// field of the matching local task. No refetch.
func (l *TaskList) UpdateStatus(ctx context.Context, id int64, status string) error {
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	if !model.ValidStatus(status) {
		return l.fail(ErrInvalidStatus)
	}

	if err := l.api.UpdateTaskStatus(ctx, id, status); err != nil {
		return l.fail(err)
	}

	l.mu.Lock()
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks[i].Status = status
		}
	}
	l.mu.Unlock()
	return l.ok()
}

// UpdateFields sends the full task and, on success, replaces the matching
// local entry by id.
func (l *TaskList) UpdateFields(ctx context.Context, t model.Task) error {
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	if err := l.api.UpdateTask(ctx, t); err != nil {
		return l.fail(err)
	}

	l.mu.Lock()
	for i := range l.tasks {
		if l.tasks[i].ID == t.ID {
			l.tasks[i] = t
		}
	}
	l.mu.Unlock()
	return l.ok()
}

// Delete removes the task on the backend and, on success, drops the matching
// entry. A failed delete (including "not found") leaves the list unchanged.
func (l *TaskList) Delete(ctx context.Context, id int64) error {
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	if err := l.api.DeleteTask(ctx, id); err != nil {
		return l.fail(err)
	}

	l.mu.Lock()
	kept := l.tasks[:0]
	for _, t := range l.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	l.tasks = kept
	l.mu.Unlock()
	return l.ok()
}

func (l *TaskList) begin() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy {
		return ErrBusy
	}
	l.busy = true
	return nil
}

func (l *TaskList) end() {
	l.mu.Lock()
	l.busy = false
	l.mu.Unlock()
}

func (l *TaskList) fail(err error) error {
	l.mu.Lock()
	l.err = err.Error()
	l.mu.Unlock()
	return err
}

func (l *TaskList) ok() error {
	l.mu.Lock()
	l.err = ""
	l.mu.Unlock()
	return nil
}
