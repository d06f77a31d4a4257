package viewmodel

import (
	"context"
	"strings"
	"sync"

	"taskdeck-cli/internal/model"
)

// AdminBackend is the slice of the API client the admin dashboard needs.
type AdminBackend interface {
	AdminUsers(ctx context.Context) ([]model.User, error)
	AdminUpdateUser(ctx context.Context, u model.User) error
	AdminTasks(ctx context.Context) ([]model.Task, error)
	AdminUpdateTask(ctx context.Context, t model.Task) error
}

// Admin is the admin dashboard's view-model: independent users and tasks
// collections, with whole-record updates only. This surface has no create or
// delete.
type Admin struct {
	api AdminBackend

	mu    sync.Mutex
	users []model.User
	tasks []model.Task
	busy  bool
	err   string
}

// NewAdmin returns an empty admin view-model backed by api.
func NewAdmin(api AdminBackend) *Admin {
	return &Admin{api: api}
}

// Users returns a copy of the users collection.
func (a *Admin) Users() []model.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.User, len(a.users))
	copy(out, a.users)
	return out
}

// Tasks returns a copy of the tasks collection.
func (a *Admin) Tasks() []model.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.Task, len(a.tasks))
	copy(out, a.tasks)
	return out
}

// Err returns the page-local error message.
func (a *Admin) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Busy reports whether an operation is in flight.
func (a *Admin) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

// Load fetches both collections. A failed fetch keeps that collection's
// previous contents and records the error, but does not stop the other fetch
// (the dashboard shows whatever it could get).
func (a *Admin) Load(ctx context.Context) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	var firstErr error

	users, err := a.api.AdminUsers(ctx)
	if err != nil {
		firstErr = err
	} else {
		a.mu.Lock()
		a.users = append([]model.User(nil), users...)
		a.mu.Unlock()
	}

	tasks, err := a.api.AdminTasks(ctx)
	if err != nil {
		if firstErr == nil {
			firstErr = err
		}
	} else {
		a.mu.Lock()
		a.tasks = append([]model.Task(nil), tasks...)
		a.mu.Unlock()
	}

	if firstErr != nil {
		return a.fail(firstErr)
	}
	return a.ok()
}

// UpdateUser replaces the whole user record on the backend and, on success,
// the matching local entry.
func (a *Admin) UpdateUser(ctx context.Context, u model.User) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	if err := a.api.AdminUpdateUser(ctx, u); err != nil {
		return a.fail(err)
	}

	a.mu.Lock()
	for i := range a.users {
		if a.users[i].ID == u.ID {
			a.users[i] = u
		}
	}
	a.mu.Unlock()
	return a.ok()
}

// UpdateTask replaces the whole task record on the backend and, on success,
// the matching local entry. Admin task statuses are freeform strings; no
// vocabulary is enforced here.
func (a *Admin) UpdateTask(ctx context.Context, t model.Task) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	if err := a.api.AdminUpdateTask(ctx, t); err != nil {
		return a.fail(err)
	}

	a.mu.Lock()
	for i := range a.tasks {
		if a.tasks[i].ID == t.ID {
			a.tasks[i] = t
		}
	}
	a.mu.Unlock()
	return a.ok()
}

func (a *Admin) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.busy {
		return ErrBusy
	}
	a.busy = true
	return nil
}

func (a *Admin) end() {
	a.mu.Lock()
	a.busy = false
	a.mu.Unlock()
}

func (a *Admin) fail(err error) error {
	a.mu.Lock()
	a.err = err.Error()
	a.mu.Unlock()
	return err
}

func (a *Admin) ok() error {
	a.mu.Lock()
	a.err = ""
	a.mu.Unlock()
	return nil
}

// JoinRoles renders a roles set for display, comma-joined the way the admin
// table shows it.
func JoinRoles(roles []string) string {
	return strings.Join(roles, ", ")
}

// SplitRoles parses an edited comma-joined roles string back into a set,
// dropping empty segments.
func SplitRoles(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
