package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"taskdeck-cli/internal/model"
)

func runCLI(t *testing.T, args ...string) (stdout []byte, stderr []byte, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// fakeBackend is an in-memory stand-in for the task-manager REST backend.
type fakeBackend struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]model.Task
	users  map[int64]model.User
	token  string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID: 1,
		tasks:  map[int64]model.Task{},
		users: map[int64]model.User{
			1: {ID: 1, Username: "ada", Email: "ada@example.com", Roles: []string{"USER", "ADMIN"}},
		},
		token: "tok-1",
	}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds model.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" {
			http.Error(w, "Bad credentials", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(model.LoginResult{AccessToken: f.token, Username: "ada"})
	})

	mux.HandleFunc("POST /api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User registered successfully"))
	})

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+f.token {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			h(w, r)
		}
	}

	mux.HandleFunc("GET /api/task/get-all-tasks", authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		page := model.TaskPage{TotalPages: 1, Size: 10}
		for _, t := range f.tasks {
			page.Content = append(page.Content, t)
		}
		page.TotalElements = int64(len(page.Content))
		json.NewEncoder(w).Encode(page)
	}))

	mux.HandleFunc("POST /api/task/create", authed(func(w http.ResponseWriter, r *http.Request) {
		var draft model.TaskDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		t := model.Task{
			ID:          f.nextID,
			Title:       draft.Title,
			Description: draft.Description,
			DueDate:     draft.DueDate,
			Status:      draft.Status,
		}
		f.nextID++
		f.tasks[t.ID] = t
		// The real backend answers task creation as text/plain carrying JSON.
		w.Header().Set("Content-Type", "text/plain")
		b, _ := json.Marshal(t)
		w.Write(b)
	}))

	mux.HandleFunc("PUT /api/task/update/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		t, ok := f.tasks[id]
		if !ok {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if v, ok := patch["status"].(string); ok {
			t.Status = v
		}
		if v, ok := patch["title"].(string); ok {
			t.Title = v
		}
		f.tasks[id] = t
		w.Write([]byte("updated"))
	}))

	mux.HandleFunc("DELETE /api/task/delete-task/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.tasks[id]; !ok {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		delete(f.tasks, id)
		w.Write([]byte("deleted"))
	}))

	mux.HandleFunc("GET /api/admin/users", authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var users []model.User
		for _, u := range f.users {
			users = append(users, u)
		}
		json.NewEncoder(w).Encode(users)
	}))

	mux.HandleFunc("GET /api/admin/tasks", authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		tasks := []model.Task{}
		for _, t := range f.tasks {
			tasks = append(tasks, t)
		}
		json.NewEncoder(w).Encode(tasks)
	}))

	return mux
}

func TestCLISmoke(t *testing.T) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	t.Setenv("TASKDECK_API", srv.URL)

	mustRun := func(args ...string) []byte {
		t.Helper()
		stdout, stderr, err := runCLI(t, args...)
		if err != nil {
			t.Fatalf("command failed: taskdeck %v\nerr: %v\nstderr:\n%s\nstdout:\n%s",
				args, err, stderr, stdout)
		}
		return stdout
	}

	// Not logged in yet.
	if _, _, err := runCLI(t, "tasks", "list"); err == nil {
		t.Fatal("tasks list without a session should fail")
	}

	mustRun("login", "--email", "ada@example.com", "--password", "secret")

	var who map[string]string
	if err := json.Unmarshal(mustRun("whoami"), &who); err != nil {
		t.Fatalf("whoami output: %v", err)
	}
	if who["username"] != "ada" {
		t.Fatalf("whoami = %v, want ada", who)
	}

	var created model.Task
	out := mustRun("tasks", "add",
		"--title", "Buy milk", "--description", "2L", "--due", "2026-09-05")
	if err := json.Unmarshal(out, &created); err != nil {
		t.Fatalf("tasks add output: %v\n%s", err, out)
	}
	if created.ID == 0 || created.Status != model.StatusTodo {
		t.Fatalf("created = %+v, want backend id and TODO default", created)
	}

	var listed []model.Task
	if err := json.Unmarshal(mustRun("tasks", "list"), &listed); err != nil {
		t.Fatalf("tasks list output: %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "Buy milk" {
		t.Fatalf("listed = %+v", listed)
	}

	idArg := strconv.FormatInt(created.ID, 10)
	mustRun("tasks", "set-status", idArg, "complete")
	if err := json.Unmarshal(mustRun("tasks", "list"), &listed); err != nil {
		t.Fatalf("tasks list output: %v", err)
	}
	if listed[0].Status != model.StatusComplete {
		t.Fatalf("status = %q, want %q", listed[0].Status, model.StatusComplete)
	}

	var users []model.User
	if err := json.Unmarshal(mustRun("admin", "users", "list"), &users); err != nil {
		t.Fatalf("admin users list output: %v", err)
	}
	if len(users) != 1 || users[0].Username != "ada" {
		t.Fatalf("users = %+v", users)
	}

	mustRun("tasks", "delete", idArg)
	if err := json.Unmarshal(mustRun("tasks", "list"), &listed); err != nil {
		t.Fatalf("tasks list output: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("listed after delete = %+v", listed)
	}

	// Deleting the same id again hits the backend's 404, reported as the
	// CLI's own not-found message.
	_, stderr, err := runCLI(t, "tasks", "delete", idArg)
	if err == nil {
		t.Fatal("deleting an already-removed task should fail")
	}
	if !strings.Contains(string(stderr), "task not found") {
		t.Fatalf("stderr = %q, want a task not found message", stderr)
	}

	mustRun("logout")
	if _, _, err := runCLI(t, "whoami"); err == nil {
		t.Fatal("whoami after logout should fail")
	}
}

func TestCLIDocs(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())

	out, _, err := runCLI(t, "docs", "--plain")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	if !strings.Contains(string(out), "# Getting started") {
		t.Fatalf("docs output missing default topic:\n%s", out)
	}

	if _, _, err := runCLI(t, "docs", "no-such-topic"); err == nil {
		t.Fatal("unknown topic should fail")
	}
}

func TestCLIConfigReportsSource(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	t.Setenv("TASKDECK_API", "http://example.test:9000")

	out, _, err := runCLI(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	var cfg map[string]any
	if err := json.Unmarshal(out, &cfg); err != nil {
		t.Fatalf("config output: %v\n%s", err, out)
	}
	if cfg["apiBase"] != "http://example.test:9000" || cfg["apiBaseSource"] != "env" {
		t.Fatalf("config = %v", cfg)
	}
}
