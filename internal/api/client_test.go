package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	st := &session.MemoryStore{}
	return New(srv.URL, 0, st), st
}

func TestLogin_NoBearerHeader(t *testing.T) {
	c, st := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("login must not send Authorization, got %q", got)
		}
		var creds model.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if creds.Email != "a@example.com" || creds.Password != "pw" {
			t.Errorf("unexpected credentials: %+v", creds)
		}
		json.NewEncoder(w).Encode(model.LoginResult{AccessToken: "tok", Username: "alice"})
	}))
	// A stale session must not leak into the login request.
	st.Set(session.Session{Token: "stale", Username: "old"})

	res, err := c.Login(context.Background(), model.Credentials{Email: "a@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.AccessToken != "tok" || res.Username != "alice" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestLogin_HTTPFailureCarriesBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bad credentials", http.StatusUnauthorized)
	}))

	_, err := c.Login(context.Background(), model.Credentials{Email: "a@example.com", Password: "nope"})
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if he.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", he.StatusCode)
	}
	if want := "backend returned 401: Bad credentials"; he.Error() != want {
		t.Fatalf("expected %q, got %q", want, he.Error())
	}
}

func TestTasks_AttachesBearerAndKeepsFirstPageOnly(t *testing.T) {
	c, st := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer header, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content":       []model.Task{{ID: 1, Title: "one"}, {ID: 2, Title: "two"}},
			"totalElements": 41,
			"totalPages":    3,
			"number":        0,
			"size":          20,
		})
	}))
	st.Set(session.Session{Token: "tok", Username: "alice"})

	page, err := c.Tasks(context.Background())
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(page.Content) != 2 || page.TotalPages != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestTasks_NoSessionSendsNoHeader(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no Authorization header, got %q", got)
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))

	_, err := c.Tasks(context.Background())
	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 *HTTPError, got %v", err)
	}
}

func TestCreateTask_ParsesTextBody(t *testing.T) {
	c, st := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/task/create" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		// Plain text content type with a JSON payload, as observed in the wild.
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`{"id": 7, "title": "Buy milk", "description": "2%", "dueDate": "2024-01-01", "status": "TODO"}`))
	}))
	st.Set(session.Session{Token: "tok", Username: "alice"})

	task, err := c.CreateTask(context.Background(), model.TaskDraft{
		Title: "Buy milk", Description: "2%", DueDate: "2024-01-01", Status: model.StatusTodo,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.ID != 7 || task.Title != "Buy milk" {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestCreateTask_MalformedSuccessBody(t *testing.T) {
	c, st := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Task created successfully"))
	}))
	st.Set(session.Session{Token: "tok", Username: "alice"})

	_, err := c.CreateTask(context.Background(), model.TaskDraft{Title: "t", Description: "d", DueDate: "2024-01-01", Status: model.StatusTodo})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if de.Body != "Task created successfully" {
		t.Fatalf("expected original body preserved, got %q", de.Body)
	}
}

func TestUpdateTaskStatus_SendsOnlyStatus(t *testing.T) {
	c, st := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/task/update/9" || r.Method != http.MethodPut {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(body) != 1 || body["status"] != "COMPLETE" {
			t.Errorf("expected {status: COMPLETE}, got %v", body)
		}
	}))
	st.Set(session.Session{Token: "tok", Username: "alice"})

	if err := c.UpdateTaskStatus(context.Background(), 9, model.StatusComplete); err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	c, st := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		http.Error(w, "task not found", http.StatusNotFound)
	}))
	st.Set(session.Session{Token: "tok", Username: "alice"})

	err := c.DeleteTask(context.Background(), 42)
	var he *HTTPError
	if !errors.As(err, &he) || !he.NotFound() {
		t.Fatalf("expected not-found *HTTPError, got %v", err)
	}
}

func TestTransportFailureIsGeneric(t *testing.T) {
	st := &session.MemoryStore{}
	c := New("http://127.0.0.1:1", 0, st) // nothing listens here

	_, err := c.Tasks(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var he *HTTPError
	if errors.As(err, &he) {
		t.Fatalf("transport failure must not be an *HTTPError: %v", err)
	}
}

func TestAdminUpdateUser_PutsWholeRecord(t *testing.T) {
	c, st := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/users/3" || r.Method != http.MethodPut {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var u model.User
		if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if u.Username != "bob" || len(u.Roles) != 2 {
			t.Errorf("unexpected user: %+v", u)
		}
	}))
	st.Set(session.Session{Token: "tok", Username: "admin"})

	u := model.User{ID: 3, Username: "bob", Email: "b@example.com", Roles: []string{"ROLE_USER", "ROLE_ADMIN"}}
	if err := c.AdminUpdateUser(context.Background(), u); err != nil {
		t.Fatalf("AdminUpdateUser: %v", err)
	}
}
