package model

// Task is a backend-owned task record. The client holds copies that are kept
// consistent with the last-known server response after every mutation.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"` // YYYY-MM-DD
	Status      string `json:"status"`
}

// TaskDraft is the body of a task creation request. The id is assigned by the
// backend.
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
}

// TaskPage is the paginated response of the get-all-tasks endpoint. Only the
// content page is consumed; the pagination fields are carried for display.
type TaskPage struct {
	Content       []Task `json:"content"`
	TotalElements int64  `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	Number        int    `json:"number"`
	Size          int    `json:"size"`
}

// User is a backend-owned user record as seen on the admin surface.
// Password is write-only: it is never returned by the backend and is sent only
// when an admin sets a new one.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	Password string   `json:"password,omitempty"`
}

// SignupDraft is the transient signup form payload, discarded after the
// request succeeds or fails.
type SignupDraft struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	Password string   `json:"password"`
}

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the login response payload.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	Username    string `json:"username"`
}
