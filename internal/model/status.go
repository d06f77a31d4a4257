package model

import (
	"fmt"
	"strings"
)

// Task statuses on the user surface. Any status is reachable from any other;
// the backend owns whatever business rules apply.
const (
	StatusTodo       = "TODO"
	StatusPending    = "PENDING"
	StatusInProgress = "INPROGRESS"
	StatusComplete   = "COMPLETE"
)

// StatusOptions lists the user-surface statuses in display order.
func StatusOptions() []string {
	return []string{StatusTodo, StatusPending, StatusInProgress, StatusComplete}
}

// AdminStatusOptions lists the freeform status values the admin surface
// offers. The admin vocabulary intentionally differs from the user-surface
// enum: the backend accepts both shapes and the two screens never shared one.
func AdminStatusOptions() []string {
	return []string{"Pending", "In Progress", "Completed"}
}

// NormalizeStatus maps case-insensitive user input onto the user-surface
// status vocabulary.
func NormalizeStatus(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case StatusTodo:
		return StatusTodo, nil
	case StatusPending:
		return StatusPending, nil
	case StatusInProgress, "IN_PROGRESS", "IN PROGRESS":
		return StatusInProgress, nil
	case StatusComplete, "COMPLETED", "DONE":
		return StatusComplete, nil
	case "":
		return "", fmt.Errorf("invalid status: empty")
	default:
		return "", fmt.Errorf("invalid status: %q (want one of %s)", s, strings.Join(StatusOptions(), "|"))
	}
}

// ValidStatus reports whether s is one of the user-surface statuses.
func ValidStatus(s string) bool {
	for _, opt := range StatusOptions() {
		if s == opt {
			return true
		}
	}
	return false
}
