package cli

import (
	"errors"
	"fmt"

	"taskdeck-cli/internal/api"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type notLoggedInError struct{}

func (notLoggedInError) Error() string {
	return "not logged in; run `taskdeck login --email ... --password ...`"
}

func errNotLoggedIn() error { return notLoggedInError{} }

// mapBackendNotFound turns a backend 404 into the CLI's own not-found error,
// so scripts see the same stable message as for a bad id. All other errors
// pass through untouched.
func mapBackendNotFound(err error, kind, id string) error {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && httpErr.NotFound() {
		return errNotFound(kind, id)
	}
	return err
}
