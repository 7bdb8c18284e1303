// Package errors defines typed errors shared across packages.
package errors

import "fmt"

// FetchError represents a failed GitHub API operation for one repository.
type FetchError struct {
	Repo      string
	Operation string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s for %s: %v", e.Operation, e.Repo, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates a named entity was absent from an API response.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}
