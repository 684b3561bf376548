package api

import "fmt"

// FetchError reports a failed read of the todo collection.
// StatusCode is 0 when the request never produced a response.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching todos: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("fetching todos: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MutationError reports a failed create or status update.
type MutationError struct {
	Op         string // "create" or "update"
	StatusCode int
	Err        error
}

func (e *MutationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s todo: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s todo: %v", e.Op, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }
