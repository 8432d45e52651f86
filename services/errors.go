package services

import "fmt"

// NotFoundError reports that an entity referenced by the caller's input does
// not exist. It surfaces to the API as a 404 with its message.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %q was not found", e.Entity, e.ID)
}

// InternalNotFoundError reports a lookup failure caused by broken reference
// data rather than by caller input, for example a course that has chapter
// completions but no course achievement. Its details must never reach the
// API response; the error handler logs it and returns a generic failure.
type InternalNotFoundError struct {
	NotFoundError
}
