package sections

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the section operations.
var (
	// ErrEmptyDocument is returned when an operation needs at least one page
	// and the document has none.
	ErrEmptyDocument = errors.New("no sections found")

	// ErrPageNotFound is returned when a title does not match any page.
	ErrPageNotFound = errors.New("section not found")

	// ErrNotFound is the read-only lookup flavor of ErrPageNotFound.
	ErrNotFound = fmt.Errorf("lookup: %w", ErrPageNotFound)

	// ErrInvalidInput is returned when a required argument is missing or blank.
	ErrInvalidInput = errors.New("invalid input")
)

// TitleError ties a failure to the title that caused it.
type TitleError struct {
	Title string
	Err   error
}

func (e *TitleError) Error() string {
	return fmt.Sprintf("section '%s': %v", e.Title, e.Err)
}

func (e *TitleError) Unwrap() error { return e.Err }

func notFound(title string, err error) error {
	return &TitleError{Title: title, Err: err}
}
