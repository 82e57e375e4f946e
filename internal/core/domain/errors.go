package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUploadFailed      = errors.New("upload failed")
	ErrDeleteFailed      = errors.New("delete failed")
	ErrQueryFailed       = errors.New("query failed")
	ErrMalformedResponse = errors.New("malformed response")

	// Precondition violations reported synchronously at submission time.
	// They never enter the chat log.
	ErrNoDocumentSelected = errors.New("no document selected")
	ErrBlankQuestion      = errors.New("question is blank")

	// ErrInvalidFile rejects uploads outside the extension allow-list.
	ErrInvalidFile = errors.New("invalid file type")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// StatusError carries the HTTP status of a failed backend call.
type StatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "backend status error"
	}
	if e.Body == "" {
		return fmt.Sprintf("backend %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("backend %s status: %s: %s", e.Operation, e.Status, e.Body)
}

// StatusOf extracts the HTTP status code from an error chain, if any.
func StatusOf(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}
