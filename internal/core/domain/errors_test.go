package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapErrorKeepsKindAndStatus(t *testing.T) {
	statusErr := &StatusError{Operation: "query", StatusCode: 500, Status: "500 Internal Server Error"}
	err := WrapError(ErrQueryFailed, "query", statusErr)

	if !IsKind(err, ErrQueryFailed) {
		t.Fatalf("expected ErrQueryFailed kind in %v", err)
	}
	code, ok := StatusOf(err)
	if !ok || code != 500 {
		t.Fatalf("expected status 500, got %d (ok=%v)", code, ok)
	}
}

func TestWrapErrorNil(t *testing.T) {
	if err := WrapError(ErrUploadFailed, "upload", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStatusOfWithoutStatusError(t *testing.T) {
	err := fmt.Errorf("plain: %w", errors.New("boom"))
	if _, ok := StatusOf(err); ok {
		t.Fatalf("expected no status in plain error")
	}
}

func TestAvailabilityResolved(t *testing.T) {
	if AvailabilityUnknown.Resolved() {
		t.Fatalf("unknown must not be resolved")
	}
	if !Available.Resolved() || !Unavailable.Resolved() {
		t.Fatalf("terminal verdicts must be resolved")
	}
	if Available.String() != "available" || Unavailable.String() != "unavailable" || AvailabilityUnknown.String() != "unknown" {
		t.Fatalf("unexpected string forms")
	}
}
