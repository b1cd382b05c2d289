package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		is     error
	}{
		{"duplicate", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), http.StatusConflict, ErrAlreadyExists},
		{"postgres duplicate text", errors.New(`ERROR: duplicate key value violates unique constraint "idx_post_slug"`), http.StatusConflict, ErrAlreadyExists},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, ErrNotFound},
		{"foreign key", gorm.ErrForeignKeyViolated, http.StatusBadRequest, nil},
		{"connection", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, ErrDatabaseConnection},
		{"other", errors.New("syntax error at or near"), http.StatusInternalServerError, ErrDatabaseQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "post", tt.cause)
			if err.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.status)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.is)
			}
			if !errors.Is(err.Cause, tt.cause) {
				t.Errorf("Cause = %v, want %v", err.Cause, tt.cause)
			}
		})
	}
}

func TestNewDatabaseErrorKeepsApiErr(t *testing.T) {
	notFound := NewNotFound("category")
	if got := NewDatabaseError("delete", "category", notFound); got != notFound {
		t.Errorf("NewDatabaseError() = %v, want the original ApiErr", got)
	}
}

func TestGetFullError(t *testing.T) {
	err := NewInternalErrorWithCause("render failed", errors.New("boom"))
	if got, want := err.GetFullError(), "render failed -> boom"; got != want {
		t.Errorf("GetFullError() = %q, want %q", got, want)
	}
	if !IsNotFound(NewNotFoundError("post not found")) {
		t.Error("IsNotFound(NewNotFoundError) = false")
	}
}
