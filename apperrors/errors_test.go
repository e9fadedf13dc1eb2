package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.NotFoundf("task not found with id of %s", "abc"), http.StatusNotFound},
		{apperrors.Unauthorizedf("not authorized"), http.StatusUnauthorized},
		{apperrors.Validationf("invalid status value"), http.StatusBadRequest},
		{apperrors.Internal(errors.New("boom"), "failed"), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := apperrors.HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := apperrors.NotFoundf("project not found with id of %s", "xyz")
	wrapped := fmt.Errorf("loading project: %w", inner)

	if apperrors.KindOf(wrapped) != apperrors.KindNotFound {
		t.Fatalf("kind lost through wrapping: %v", apperrors.KindOf(wrapped))
	}
	if apperrors.HTTPStatus(wrapped) != http.StatusNotFound {
		t.Fatalf("status lost through wrapping")
	}
}

func TestMessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.Internal(cause, "failed to retrieve tasks")

	if err.Error() != "failed to retrieve tasks" {
		t.Fatalf("message leaked the cause: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
}
