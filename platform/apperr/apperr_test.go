package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{NotFound("missing"), http.StatusNotFound},
		{Validation("bad field"), http.StatusBadRequest},
		{BadRequest("bad date"), http.StatusBadRequest},
		{Conflict("slot already taken"), http.StatusConflict},
		{Forbidden("salon disabled"), http.StatusForbidden},
		{Unauthorized("bad credentials"), http.StatusUnauthorized},
		{Internal("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.err.HTTPStatus(); got != tt.status {
			t.Fatalf("HTTPStatus of %q = %d, want %d", tt.err.Message, got, tt.status)
		}
	}
}

func TestGetKind(t *testing.T) {
	if GetKind(NotFound("x")) != KindNotFound {
		t.Fatal("expected KindNotFound")
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatal("untyped errors must report KindUnknown")
	}
	if !Is(Conflict("x"), KindConflict) {
		t.Fatal("Is must match the error's kind")
	}
	if Is(Conflict("x"), KindNotFound) {
		t.Fatal("Is must reject other kinds")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(KindInternal, "database down", cause)

	if !errors.Is(wrapped, cause) {
		t.Fatal("wrapped error must unwrap to its cause")
	}
}
