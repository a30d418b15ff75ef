package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"studiodesk/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "BadRequest", err: failure.BadRequest(errors.New("bad")), code: http.StatusBadRequest, message: "bad"},
		{name: "BadRequestFromString", err: failure.BadRequestFromString("clientId or bookingId is required"), code: http.StatusBadRequest, message: "clientId or bookingId is required"},
		{name: "Unauthorized", err: failure.Unauthorized("nope"), code: http.StatusUnauthorized, message: "nope"},
		{name: "InternalError", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, message: "db down"},
		{name: "NotFound", err: failure.NotFound("invoice not found"), code: http.StatusNotFound, message: "invoice not found"},
		{name: "Conflict", err: failure.Conflict("email already registered"), code: http.StatusConflict, message: "email already registered"},
		{name: "Forbidden", err: failure.Forbidden("route not permitted"), code: http.StatusForbidden, message: "route not permitted"},
		{name: "TooManyRequests", err: failure.TooManyRequests("slow down"), code: http.StatusTooManyRequests, message: "slow down"},
		{name: "Unimplemented", err: failure.Unimplemented("Delete"), code: http.StatusNotImplemented, message: "Delete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}

			if tt.err.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, tt.err.Error())
			}
		})
	}
}

func TestNilInputs(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected nil for BadRequest(nil)")
	}

	if failure.InternalError(nil) != nil {
		t.Error("expected nil for InternalError(nil)")
	}
}

func TestGetCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", failure.NotFound("booking not found"))

	if got := failure.GetCode(wrapped); got != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, got)
	}

	if got := failure.GetCode(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("expected %d for plain error, got %d", http.StatusInternalServerError, got)
	}
}

func TestReasons(t *testing.T) {
	err := failure.Unauthorized("bot verification failed", "invalid-input-response")

	reasons := failure.GetReasons(err)
	if len(reasons) != 1 || reasons[0] != "invalid-input-response" {
		t.Errorf("unexpected reasons: %v", reasons)
	}

	if failure.GetReasons(errors.New("plain")) != nil {
		t.Error("expected no reasons for a plain error")
	}
}

func TestIs(t *testing.T) {
	if !failure.Is(failure.NotFound("x"), http.StatusNotFound) {
		t.Error("expected NotFound to match 404")
	}

	if failure.Is(failure.NotFound("x"), http.StatusBadRequest) {
		t.Error("expected NotFound not to match 400")
	}
}
