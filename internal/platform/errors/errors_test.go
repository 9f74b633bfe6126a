package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestCodeOfStructuredError(t *testing.T) {
	err := New(CodeAuthInvalidCredentials, "email ou senha incorretos")
	if got := CodeOf(err); got != CodeAuthInvalidCredentials {
		t.Fatalf("CodeOf = %q, want %q", got, CodeAuthInvalidCredentials)
	}
}

func TestCodeOfWrappedChain(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeNotFound, cause, "load profile")
	wrapped := stderrors.Join(stderrors.New("outer"), err)
	if got := CodeOf(wrapped); got != CodeNotFound {
		t.Fatalf("CodeOf = %q, want %q", got, CodeNotFound)
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("CodeOf = %q, want %q", got, CodeUnknown)
	}
}

func TestCodeOfNil(t *testing.T) {
	if got := CodeOf(nil); got != "" {
		t.Fatalf("CodeOf(nil) = %q, want empty", got)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeAuthInvalidCredentials, http.StatusUnauthorized},
		{CodeAuthEmailInUse, http.StatusConflict},
		{CodeNotFound, http.StatusNotFound},
		{CodeContactNameEmpty, http.StatusBadRequest},
		{CodeUnknown, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.code.HTTPStatus(); got != tc.want {
			t.Fatalf("%s.HTTPStatus() = %d, want %d", tc.code, got, tc.want)
		}
	}
}
