package errors_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/kyleking/gh-runwatch/internal/errors"
)

func TestFetchError_Message(t *testing.T) {
	underlying := stderrors.New("connection refused")
	err := &errors.FetchError{Repo: "acme/widgets", Operation: "fetch runs", Err: underlying}

	msg := err.Error()
	if !strings.Contains(msg, "acme/widgets") || !strings.Contains(msg, "fetch runs") {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	underlying := stderrors.New("rate limited")
	err := &errors.FetchError{Repo: "acme/widgets", Operation: "fetch runs", Err: underlying}

	if !stderrors.Is(err, underlying) {
		t.Error("expected errors.Is to match the underlying error")
	}
}

func TestNotFoundError_Message(t *testing.T) {
	err := &errors.NotFoundError{Kind: "job", Name: "build"}

	if got := err.Error(); got != `job "build" not found` {
		t.Errorf("message: got %q", got)
	}
}
