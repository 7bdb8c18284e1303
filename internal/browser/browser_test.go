package browser

import (
	"errors"
	"runtime"
	"testing"
)

type fakeCmd struct {
	name string
	args []string
	err  error
}

func (f *fakeCmd) Start() error {
	return f.err
}

func TestOpenUsesPlatformLauncher(t *testing.T) {
	original := execCommand
	defer func() { execCommand = original }()

	var captured *fakeCmd
	execCommand = func(name string, args ...string) starter {
		captured = &fakeCmd{name: name, args: args}
		return captured
	}

	if err := Open("https://github.com/acme/widgets/actions/runs/42"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if captured == nil {
		t.Fatal("expected a command to be built")
	}

	var wantName string
	switch runtime.GOOS {
	case "darwin":
		wantName = "open"
	case "windows":
		wantName = "cmd"
	default:
		wantName = "xdg-open"
	}

	if captured.name != wantName {
		t.Errorf("launcher = %q, want %q", captured.name, wantName)
	}

	lastArg := captured.args[len(captured.args)-1]
	if lastArg != "https://github.com/acme/widgets/actions/runs/42" {
		t.Errorf("url arg = %q", lastArg)
	}
}

func TestOpenPropagatesStartError(t *testing.T) {
	original := execCommand
	defer func() { execCommand = original }()

	wantErr := errors.New("no display")
	execCommand = func(name string, args ...string) starter {
		return &fakeCmd{err: wantErr}
	}

	if err := Open("https://example.com"); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
