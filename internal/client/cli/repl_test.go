package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func runScript(t *testing.T, f *fakeExec, lines ...string) {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	runREPL(context.Background(), f, func() string { return "" }, scanner)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silencePrintln(t)
	f := &fakeExec{}

	runScript(t, f, "login", "whoami", "status", "logout", "exit")

	want := []string{"login", "whoami", "status", "logout"}
	if len(f.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", f.calls, want)
	}
	for i := range want {
		if f.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", f.calls, want)
		}
	}
}

func TestRunREPL_IgnoresBlankAndUnknown(t *testing.T) {
	silencePrintln(t)
	f := &fakeExec{}

	runScript(t, f, "", "   ", "frobnicate", "help", "register", "quit")

	if len(f.calls) != 1 || f.calls[0] != "register" {
		t.Fatalf("calls = %v, want [register]", f.calls)
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	silencePrintln(t)
	f := &fakeExec{}

	scanner := bufio.NewScanner(strings.NewReader("status"))
	runREPL(context.Background(), f, func() string { return "" }, scanner)

	if len(f.calls) != 1 || f.calls[0] != "status" {
		t.Fatalf("calls = %v, want [status]", f.calls)
	}
}
