package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fikus/internal/reconcile"
)

func TestPrompterCredential(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"line", "pw123\n", "pw123"},
		{"crlf", "pw123\r\n", "pw123"},
		{"no newline", "pw123", "pw123"},
		{"empty line", "\n", ""},
		{"end of input", "", ""},
		{"keeps spaces", " pass word \n", " pass word "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cred, err := newPrompter(strings.NewReader(tt.input), &out).credential(true)
			if err != nil {
				t.Fatal(err)
			}
			if string(cred) != tt.want {
				t.Errorf("credential = %q, want %q", string(cred), tt.want)
			}
			if !strings.Contains(out.String(), "Enter your sudo password:") {
				t.Errorf("prompt = %q", out.String())
			}
			if tt.want != "" && strings.Contains(out.String(), tt.want) {
				t.Error("credential echoed to output")
			}
		})
	}
}

func TestPrompterReadsOneLinePerPrompt(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("pw1\npw2\n"), &out)

	for _, want := range []string{"pw1", "pw2", ""} {
		cred, err := p.credential(true)
		if err != nil {
			t.Fatal(err)
		}
		if string(cred) != want {
			t.Errorf("credential = %q, want %q", string(cred), want)
		}
	}
}

func TestPrompterSkipsWhenNotNeeded(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("pw1\n"), &out)

	if cred, err := p.credential(false); err != nil || cred != "" {
		t.Fatalf("credential = %q, err = %v", string(cred), err)
	}
	if out.Len() != 0 {
		t.Errorf("prompted although no credential was needed: %q", out.String())
	}
	if cred, _ := p.credential(true); cred != "pw1" {
		t.Errorf("skipped prompt consumed input, got %q", string(cred))
	}
}

func TestConsoleNotifier(t *testing.T) {
	var out bytes.Buffer
	n := consoleNotifier{out: &out}

	n.Notify(reconcile.Notification{Title: "Success", Message: "Package installed successfully!", Severity: reconcile.SeveritySuccess})
	n.Notify(reconcile.Notification{Title: "Error", Message: "Error removing package: target not found", Severity: reconcile.SeverityError})

	got := out.String()
	if !strings.Contains(got, "Package installed successfully!") {
		t.Errorf("output = %q", got)
	}
	if !strings.Contains(got, "Error: Error removing package: target not found") {
		t.Errorf("output = %q", got)
	}
}

// fakeTools writes an elevator and a package manager that keep their state
// under dir, plus a settings file pointing at them.
func fakeTools(t *testing.T) (settings, dir string) {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	dir = t.TempDir()
	state := filepath.Join(dir, "state")
	if err := os.Mkdir(state, 0o755); err != nil {
		t.Fatal(err)
	}

	elevator := filepath.Join(dir, "elevate")
	writeExecutable(t, elevator, `read -r pw
[ -n "$pw" ] || exit 1
shift
exec "$@"
`)
	pacman := filepath.Join(dir, "pacman")
	writeExecutable(t, pacman, fmt.Sprintf(`case "$1" in
-Q) test -e %[1]q/"$2" ;;
-S) touch %[1]q/"$3"; echo "installing $3..." ;;
-R) rm %[1]q/"$3" ;;
*) exit 2 ;;
esac
`, state))

	settings = filepath.Join(dir, "settings.yaml")
	content := fmt.Sprintf("primary: %q\nelevator: %q\nlog_path: %q\npackages: []\n",
		pacman, elevator, filepath.Join(dir, "fikus.log"))
	if err := os.WriteFile(settings, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return settings, dir
}

func writeExecutable(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInstallStatusRemove(t *testing.T) {
	settings, dir := fakeTools(t)

	out, err := run(t, "", "--config", settings, "status", "htop")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "htop: not installed") {
		t.Errorf("status output = %q", out)
	}

	out, err = run(t, "pw123\n", "--config", settings, "install", "htop")
	if err != nil {
		t.Fatalf("install: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Package installed successfully!") {
		t.Errorf("install output = %q", out)
	}

	out, err = run(t, "", "--config", settings, "status", "htop")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "htop: installed") {
		t.Errorf("status output = %q", out)
	}

	out, err = run(t, "", "--config", settings, "install", "htop")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "htop is already installed") {
		t.Errorf("second install output = %q", out)
	}

	// Dismissing the password prompt cancels without running anything.
	out, err = run(t, "\n", "--config", settings, "remove", "htop")
	if err != nil {
		t.Fatalf("cancelled remove: %v", err)
	}
	if !strings.Contains(out, "Cancelled.") {
		t.Errorf("remove output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "state", "htop")); err != nil {
		t.Error("htop should still be installed after a cancelled remove")
	}

	out, err = run(t, "pw123\n", "--config", settings, "remove", "htop")
	if err != nil {
		t.Fatalf("remove: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Package removed successfully!") {
		t.Errorf("remove output = %q", out)
	}

	log, err := os.ReadFile(filepath.Join(dir, "fikus.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(log), "Fikus Store log\n") {
		t.Errorf("log = %q", log)
	}
	if !strings.Contains(string(log), "Package installed: installing htop...") {
		t.Errorf("log = %q", log)
	}
	if strings.Contains(string(log), "pw123") {
		t.Error("credential leaked into the log")
	}
	if n := strings.Count(string(log), "\n"); n != 3 {
		t.Errorf("log has %d lines, want header plus install and remove:\n%s", n, log)
	}
}

func TestInstallSeveralPackagesFromPipedInput(t *testing.T) {
	settings, dir := fakeTools(t)

	out, err := run(t, "pw1\npw2\n", "--config", settings, "install", "htop", "vim")
	if err != nil {
		t.Fatalf("install: %v\n%s", err, out)
	}
	if strings.Contains(out, "Cancelled.") {
		t.Errorf("second package lost its password:\n%s", out)
	}
	for _, name := range []string{"htop", "vim"} {
		if _, err := os.Stat(filepath.Join(dir, "state", name)); err != nil {
			t.Errorf("%s was not installed", name)
		}
	}
	if n := strings.Count(out, "Package installed successfully!"); n != 2 {
		t.Errorf("success notices = %d, want 2:\n%s", n, out)
	}
}

func TestRemoveFailureReturnsError(t *testing.T) {
	settings, dir := fakeTools(t)

	// Installed on disk, so the board lets the remove through, but the
	// package manager cannot delete it.
	target := filepath.Join(dir, "state", "locked")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "pw123\n", "--config", settings, "remove", "locked")
	if err == nil {
		t.Fatalf("expected an error, output %q", out)
	}
	if !strings.Contains(out, "Error removing package") {
		t.Errorf("output = %q", out)
	}
}

func TestSearchNoResults(t *testing.T) {
	settings, _ := fakeTools(t)

	// The fake manager exits 2 for -Ss with no output.
	out, err := run(t, "", "--config", settings, "search", "zzzz")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No packages found.") {
		t.Errorf("output = %q", out)
	}
}

func TestMissingPackageArgument(t *testing.T) {
	settings, _ := fakeTools(t)
	if _, err := run(t, "", "--config", settings, "install"); err == nil {
		t.Error("install without a package should fail")
	}
}
