package oplog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "share", "fikus.log")

	log, closer, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	log.Info().Str("op", "install").Str("package", "htop").Msg("Package installed: ok")
	closer.Close()

	log, closer, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	log.Error().Str("op", "remove").Str("package", "nope").Msg("Error removing package: target not found")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasPrefix(content, header) {
		t.Errorf("log should start with the header:\n%s", content)
	}
	if n := strings.Count(content, header); n != 1 {
		t.Errorf("header written %d times", n)
	}

	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus two entries:\n%s", len(lines), content)
	}
	if !strings.Contains(lines[1], "Package installed: ok") || !strings.Contains(lines[1], "package=htop") {
		t.Errorf("first entry = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Error removing package") {
		t.Errorf("second entry = %q", lines[2])
	}
}

func TestNewHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)
	logger.Info().Msg("System updated: done")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("entry contains escape codes: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "System updated: done") {
		t.Errorf("entry = %q", buf.String())
	}
}
