// Package oplog is the append-only operation log.
package oplog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const header = "Fikus Store log\n"

// DefaultPath is ~/.local/share/fikus.log.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "fikus.log"), nil
}

// Open appends to the log at path, creating it with a header line when
// missing. The returned closer should be closed when logging is no longer
// needed.
func Open(path string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("ensure log directory: %w", err)
	}

	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	if fresh {
		if _, err := io.WriteString(file, header); err != nil {
			file.Close()
			return zerolog.Nop(), nil, fmt.Errorf("write log header: %w", err)
		}
	}

	return New(file), file, nil
}

// New returns a logger writing one plain line per entry to w.
func New(w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}
