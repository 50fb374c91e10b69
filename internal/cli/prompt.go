package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"

	"fikus/internal/manager"
	"fikus/internal/reconcile"
)

// prompter reads credentials for one command invocation. Piped input is
// wrapped in a single buffered reader so each prompt takes the next line.
type prompter struct {
	out   io.Writer
	tty   *os.File
	lines *bufio.Reader
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.tty = f
		return p
	}
	p.lines = bufio.NewReader(in)
	return p
}

// credential reads one password line when needed. An empty line or end of
// input yields an empty credential, which the worker reports as an abort.
func (p *prompter) credential(needed bool) (manager.Credential, error) {
	if !needed {
		return "", nil
	}
	fmt.Fprint(p.out, "Enter your sudo password: ")

	if p.tty != nil {
		secret, err := term.ReadPassword(int(p.tty.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", nil
		}
		return manager.Credential(secret), nil
	}

	line, err := p.lines.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprintln(p.out)
	return manager.Credential(strings.TrimRight(line, "\r\n")), nil
}

type consoleNotifier struct {
	out io.Writer
}

func (n consoleNotifier) Notify(note reconcile.Notification) {
	switch note.Severity {
	case reconcile.SeveritySuccess:
		fmt.Fprintln(n.out, color.Green.Sprint(note.Message))
	case reconcile.SeverityError:
		fmt.Fprintln(n.out, color.Red.Sprintf("%s: %s", note.Title, note.Message))
	default:
		fmt.Fprintln(n.out, color.Cyan.Sprint(note.Message))
	}
}
