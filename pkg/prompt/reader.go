package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Reader asks for template variables on out and reads the answers from in.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReader creates a Reader. A nil out discards the prompts.
func NewReader(in io.Reader, out io.Writer) *Reader {
	if out == nil {
		out = io.Discard
	}
	return &Reader{in: bufio.NewReader(in), out: out}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ReadVariable prompts for name, showing def, and returns the cleaned answer.
// An empty answer, or end of input before any text, yields def.
func (r *Reader) ReadVariable(name, def string) (string, error) {
	if def != "" {
		_, _ = fmt.Fprintf(r.out, "%s [%s]: ", name, def)
	} else {
		_, _ = fmt.Fprintf(r.out, "%s: ", name)
	}

	answer, err := r.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// ReadYesNo asks question until the answer parses as a boolean.
// An empty answer yields def; end of input also yields def.
func (r *Reader) ReadYesNo(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		_, _ = fmt.Fprintf(r.out, "%s [%s]: ", question, hint)

		answer, err := r.readLine()
		if err != nil {
			return false, err
		}
		if answer == "" {
			return def, nil
		}

		switch strings.ToLower(answer) {
		case "1", "true", "t", "yes", "y", "on":
			return true, nil
		case "0", "false", "f", "no", "n", "off":
			return false, nil
		}
		_, _ = fmt.Fprintln(r.out, "Please answer yes or no.")
	}
}

// readLine reads one line without its terminator, with backspaces applied.
func (r *Reader) readLine() (string, error) {
	line, err := r.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	return strings.TrimSpace(RemoveBackspaces(line)), nil
}
