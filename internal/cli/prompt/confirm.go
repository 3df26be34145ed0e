// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thoreinstein/tsfix/internal/errors"
)

// ErrCancelled indicates the user aborted the prompt (e.g., Ctrl+D).
var ErrCancelled = errors.New("prompt cancelled")

// Confirmer asks yes/no questions on a terminal.
type Confirmer struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewConfirmer creates a Confirmer using stdin and stdout.
func NewConfirmer() *Confirmer {
	return NewConfirmerWithIO(os.Stdin, os.Stdout)
}

// NewConfirmerWithIO creates a Confirmer with custom reader and writer for testing.
func NewConfirmerWithIO(r io.Reader, w io.Writer) *Confirmer {
	return &Confirmer{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Confirm asks the question and reads a y/n answer. The default on a
// bare Enter is no.
//
// Returns ErrCancelled when input ends (e.g., Ctrl+D).
func (c *Confirmer) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.writer, "%s [y/N]: ", question)

	input, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, ErrCancelled
		}
		return false, errors.Wrap(err, "reading confirmation")
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
