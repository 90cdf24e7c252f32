// Package confirmations provides console implementations of the yes/no
// and free-text questions workflows ask.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/types"
)

// Console asks questions on out and reads answers line by line from in.
// It implements types.Confirmer and types.Prompter.
type Console struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

// NewConsole creates a Console. With assumeYes every confirmation is
// answered Yes without reading input.
func NewConsole(in io.Reader, out io.Writer, assumeYes bool) *Console {
	return &Console{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

// Confirm asks a [y/N] question. Anything other than y or yes, including
// an empty line or end of input, is No.
func (c *Console) Confirm(prompt string) (types.Decision, error) {
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	if c.assumeYes {
		fmt.Fprintln(c.out, "y")
		return types.Yes, nil
	}

	answer, err := c.readLine()
	if err != nil {
		return types.No, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return types.Yes, nil
	}
	return types.No, nil
}

// Ask prints prompt and returns the trimmed line typed by the user. End of
// input yields an empty answer.
func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", prompt)
	return c.readLine()
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "failed to read user input")
	}
	if err == io.EOF && line == "" {
		fmt.Fprintln(c.out)
	}
	return strings.TrimSpace(line), nil
}
