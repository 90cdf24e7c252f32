package runner

import (
	"context"
	"io"
	"strings"
	"time"
)

// DefaultTimeout bounds a command that does not set its own timeout.
const DefaultTimeout = 5 * time.Minute

// Command describes one program invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory; empty means the current one.
	Dir string

	// Env entries (KEY=VALUE) are appended to the inherited environment.
	Env []string

	// Stdin feeds the program; nil means no input.
	Stdin io.Reader

	// Sudo asks for elevation when the runner is allowed to use it.
	Sudo bool

	Timeout time.Duration
}

// String renders the command line for logs and messages.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Reason returns the most useful one-line explanation of a failure: the
// last non-empty stderr line, falling back to stdout.
func (r Result) Reason() string {
	for _, out := range []string{r.Stderr, r.Stdout} {
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if last := strings.TrimSpace(lines[len(lines)-1]); last != "" {
			return last
		}
	}
	return ""
}

// Runner runs external programs.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
	LookPath(name string) (string, error)
}
