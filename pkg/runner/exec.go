package runner

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/rs/zerolog"
)

// ExecOption configures an ExecRunner.
type ExecOption func(*ExecRunner)

// WithSudo allows commands marked Sudo to be prefixed with sudo when the
// process is not already root.
func WithSudo(enabled bool) ExecOption {
	return func(r *ExecRunner) { r.sudo = enabled }
}

// WithTimeout replaces DefaultTimeout.
func WithTimeout(d time.Duration) ExecOption {
	return func(r *ExecRunner) { r.timeout = d }
}

// ExecRunner runs programs through os/exec.
type ExecRunner struct {
	sudo    bool
	timeout time.Duration
	euid    func() int
	logger  zerolog.Logger
}

// NewExecRunner creates an ExecRunner.
func NewExecRunner(opts ...ExecOption) *ExecRunner {
	r := &ExecRunner{
		timeout: DefaultTimeout,
		euid:    os.Geteuid,
		logger:  logging.GetLogger("runner.exec"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LookPath finds name on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrNotFound, "%s not found on PATH", name)
	}
	return path, nil
}

// Run executes cmd and waits for it. A non-zero exit is a COMMAND error;
// the Result is filled in either way.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Name == "" {
		return Result{}, errors.New(errors.ErrInvalidInput, "command name is required")
	}

	timeout := r.timeout
	if cmd.Timeout > 0 {
		timeout = cmd.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name, args := r.argv(cmd)
	logging.LogCommand(name, args)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.Env...)
	c.Stdin = cmd.Stdin

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	if stdout.Len() > 0 {
		r.logger.Debug().Str("output", result.Stdout).Msg("Command stdout")
	}
	if stderr.Len() > 0 {
		r.logger.Debug().Str("output", result.Stderr).Msg("Command stderr")
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = ctx.Err()
		}
		r.logger.Error().
			Err(err).
			Str("command", cmd.String()).
			Int("exitCode", result.ExitCode).
			Str("stderr", result.Stderr).
			Msg("Command failed")
		return result, errors.Wrapf(err, errors.ErrCommand, "%s failed: %s", cmd.Name, result.Reason()).
			WithDetail("command", cmd.String()).
			WithDetail("exitCode", result.ExitCode)
	}

	r.logger.Debug().
		Str("command", cmd.String()).
		Dur("duration", result.Duration).
		Msg("Command succeeded")
	return result, nil
}

func (r *ExecRunner) argv(cmd Command) (string, []string) {
	if cmd.Sudo && r.sudo && r.euid() != 0 {
		return "sudo", append([]string{cmd.Name}, cmd.Args...)
	}
	return cmd.Name, cmd.Args
}
