package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/rs/zerolog"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Script is a POSIX shell snippet run by ScriptRunner.
type Script struct {
	// Name identifies the script in logs and parse errors.
	Name   string
	Source string
	Dir    string
	Env    []string
	Stdin  io.Reader

	Timeout time.Duration
}

// ScriptRunner interprets shell scripts with mvdan.cc/sh. Builtins run
// in-process; external programs in a pipeline are executed normally.
type ScriptRunner struct {
	timeout time.Duration
	logger  zerolog.Logger
}

// NewScriptRunner creates a ScriptRunner using DefaultTimeout.
func NewScriptRunner() *ScriptRunner {
	return &ScriptRunner{
		timeout: DefaultTimeout,
		logger:  logging.GetLogger("runner.script"),
	}
}

// Validate parses the script without running it.
func (s *ScriptRunner) Validate(script Script) error {
	_, err := s.parse(script)
	return err
}

// Run parses and interprets script. A non-zero exit status is a COMMAND
// error carrying the exit code in the Result.
func (s *ScriptRunner) Run(ctx context.Context, script Script) (Result, error) {
	prog, err := s.parse(script)
	if err != nil {
		return Result{ExitCode: 1}, err
	}

	timeout := s.timeout
	if script.Timeout > 0 {
		timeout = script.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dir := script.Dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return Result{ExitCode: 1}, errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
		}
	}

	var stdout, stderr bytes.Buffer
	interpreter, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(append(os.Environ(), script.Env...)...)),
		interp.StdIO(script.Stdin, &stdout, &stderr),
	)
	if err != nil {
		return Result{ExitCode: 1}, errors.Wrap(err, errors.ErrInternal, "failed to create shell interpreter")
	}

	s.logger.Info().Str("script", script.Name).Msg("Running script")
	start := time.Now()
	runErr := interpreter.Run(ctx, prog)

	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if runErr == nil {
		return result, nil
	}

	var status interp.ExitStatus
	if stderrors.As(runErr, &status) {
		result.ExitCode = int(status)
	} else {
		result.ExitCode = 1
	}
	s.logger.Error().
		Err(runErr).
		Str("script", script.Name).
		Int("exitCode", result.ExitCode).
		Str("stderr", result.Stderr).
		Msg("Script failed")
	return result, errors.Wrapf(runErr, errors.ErrCommand, "script %s failed: %s", script.Name, result.Reason()).
		WithDetail("exitCode", result.ExitCode)
}

func (s *ScriptRunner) parse(script Script) (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script.Source), script.Name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to parse script %s", script.Name)
	}
	return prog, nil
}
