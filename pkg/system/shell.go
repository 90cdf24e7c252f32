package system

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/user"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/runner"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultShellsFile lists the login shells chsh accepts.
const DefaultShellsFile = "/etc/shells"

// ShellChanger registers shells and changes the user's login shell.
type ShellChanger struct {
	fs         types.FS
	runner     runner.Runner
	shellsFile string
	getenv     func(string) string
	logger     zerolog.Logger
}

// NewShellChanger creates a ShellChanger. An empty shellsFile means
// DefaultShellsFile.
func NewShellChanger(fsys types.FS, r runner.Runner, shellsFile string) *ShellChanger {
	if shellsFile == "" {
		shellsFile = DefaultShellsFile
	}
	return &ShellChanger{
		fs:         fsys,
		runner:     r,
		shellsFile: shellsFile,
		getenv:     os.Getenv,
		logger:     logging.GetLogger("system.shell"),
	}
}

// Resolve finds the absolute path of a shell by name.
func (s *ShellChanger) Resolve(name string) (string, error) {
	path, err := s.runner.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrShellChange, "shell %s is not installed", name)
	}
	return path, nil
}

// Current returns the user's login shell from the passwd database. $SHELL
// is not used: it belongs to the running session and goes stale after chsh.
func (s *ShellChanger) Current(ctx context.Context) (string, error) {
	name := s.getenv("USER")
	if name == "" {
		u, err := user.Current()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrShellChange, "cannot determine the current user")
		}
		name = u.Username
	}

	result, err := s.runner.Run(ctx, runner.Command{Name: "getent", Args: []string{"passwd", name}})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrShellChange, "cannot look up the login shell of %s", name)
	}
	fields := strings.Split(strings.TrimSpace(result.Stdout), ":")
	if len(fields) < 7 {
		return "", errors.Newf(errors.ErrShellChange, "unexpected passwd entry for %s", name).
			WithDetail("entry", result.Stdout)
	}
	return fields[6], nil
}

// Registered reports whether path is listed in the shells file.
func (s *ShellChanger) Registered(path string) (bool, error) {
	data, err := s.fs.ReadFile(s.shellsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrShellChange, "cannot read %s", s.shellsFile)
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == path {
			return true, nil
		}
	}
	return false, nil
}

// Register appends path to the shells file when it is not listed yet.
func (s *ShellChanger) Register(ctx context.Context, path string) error {
	ok, err := s.Registered(path)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	_, err = s.runner.Run(ctx, runner.Command{
		Name:  "tee",
		Args:  []string{"-a", s.shellsFile},
		Stdin: strings.NewReader(path + "\n"),
		Sudo:  true,
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrShellChange, "failed to register %s in %s", path, s.shellsFile).
			WithRemediation("echo " + path + " | sudo tee -a " + s.shellsFile)
	}
	s.logger.Info().Str("shell", path).Msg("Registered shell")
	return nil
}

// SetDefault makes path the login shell. The change applies to new
// sessions only.
func (s *ShellChanger) SetDefault(ctx context.Context, path string) error {
	current, err := s.Current(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Login shell unknown, changing it anyway")
	}
	if current == path {
		s.logger.Info().Str("shell", path).Msg("Login shell already set")
		return nil
	}
	if err := s.Register(ctx, path); err != nil {
		return err
	}

	_, err = s.runner.Run(ctx, runner.Command{Name: "chsh", Args: []string{"-s", path}})
	if err != nil {
		return errors.Wrapf(err, errors.ErrShellChange, "failed to change login shell to %s", path).
			WithRemediation("chsh -s " + path)
	}
	s.logger.Info().Str("shell", path).Msg("Changed login shell")
	return nil
}
