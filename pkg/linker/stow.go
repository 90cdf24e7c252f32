package linker

import (
	"context"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/runner"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// StowLinker drives GNU stow.
type StowLinker struct {
	runner runner.Runner
	paths  *paths.Paths
	logger zerolog.Logger
}

// NewStowLinker creates a StowLinker for the managed root and home of p.
func NewStowLinker(r runner.Runner, p *paths.Paths) *StowLinker {
	return &StowLinker{
		runner: r,
		paths:  p,
		logger: logging.GetLogger("linker.stow"),
	}
}

func (s *StowLinker) Name() string { return NameStow }

// Available reports whether stow is on PATH.
func (s *StowLinker) Available() bool {
	_, err := s.runner.LookPath("stow")
	return err == nil
}

// Apply stows the group's package. stow refuses to touch existing files,
// in which case its conflict lines become the error message.
func (s *StowLinker) Apply(ctx context.Context, group types.LinkGroup) error {
	return s.stow(ctx, group, false)
}

// Remove unstows the group's package.
func (s *StowLinker) Remove(ctx context.Context, group types.LinkGroup) error {
	return s.stow(ctx, group, true)
}

func (s *StowLinker) stow(ctx context.Context, group types.LinkGroup, remove bool) error {
	args := []string{"--dir=" + s.paths.ManagedRoot(), "--target=" + s.paths.Home()}
	code := errors.ErrLinkGroup
	if remove {
		args = append(args, "-D")
		code = errors.ErrUnlinkGroup
	}
	args = append(args, group.Package)

	result, err := s.runner.Run(ctx, runner.Command{Name: "stow", Args: args})
	if err != nil {
		return errors.Wrapf(err, code, "stow %s: %s", group.Package, stowReason(result)).
			WithDetail("group", group.Name).
			WithDetail("stderr", result.Stderr)
	}

	s.logger.Info().
		Str("group", group.Name).
		Str("package", group.Package).
		Bool("remove", remove).
		Msg("stow finished")
	return nil
}

// stowReason extracts the "* existing target ..." lines stow prints on
// conflicts, falling back to the last output line.
func stowReason(result runner.Result) string {
	var conflicts []string
	for _, line := range strings.Split(result.Stderr, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "* ") {
			conflicts = append(conflicts, strings.TrimPrefix(line, "* "))
		}
	}
	if len(conflicts) > 0 {
		return strings.Join(conflicts, "; ")
	}
	return result.Reason()
}
