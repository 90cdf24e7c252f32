package linker

import (
	"context"

	"github.com/arthur-debert/dotstow/pkg/conflicts"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/runner"
	"github.com/arthur-debert/dotstow/pkg/types"
)

// Linker names accepted in configuration.
const (
	NameStow   = "stow"
	NameNative = "native"
	NameAuto   = "auto"
)

// Linker creates and removes the symlinks of one group.
type Linker interface {
	Name() string
	Available() bool
	Apply(ctx context.Context, group types.LinkGroup) error
	Remove(ctx context.Context, group types.LinkGroup) error
}

// ValidName reports whether name selects a linker.
func ValidName(name string) bool {
	switch name {
	case NameStow, NameNative, NameAuto:
		return true
	}
	return false
}

// New builds the linker selected by name. "auto" picks stow when it is on
// PATH and the native linker otherwise, deciding again on every call.
func New(name string, r runner.Runner, fsys types.FS, p *paths.Paths, classifier *conflicts.Classifier) (Linker, error) {
	native := NewNativeLinker(fsys, p, classifier)
	switch name {
	case NameNative:
		return native, nil
	case NameStow:
		return NewStowLinker(r, p), nil
	case NameAuto, "":
		return &AutoLinker{stow: NewStowLinker(r, p), native: native}, nil
	}
	return nil, errors.Newf(errors.ErrConfigValid, "unknown link manager %q", name).
		WithDetail("valid", []string{NameStow, NameNative, NameAuto})
}

// AutoLinker delegates to stow once it is installed and to the native
// linker until then. Install puts stow on PATH after the workflow is
// built, so the choice is made per call.
type AutoLinker struct {
	stow   *StowLinker
	native *NativeLinker
}

func (a *AutoLinker) current() Linker {
	if a.stow.Available() {
		return a.stow
	}
	return a.native
}

// Name reports the linker the next call would use.
func (a *AutoLinker) Name() string { return a.current().Name() }

func (a *AutoLinker) Available() bool { return true }

func (a *AutoLinker) Apply(ctx context.Context, group types.LinkGroup) error {
	return a.current().Apply(ctx, group)
}

func (a *AutoLinker) Remove(ctx context.Context, group types.LinkGroup) error {
	return a.current().Remove(ctx, group)
}
