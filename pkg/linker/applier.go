package linker

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// GroupResult is the outcome for one group.
type GroupResult struct {
	Group types.LinkGroup
	Err   error
}

// OK reports whether the group succeeded.
func (g GroupResult) OK() bool { return g.Err == nil }

// Result collects per-group outcomes of Apply or Unlink.
type Result struct {
	// Linker is the name of the linker that did the work.
	Linker   string
	Groups   []GroupResult
	Warnings []string
}

// Failed returns the mandatory groups that failed.
func (r *Result) Failed() []GroupResult {
	var failed []GroupResult
	for _, g := range r.Groups {
		if g.Err != nil && !g.Group.Optional {
			failed = append(failed, g)
		}
	}
	return failed
}

// Applier links groups one at a time.
type Applier struct {
	linker   Linker
	verifier *Verifier
	fs       types.FS
	paths    *paths.Paths
	strict   bool
	logger   zerolog.Logger
}

// NewApplier creates an Applier. In strict mode Apply stops at the first
// mandatory group that fails; otherwise every group is attempted.
func NewApplier(l Linker, v *Verifier, fsys types.FS, p *paths.Paths, strict bool) *Applier {
	return &Applier{
		linker:   l,
		verifier: v,
		fs:       fsys,
		paths:    p,
		strict:   strict,
		logger:   logging.GetLogger("linker.applier"),
	}
}

// Apply links every group and verifies the result. Optional group failures
// become warnings. Mandatory failures are LINK_GROUP or LINK_VERIFY errors;
// several are joined into one LINK_GROUP error.
func (a *Applier) Apply(ctx context.Context, groups []types.LinkGroup) (*Result, error) {
	done := logging.LogOperationStart(a.logger, "link apply")
	defer done()

	result := &Result{Linker: a.linker.Name()}
	if !a.linker.Available() {
		return result, errors.Newf(errors.ErrLinkGroup, "%s is not available", a.linker.Name()).
			WithRemediation("sudo apt-get install -y stow")
	}

	var errs []error
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := a.applyGroup(ctx, group)
		result.Groups = append(result.Groups, GroupResult{Group: group, Err: err})
		if err == nil {
			continue
		}

		if group.Optional {
			result.Warnings = append(result.Warnings, err.Error())
			a.logger.Warn().Err(err).Str("group", group.Name).Msg("Optional group failed to link")
			continue
		}

		a.logger.Error().Err(err).Str("group", group.Name).Msg("Group failed to link")
		errs = append(errs, err)
		if a.strict {
			return result, err
		}
	}

	return result, joinGroupErrors(errors.ErrLinkGroup, "link", result, errs)
}

func (a *Applier) applyGroup(ctx context.Context, group types.LinkGroup) error {
	pkgDir := a.paths.PackagePath(group.Package)
	if info, err := a.fs.Stat(pkgDir); err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrLinkGroup, "group %s: package directory %s not found", group.Name, pkgDir).
			WithDetail("group", group.Name)
	}

	if err := a.linker.Apply(ctx, group); err != nil {
		if errors.GetErrorCode(err) == errors.ErrLinkGroup {
			return err
		}
		return errors.Wrapf(err, errors.ErrLinkGroup, "failed to link group %s", group.Name).
			WithDetail("group", group.Name)
	}
	return a.verifier.Verify(group)
}

// joinGroupErrors returns nil, the only error, or one coded error wrapping
// all of them.
func joinGroupErrors(code errors.ErrorCode, verb string, result *Result, errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}

	var names []string
	for _, g := range result.Failed() {
		names = append(names, g.Group.Name)
	}
	return errors.Wrapf(stderrors.Join(errs...), code, "%d groups failed to %s: %s", len(errs), verb, strings.Join(names, ", ")).
		WithDetail("groups", names)
}
