package linker

import (
	"context"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// Unlinker removes the links of every group.
type Unlinker struct {
	primary  Linker
	fallback *NativeLinker
	logger   zerolog.Logger
}

// NewUnlinker uses primary when it is available and fallback otherwise.
// The fallback only removes symlinks that point into the managed root, and
// also sweeps up after primary: links written by the native linker before
// stow was installed are not removed by stow -D.
func NewUnlinker(primary Linker, fallback *NativeLinker) *Unlinker {
	return &Unlinker{
		primary:  primary,
		fallback: fallback,
		logger:   logging.GetLogger("linker.unlinker"),
	}
}

// Unlink removes each group independently. Failures of mandatory groups
// are UNLINK_GROUP errors; every group is attempted.
func (u *Unlinker) Unlink(ctx context.Context, groups []types.LinkGroup) (*Result, error) {
	done := logging.LogOperationStart(u.logger, "unlink")
	defer done()

	l := u.primary
	if !l.Available() {
		u.logger.Warn().
			Str("linker", l.Name()).
			Msg("Link manager not available, removing managed symlinks directly")
		l = u.fallback
	}

	result := &Result{Linker: l.Name()}
	var errs []error
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := l.Remove(ctx, group)
		if l.Name() != NameNative {
			if sweepErr := u.fallback.Remove(ctx, group); err == nil {
				err = sweepErr
			}
		}
		if err != nil && errors.GetErrorCode(err) != errors.ErrUnlinkGroup {
			err = errors.Wrapf(err, errors.ErrUnlinkGroup, "failed to unlink group %s", group.Name)
		}
		result.Groups = append(result.Groups, GroupResult{Group: group, Err: err})
		if err == nil {
			continue
		}

		if group.Optional {
			result.Warnings = append(result.Warnings, err.Error())
			u.logger.Warn().Err(err).Str("group", group.Name).Msg("Optional group failed to unlink")
			continue
		}
		u.logger.Error().Err(err).Str("group", group.Name).Msg("Group failed to unlink")
		errs = append(errs, err)
	}

	return result, joinGroupErrors(errors.ErrUnlinkGroup, "unlink", result, errs)
}
