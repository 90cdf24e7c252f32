package system_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/runner"
	"github.com/arthur-debert/dotstow/pkg/system"
	"github.com/arthur-debert/dotstow/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApt_InstallUsesSudoAndNonInteractive(t *testing.T) {
	r := &testutil.MockRunner{}
	r.On("Run", "apt-get install -y zsh stow", mock.MatchedBy(func(c runner.Command) bool {
		return c.Sudo && len(c.Env) == 1 && c.Env[0] == "DEBIAN_FRONTEND=noninteractive"
	})).Return(runner.Result{}, nil)

	require.NoError(t, system.NewApt(r).Install(context.Background(), "zsh", "stow"))
	r.AssertExpectations(t)
}

func TestApt_InstallNothing(t *testing.T) {
	r := &testutil.MockRunner{}
	assert.NoError(t, system.NewApt(r).Install(context.Background()))
	r.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestApt_Failures(t *testing.T) {
	r := &testutil.MockRunner{}
	r.On("Run", mock.Anything, mock.Anything).
		Return(runner.Result{Stderr: "E: Unable to locate package zsh"}, errors.New(errors.ErrCommand, "apt-get failed"))
	apt := system.NewApt(r)

	err := apt.Install(context.Background(), "zsh")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageInstall))
	assert.Equal(t, "sudo apt-get install -y zsh", errors.Remediation(err))

	err = apt.Update(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageInstall))
}

func TestApt_InstalledAndMissing(t *testing.T) {
	r := &testutil.MockRunner{}
	r.On("Run", "dpkg-query -W -f=${Status} zsh", mock.Anything).
		Return(runner.Result{Stdout: "install ok installed"}, nil)
	r.On("Run", "dpkg-query -W -f=${Status} stow", mock.Anything).
		Return(runner.Result{Stdout: "deinstall ok config-files"}, nil)
	r.On("Run", "dpkg-query -W -f=${Status} fontconfig", mock.Anything).
		Return(runner.Result{ExitCode: 1}, errors.New(errors.ErrCommand, "no packages found"))

	apt := system.NewApt(r)
	assert.True(t, apt.Installed(context.Background(), "zsh"))
	assert.False(t, apt.Installed(context.Background(), "stow"))
	assert.Equal(t, []string{"stow", "fontconfig"},
		system.Missing(context.Background(), apt, []string{"zsh", "stow", "fontconfig"}))
}
