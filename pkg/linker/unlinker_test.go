package linker_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/linker"
	"github.com/arthur-debert/dotstow/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnlinker_UsesPrimaryWhenAvailable(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	fake := &fakeLinker{}

	result, err := linker.NewUnlinker(fake, nativeLinker(env)).Unlink(context.Background(), testutil.StandardGroups())
	require.NoError(t, err)
	assert.Equal(t, "fake", result.Linker)
	assert.Equal(t, []string{"shell", "prompt", "terminal"}, fake.removed)
}

func TestUnlinker_FallbackRemovesOnlyManagedLinks(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SetupStandardPackages()
	env.SymlinkHome(".zshrc", env.RootPath("zsh/.zshrc"))
	env.SymlinkHome(".config/alacritty", env.RootPath("alacritty/.config/alacritty"))
	env.SymlinkHome(".config/starship.toml", "/usr/share/starship.toml")
	env.WriteHomeFile(".zshenv", "mine")

	fake := &fakeLinker{unavailable: true}
	result, err := linker.NewUnlinker(fake, nativeLinker(env)).Unlink(context.Background(), testutil.StandardGroups())
	require.NoError(t, err)
	assert.Equal(t, linker.NameNative, result.Linker)
	assert.Empty(t, fake.removed)

	testutil.AssertNotExists(t, env.HomePath(".zshrc"))
	testutil.AssertNotExists(t, env.HomePath(".config/alacritty"))
	testutil.AssertSymlinkTo(t, env.HomePath(".config/starship.toml"), "/usr/share/starship.toml")
	testutil.AssertFileContent(t, env.HomePath(".zshenv"), "mine")
}

func TestUnlinker_ContinuesPastFailures(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	fake := &fakeLinker{errs: map[string]error{
		"shell":    errors.New(errors.ErrCommand, "stow -D failed"),
		"terminal": errors.New(errors.ErrCommand, "stow -D failed"),
	}}

	result, err := linker.NewUnlinker(fake, nativeLinker(env)).Unlink(context.Background(), testutil.StandardGroups())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnlinkGroup))
	assert.Equal(t, []string{"shell", "prompt", "terminal"}, fake.removed)
	assert.Len(t, result.Failed(), 1, "terminal is optional")
	assert.Len(t, result.Warnings, 1)
}

func TestUnlinker_SweepsNativeLinksAfterPrimary(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SetupStandardPackages()
	// Written by the native linker before stow existed; stow -D ignores them
	env.SymlinkHome(".zshrc", env.RootPath("zsh/.zshrc"))
	env.SymlinkHome(".config/starship.toml", "/usr/share/starship.toml")

	fake := &fakeLinker{}
	result, err := linker.NewUnlinker(fake, nativeLinker(env)).Unlink(context.Background(), testutil.StandardGroups())
	require.NoError(t, err)
	assert.Equal(t, "fake", result.Linker)
	assert.Equal(t, []string{"shell", "prompt", "terminal"}, fake.removed)

	testutil.AssertNotExists(t, env.HomePath(".zshrc"))
	testutil.AssertSymlinkTo(t, env.HomePath(".config/starship.toml"), "/usr/share/starship.toml")
}
