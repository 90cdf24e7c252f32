// pkg/linker/native_test.go
// TEST TYPE: Integration (real symlinks in temp dir)
// DEPENDENCIES: testutil
// PURPOSE: Two-phase native linking never overwrites and unlinks only managed links

package linker_test

import (
	"context"
	"os"
	"testing"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeLinker_ApplyStandardGroups(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SetupStandardPackages()
	n := nativeLinker(env)
	ctx := context.Background()

	for _, g := range testutil.StandardGroups() {
		require.NoError(t, n.Apply(ctx, g), g.Name)
	}

	testutil.AssertSymlinkTo(t, env.HomePath(".zshrc"), env.RootPath("zsh/.zshrc"))
	testutil.AssertSymlinkTo(t, env.HomePath(".zprofile"), env.RootPath("zsh/.zprofile"))
	testutil.AssertSymlinkTo(t, env.HomePath(".config/starship.toml"), env.RootPath("starship/.config/starship.toml"))

	// Absent directory target is linked as a whole
	testutil.AssertSymlinkTo(t, env.HomePath(".config/alacritty"), env.RootPath("alacritty/.config/alacritty"))
	testutil.AssertFileContent(t, env.HomePath(".config/alacritty/alacritty.toml"), "[font]\nsize = 11\n")

	for _, g := range testutil.StandardGroups() {
		assert.NoError(t, verifier(env).Verify(g), g.Name)
	}
}

func TestNativeLinker_ApplyIsIdempotent(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SetupStandardPackages()
	n := nativeLinker(env)

	require.NoError(t, n.Apply(context.Background(), groupByName("shell")))
	require.NoError(t, n.Apply(context.Background(), groupByName("shell")))
	testutil.AssertSymlinkTo(t, env.HomePath(".zshrc"), env.RootPath("zsh/.zshrc"))
}

func TestNativeLinker_RefusesToOverwrite(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SetupStandardPackages()
	env.WriteHomeFile(".zprofile", "mine")

	err := nativeLinker(env).Apply(context.Background(), groupByName("shell"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkGroup))
	assert.Contains(t, err.Error(), ".zprofile")

	// Nothing linked: the check happens before any link is made
	testutil.AssertNotExists(t, env.HomePath(".zshrc"))
	testutil.AssertFileContent(t, env.HomePath(".zprofile"), "mine")
}

func TestNativeLinker_RealDirectoryGetsFileLinks(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SetupStandardPackages()
	env.WriteHomeFile(".config/alacritty/themes.toml", "kept")

	require.NoError(t, nativeLinker(env).Apply(context.Background(), groupByName("terminal")))

	testutil.AssertSymlinkTo(t, env.HomePath(".config/alacritty/alacritty.toml"), env.RootPath("alacritty/.config/alacritty/alacritty.toml"))
	testutil.AssertFileContent(t, env.HomePath(".config/alacritty/themes.toml"), "kept")
	testutil.AssertNotExists(t, env.HomePath(".config/alacritty/alacritty.yml"))
	assert.NoError(t, verifier(env).Verify(groupByName("terminal")))
}

func TestNativeLinker_RemoveOnlyManagedLinks(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SetupStandardPackages()
	n := nativeLinker(env)
	ctx := context.Background()

	require.NoError(t, n.Apply(ctx, groupByName("terminal")))
	env.SymlinkHome(".zshrc", env.RootPath("zsh/.zshrc"))
	env.SymlinkHome(".zshenv", "/etc/zsh/zshenv")
	env.WriteHomeFile(".zprofile", "mine")

	require.NoError(t, n.Remove(ctx, groupByName("shell")))
	require.NoError(t, n.Remove(ctx, groupByName("terminal")))

	testutil.AssertNotExists(t, env.HomePath(".zshrc"))
	testutil.AssertNotExists(t, env.HomePath(".config/alacritty"))
	testutil.AssertSymlinkTo(t, env.HomePath(".zshenv"), "/etc/zsh/zshenv")
	testutil.AssertFileContent(t, env.HomePath(".zprofile"), "mine")

	// Sources are untouched
	testutil.AssertFileContent(t, env.RootPath("zsh/.zshrc"), "# managed zshrc\n")
	_, err := os.Stat(env.RootPath("alacritty/.config/alacritty/alacritty.toml"))
	assert.NoError(t, err)
}

func TestNativeLinker_RemoveFailure(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.SetupStandardPackages()
	link := env.SymlinkHome(".zshrc", env.RootPath("zsh/.zshrc"))

	ffs := testutil.NewFaultFS(env.FS).Fail(testutil.OpRemove, link, os.ErrPermission)
	n := linkerWithFS(env, ffs)

	err := n.Remove(context.Background(), groupByName("shell"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnlinkGroup))
}
