package system

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/filesystem"
	"github.com/arthur-debert/dotstow/pkg/runner"
	"github.com/arthur-debert/dotstow/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newShellChanger runs as user alice. A non-empty loginShell becomes her
// passwd entry; $SHELL always claims bash.
func newShellChanger(t *testing.T, shells string, r *testutil.MockRunner, loginShell string) *ShellChanger {
	t.Helper()
	env := testutil.NewTestEnvironment(t)
	path := filepath.Join(env.TempDir(), "shells")
	if shells != "" {
		env.FS.WriteFile(path, []byte(shells), 0644)
	}
	if loginShell != "" {
		r.On("Run", "getent passwd alice", mock.Anything).
			Return(runner.Result{Stdout: "alice:x:1000:1000:Alice,,,:/home/alice:" + loginShell + "\n"}, nil)
	}
	s := NewShellChanger(filesystem.NewOS(), r, path)
	s.getenv = func(key string) string {
		switch key {
		case "USER":
			return "alice"
		case "SHELL":
			return "/bin/bash"
		}
		return ""
	}
	return s
}

func TestShellChanger_Registered(t *testing.T) {
	s := newShellChanger(t, "# comment\n/bin/sh\n/usr/bin/zsh\n", &testutil.MockRunner{}, "")

	ok, err := s.Registered("/usr/bin/zsh")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Registered("/usr/bin/fish")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShellChanger_SetDefaultRegistersAndChanges(t *testing.T) {
	r := &testutil.MockRunner{}
	var appended string
	r.On("Run", testutil.CommandLine("tee -a"), mock.MatchedBy(func(c runner.Command) bool { return c.Sudo })).
		Run(func(args mock.Arguments) {
			data, _ := io.ReadAll(args.Get(1).(runner.Command).Stdin)
			appended = string(data)
		}).
		Return(runner.Result{}, nil).Once()
	r.On("Run", "chsh -s /usr/bin/zsh", mock.Anything).Return(runner.Result{}, nil).Once()

	s := newShellChanger(t, "/bin/sh\n", r, "/bin/bash")
	require.NoError(t, s.SetDefault(context.Background(), "/usr/bin/zsh"))
	assert.Equal(t, "/usr/bin/zsh\n", appended)
	r.AssertExpectations(t)
}

func TestShellChanger_AlreadyCurrent(t *testing.T) {
	r := &testutil.MockRunner{}
	s := newShellChanger(t, "/usr/bin/zsh\n", r, "/usr/bin/zsh")

	require.NoError(t, s.SetDefault(context.Background(), "/usr/bin/zsh"))
	r.AssertNotCalled(t, "Run", "chsh -s /usr/bin/zsh", mock.Anything)
	r.AssertNotCalled(t, "Run", testutil.CommandLine("tee"), mock.Anything)
}

func TestShellChanger_CurrentReadsPasswdNotSession(t *testing.T) {
	r := &testutil.MockRunner{}
	s := newShellChanger(t, "", r, "/usr/bin/zsh")

	current, err := s.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/zsh", current, "$SHELL says bash but passwd is authoritative")
}

func TestShellChanger_UnknownLoginShellStillChanges(t *testing.T) {
	r := &testutil.MockRunner{}
	r.On("Run", "getent passwd alice", mock.Anything).
		Return(runner.Result{ExitCode: 2}, errors.New(errors.ErrCommand, "getent failed"))
	r.On("Run", "chsh -s /usr/bin/zsh", mock.Anything).Return(runner.Result{}, nil).Once()

	s := newShellChanger(t, "/usr/bin/zsh\n", r, "")
	_, err := s.Current(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrShellChange))

	require.NoError(t, s.SetDefault(context.Background(), "/usr/bin/zsh"))
	r.AssertExpectations(t)
}

func TestShellChanger_MalformedPasswdEntry(t *testing.T) {
	r := &testutil.MockRunner{}
	r.On("Run", "getent passwd alice", mock.Anything).Return(runner.Result{Stdout: "alice:x:1000\n"}, nil)

	_, err := newShellChanger(t, "", r, "").Current(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrShellChange))
}

func TestShellChanger_ChshFailureCarriesManualCommand(t *testing.T) {
	r := &testutil.MockRunner{}
	r.On("Run", "chsh -s /usr/bin/zsh", mock.Anything).
		Return(runner.Result{Stderr: "chsh: PAM: Authentication failure"}, errors.New(errors.ErrCommand, "chsh failed"))

	s := newShellChanger(t, "/usr/bin/zsh\n", r, "/bin/bash")
	err := s.SetDefault(context.Background(), "/usr/bin/zsh")
	assert.True(t, errors.IsErrorCode(err, errors.ErrShellChange))
	assert.Equal(t, "chsh -s /usr/bin/zsh", errors.Remediation(err))
}

func TestShellChanger_Resolve(t *testing.T) {
	r := &testutil.MockRunner{}
	r.On("LookPath", "zsh").Return("/usr/bin/zsh", nil)
	r.On("LookPath", "fish").Return("", errors.New(errors.ErrNotFound, "fish not found"))
	s := newShellChanger(t, "", r, "")

	path, err := s.Resolve("zsh")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/zsh", path)

	_, err = s.Resolve("fish")
	assert.True(t, errors.IsErrorCode(err, errors.ErrShellChange))
}
