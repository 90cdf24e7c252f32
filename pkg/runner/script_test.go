package runner

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptRunner_Builtins(t *testing.T) {
	result, err := NewScriptRunner().Run(context.Background(), Script{
		Name:   "greet",
		Source: `name=world; echo "hello $name from $DOTSTOW_TEST_VAR"`,
		Env:    []string{"DOTSTOW_TEST_VAR=env"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world from env\n", result.Stdout)
}

func TestScriptRunner_Pipeline(t *testing.T) {
	dir := t.TempDir()
	result, err := NewScriptRunner().Run(context.Background(), Script{
		Name:   "pipe",
		Source: `printf 'line\n' | sh -c 'read x; echo "got $x"'; pwd`,
		Dir:    dir,
	})
	require.NoError(t, err)
	assert.Equal(t, "got line\n"+dir+"\n", result.Stdout)
}

func TestScriptRunner_ExitStatus(t *testing.T) {
	result, err := NewScriptRunner().Run(context.Background(), Script{
		Name:   "fail",
		Source: "echo 'download failed' >&2\nexit 4",
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommand))
	assert.Equal(t, 4, result.ExitCode)
	assert.Contains(t, err.Error(), "download failed")
}

func TestScriptRunner_ParseError(t *testing.T) {
	r := NewScriptRunner()
	bad := Script{Name: "bad", Source: "if then fi"}

	assert.True(t, errors.IsErrorCode(r.Validate(bad), errors.ErrInvalidInput))

	_, err := r.Run(context.Background(), bad)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	assert.NoError(t, r.Validate(Script{Name: "ok", Source: "curl -fsSL https://example.invalid | sh -s -- -y"}))
}
