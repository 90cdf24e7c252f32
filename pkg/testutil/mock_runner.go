package testutil

import (
	"context"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/runner"
	"github.com/stretchr/testify/mock"
)

// MockRunner implements runner.Runner with testify/mock. Expectations are
// keyed by the full command line, e.g. On("Run", "stow -D zsh").
type MockRunner struct {
	mock.Mock
}

// Run records the call as the command line string plus the Command itself.
func (m *MockRunner) Run(ctx context.Context, cmd runner.Command) (runner.Result, error) {
	args := m.Called(cmd.String(), cmd)
	return args.Get(0).(runner.Result), args.Error(1)
}

func (m *MockRunner) LookPath(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

// CommandLine matches a Run call by a prefix of its command line.
func CommandLine(prefix string) interface{} {
	return mock.MatchedBy(func(line string) bool {
		return strings.HasPrefix(line, prefix)
	})
}
