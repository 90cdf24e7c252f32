package system

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/runner"
	"github.com/rs/zerolog"
)

// ScriptExecutor runs shell scripts; runner.ScriptRunner implements it.
type ScriptExecutor interface {
	Run(ctx context.Context, script runner.Script) (runner.Result, error)
}

// PromptInstaller installs the starship prompt with its install script.
type PromptInstaller struct {
	runner  runner.Runner
	scripts ScriptExecutor
	binary  string
	url     string
	binDir  string
	logger  zerolog.Logger
}

// NewPromptInstaller creates a PromptInstaller. binDir may be empty to let
// the install script choose.
func NewPromptInstaller(r runner.Runner, scripts ScriptExecutor, binary, url, binDir string) *PromptInstaller {
	return &PromptInstaller{
		runner:  r,
		scripts: scripts,
		binary:  binary,
		url:     url,
		binDir:  binDir,
		logger:  logging.GetLogger("system.prompt"),
	}
}

// Installed reports whether the prompt binary is on PATH.
func (p *PromptInstaller) Installed() bool {
	_, err := p.runner.LookPath(p.binary)
	return err == nil
}

// Script returns the install pipeline.
func (p *PromptInstaller) Script() runner.Script {
	src := fmt.Sprintf("curl -fsSL %q | sh -s -- -y", p.url)
	if p.binDir != "" {
		src += fmt.Sprintf(" -b %q", p.binDir)
	}
	return runner.Script{Name: p.binary + "-install", Source: src}
}

// Ensure installs the prompt unless it is already on PATH. It reports
// whether anything was installed.
func (p *PromptInstaller) Ensure(ctx context.Context) (bool, error) {
	if p.Installed() {
		p.logger.Info().Str("binary", p.binary).Msg("Prompt already installed")
		return false, nil
	}

	if _, err := p.scripts.Run(ctx, p.Script()); err != nil {
		return false, errors.Wrapf(err, errors.ErrPromptInstall, "failed to install %s", p.binary).
			WithRemediation(p.Script().Source)
	}
	p.logger.Info().Str("binary", p.binary).Msg("Prompt installed")
	return true, nil
}
