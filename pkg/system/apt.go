package system

import (
	"context"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/runner"
	"github.com/rs/zerolog"
)

// PackageManager installs distribution packages.
type PackageManager interface {
	Update(ctx context.Context) error
	Install(ctx context.Context, names ...string) error
	Installed(ctx context.Context, name string) bool
}

var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// Apt drives apt-get and dpkg-query.
type Apt struct {
	runner runner.Runner
	logger zerolog.Logger
}

// NewApt creates an Apt package manager.
func NewApt(r runner.Runner) *Apt {
	return &Apt{runner: r, logger: logging.GetLogger("system.apt")}
}

// Update refreshes the package index.
func (a *Apt) Update(ctx context.Context) error {
	_, err := a.runner.Run(ctx, runner.Command{
		Name: "apt-get",
		Args: []string{"update"},
		Env:  aptEnv,
		Sudo: true,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrPackageInstall, "failed to update package index").
			WithRemediation("sudo apt-get update")
	}
	return nil
}

// Install installs names in one apt-get call.
func (a *Apt) Install(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	a.logger.Info().Strs("packages", names).Msg("Installing packages")

	_, err := a.runner.Run(ctx, runner.Command{
		Name: "apt-get",
		Args: append([]string{"install", "-y"}, names...),
		Env:  aptEnv,
		Sudo: true,
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrPackageInstall, "failed to install %s", strings.Join(names, " ")).
			WithDetail("packages", names).
			WithRemediation("sudo apt-get install -y " + strings.Join(names, " "))
	}
	return nil
}

// Installed asks dpkg whether name is installed.
func (a *Apt) Installed(ctx context.Context, name string) bool {
	result, err := a.runner.Run(ctx, runner.Command{
		Name: "dpkg-query",
		Args: []string{"-W", "-f=${Status}", name},
	})
	if err != nil {
		return false
	}
	return strings.Contains(result.Stdout, "install ok installed")
}

// Missing returns the names that are not installed, in order.
func Missing(ctx context.Context, pm PackageManager, names []string) []string {
	var missing []string
	for _, name := range names {
		if !pm.Installed(ctx, name) {
			missing = append(missing, name)
		}
	}
	return missing
}
