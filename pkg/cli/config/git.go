package config

import (
	"log/slog"

	"github.com/codexlabs/unroller/pkg/domain/interfaces"
	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/codexlabs/unroller/pkg/infra/gitcli"
	"github.com/codexlabs/unroller/pkg/infra/gitnative"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Git selects the clone mechanism: the hardened git subprocess (default) or
// the go-git implementation for hosts without a git binary.
type Git struct {
	mode string
	path string
}

func (x *Git) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "git-mode",
			Usage:       "Clone mechanism [cli|native]",
			Category:    "Git",
			Value:       "cli",
			Sources:     cli.EnvVars("UNROLLER_GIT_MODE"),
			Destination: &x.mode,
		},
		&cli.StringFlag{
			Name:        "git-path",
			Usage:       "Path to git binary (cli mode)",
			Category:    "Git",
			Value:       "git",
			Sources:     cli.EnvVars("UNROLLER_GIT_PATH"),
			Destination: &x.path,
		},
	}
}

func (x Git) NewCloner() (interfaces.Cloner, error) {
	switch x.mode {
	case "cli":
		return gitcli.New(x.path), nil
	case "native":
		return gitnative.New(), nil
	default:
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid git mode, should be 'cli' or 'native'", goerr.V("value", x.mode))
	}
}

func (x Git) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Mode", x.mode),
		slog.String("Path", x.path),
	)
}
