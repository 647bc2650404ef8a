package gitcli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/codexlabs/unroller/pkg/domain/model"
	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/codexlabs/unroller/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Client clones repositories by invoking the git command. The subprocess
// environment disables terminal prompts, askpass, and interactive SSH so a
// clone can never block on or leak ambient credentials.
type Client struct {
	path string
}

func New(path string) *Client {
	return &Client{path: path}
}

// hardenedEnv extends base with variables that force git to fail fast instead
// of asking for credentials.
func hardenedEnv(base []string) []string {
	env := make([]string, 0, len(base)+3)
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		switch key {
		case "GIT_TERMINAL_PROMPT", "GIT_ASKPASS", "GIT_SSH_COMMAND":
			continue
		}
		env = append(env, kv)
	}
	return append(env,
		"GIT_TERMINAL_PROMPT=0",
		"GIT_ASKPASS=echo",
		"GIT_SSH_COMMAND=ssh -oBatchMode=yes",
	)
}

// Clone runs a depth-1 clone of repo into dst. The caller bounds the operation
// through ctx; exceeding the deadline is reported as a timeout, any other
// non-zero exit as an acquisition failure with the subprocess diagnostics.
// The .git metadata directory is stripped from dst on success.
func (x *Client) Clone(ctx context.Context, repo *model.RepoURL, dst string) error {
	args := []string{"clone", "--depth", "1", repo.CloneURL(), dst}

	cmd := exec.CommandContext(ctx, x.path, args...)
	cmd.Env = hardenedEnv(os.Environ())

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logging.From(ctx).Debug("running git clone", "url", repo.CloneURL(), "dst", dst)

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return goerr.Wrap(err, "git clone timed out",
				goerr.T(types.TagAcquisitionTimeout),
				goerr.V("url", repo.CloneURL()),
			)
		}

		diag := strings.TrimSpace(stderr.String())
		if diag == "" {
			diag = "git clone failed"
		}
		return goerr.Wrap(err, diag,
			goerr.T(types.TagAcquisitionFailed),
			goerr.V("url", repo.CloneURL()),
		)
	}

	if err := os.RemoveAll(filepath.Join(dst, ".git")); err != nil {
		return goerr.Wrap(err, "failed to remove git metadata", goerr.V("dst", dst))
	}

	return nil
}
