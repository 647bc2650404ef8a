package gitnative

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/codexlabs/unroller/pkg/domain/model"
	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"
)

// Client clones repositories with go-git instead of shelling out. Useful for
// environments without a git binary; behavior matches the subprocess client.
type Client struct{}

func New() *Client {
	return &Client{}
}

func (x *Client) Clone(ctx context.Context, repo *model.RepoURL, dst string) error {
	_, err := git.PlainCloneContext(ctx, dst, false, &git.CloneOptions{
		URL:          repo.CloneURL(),
		Depth:        1,
		SingleBranch: true,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return goerr.Wrap(err, "git clone timed out",
				goerr.T(types.TagAcquisitionTimeout),
				goerr.V("url", repo.CloneURL()),
			)
		}
		return goerr.Wrap(err, "git clone failed",
			goerr.T(types.TagAcquisitionFailed),
			goerr.V("url", repo.CloneURL()),
		)
	}

	if err := os.RemoveAll(filepath.Join(dst, ".git")); err != nil {
		return goerr.Wrap(err, "failed to remove git metadata", goerr.V("dst", dst))
	}

	return nil
}
