package usecase

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/codexlabs/unroller/pkg/domain/model"
	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/codexlabs/unroller/pkg/utils/logging"
	"github.com/codexlabs/unroller/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// Ingest materializes exactly one untrusted source (clone URL or uploaded zip)
// into a scratch workspace, walks it into a bounded tree and file list, and
// removes the workspace on every exit path.
func (x *UseCase) Ingest(ctx context.Context, input *model.IngestInput) (*model.IngestOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	workspace, err := os.MkdirTemp("", "unroller.*")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create scratch workspace")
	}
	defer safe.RemoveAll(workspace)

	rootDir := filepath.Join(workspace, "project")
	if err := os.Mkdir(rootDir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create project directory", goerr.V("dir", rootDir))
	}

	switch {
	case input.Archive != nil:
		if err := x.acquireUpload(ctx, input.Archive, workspace, rootDir); err != nil {
			return nil, err
		}
	case input.RepoURL != nil:
		if err := x.acquireClone(ctx, input.RepoURL, rootDir); err != nil {
			return nil, err
		}
	}

	tree, files, err := collectTree(ctx, rootDir, x.policy)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("ingestion finished",
		"files", len(files),
		"workspace", workspace,
	)

	return &model.IngestOutput{Files: files, Tree: tree}, nil
}

// acquireClone runs the configured Cloner under the wall-clock budget.
func (x *UseCase) acquireClone(ctx context.Context, repo *model.RepoURL, dst string) error {
	ctx, cancel := context.WithTimeout(ctx, x.policy.CloneTimeout)
	defer cancel()

	return x.clients.Cloner().Clone(ctx, repo, dst)
}

// acquireUpload streams the archive to a bounded temp file, then sanitizes and
// extracts it. The stream is aborted the moment the byte ceiling is crossed.
func (x *UseCase) acquireUpload(ctx context.Context, upload *model.ArchiveUpload, workspace, dst string) error {
	if !strings.HasSuffix(strings.ToLower(upload.FileName), ".zip") {
		return goerr.New("upload a .zip archive",
			goerr.T(types.TagInvalidInput),
			goerr.V("filename", upload.FileName),
		)
	}

	zipPath := filepath.Join(workspace, "upload.zip")
	if err := streamToFile(upload.Reader, zipPath, x.policy.MaxArchiveBytes); err != nil {
		return err
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return goerr.Wrap(err, "failed to open zip archive", goerr.T(types.TagArchiveRejected))
	}
	defer safe.Close(zr)

	if err := sanitizeArchive(&zr.Reader, dst, x.policy.MaxExtractBytes); err != nil {
		return err
	}

	logging.From(ctx).Debug("archive sanitized, extracting", "members", len(zr.File))

	return extractArchive(&zr.Reader, dst)
}

// boundedWriter fails fast once the running total crosses the limit, instead
// of buffering an adversarial payload to the end.
type boundedWriter struct {
	w       io.Writer
	written int64
	limit   int64
}

func (x *boundedWriter) Write(p []byte) (int, error) {
	x.written += int64(len(p))
	if x.written > x.limit {
		return 0, goerr.New("zip exceeds allowed size",
			goerr.T(types.TagPayloadTooLarge),
			goerr.V("limit", x.limit),
		)
	}
	return x.w.Write(p)
}

func streamToFile(r io.Reader, path string, maxBytes int64) error {
	fd, err := os.Create(filepath.Clean(path))
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file for upload", goerr.V("path", path))
	}
	defer safe.Close(fd)

	if _, err := io.Copy(&boundedWriter{w: fd, limit: maxBytes}, r); err != nil {
		if goerr.HasTag(err, types.TagPayloadTooLarge) {
			return err
		}
		return goerr.Wrap(err, "failed to write upload stream", goerr.V("path", path))
	}

	return nil
}
