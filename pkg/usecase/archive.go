package usecase

import (
	"archive/zip"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/codexlabs/unroller/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// sanitizeArchive validates every member of the archive before a single byte
// is extracted. Rejections: symlink members, paths resolving outside dst, and
// declared uncompressed sizes summing above maxTotalBytes. Checking declared
// sizes up front keeps a zip bomb from partially writing to disk.
func sanitizeArchive(zr *zip.Reader, dst string, maxTotalBytes int64) error {
	root := filepath.Clean(dst)

	var total int64
	for _, f := range zr.File {
		if f.Mode()&fs.ModeSymlink != 0 {
			return goerr.New("zip contains symlinks",
				goerr.T(types.TagArchiveRejected),
				goerr.V("member", f.Name),
			)
		}

		// Absolute names must be caught before Join cleans them into a
		// path under root.
		if !filepath.IsLocal(f.Name) {
			return goerr.New("zip contains invalid paths",
				goerr.T(types.TagArchiveRejected),
				goerr.V("member", f.Name),
			)
		}

		target := filepath.Join(root, f.Name)
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return goerr.New("zip contains invalid paths",
				goerr.T(types.TagArchiveRejected),
				goerr.V("member", f.Name),
			)
		}

		if f.UncompressedSize64 > math.MaxInt64 {
			return goerr.New("zip contains invalid file size",
				goerr.T(types.TagArchiveRejected),
				goerr.V("member", f.Name),
			)
		}

		size := int64(f.UncompressedSize64)
		if total > maxTotalBytes-size {
			return goerr.New("zip exceeds allowed total size",
				goerr.T(types.TagArchiveRejected),
				goerr.V("limit", maxTotalBytes),
			)
		}
		total += size
	}

	return nil
}

// extractArchive writes all members of a sanitized archive under dst. Member
// content is truncated at the declared size so a lying header cannot expand
// past what sanitization accounted for.
func extractArchive(zr *zip.Reader, dst string) error {
	for _, f := range zr.File {
		if err := extractMember(f, dst); err != nil {
			return err
		}
	}
	return nil
}

func extractMember(f *zip.File, dst string) error {
	fpath := filepath.Join(dst, f.Name)

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(fpath, 0o755); err != nil {
			return goerr.Wrap(err, "failed to create directory", goerr.V("path", fpath))
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(fpath), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create directory", goerr.V("path", fpath))
	}

	// #nosec
	out, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode().Perm())
	if err != nil {
		return goerr.Wrap(err, "failed to open file", goerr.V("path", fpath))
	}
	defer safe.Close(out)

	rc, err := f.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open zip entry", goerr.V("member", f.Name))
	}
	defer safe.Close(rc)

	if _, err := io.Copy(out, io.LimitReader(rc, int64(f.UncompressedSize64))); err != nil {
		return goerr.Wrap(err, "failed to copy file content", goerr.V("member", f.Name))
	}

	return nil
}
