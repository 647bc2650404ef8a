package usecase

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codexlabs/unroller/pkg/domain/model"
	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/codexlabs/unroller/pkg/utils/logging"
	"github.com/codexlabs/unroller/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// maxWalkDepth caps traversal of pathologically deep trees.
const maxWalkDepth = 64

type collector struct {
	skipDirs     map[string]struct{}
	maxFileBytes int64
	sampleSize   int
	threshold    float64
}

func newCollector(policy model.Policy) *collector {
	return &collector{
		skipDirs:     policy.SkipDirSet(),
		maxFileBytes: policy.MaxFileBytes,
		sampleSize:   policy.BinarySampleSize,
		threshold:    policy.BinaryThreshold,
	}
}

// collectTree walks root depth-first and returns the hierarchical tree plus
// the flat file list sorted by path. Output ordering is deterministic
// regardless of the underlying filesystem enumeration order.
func collectTree(ctx context.Context, root string, policy model.Policy) ([]*model.TreeNode, []*model.FileRecord, error) {
	c := newCollector(policy)

	tree, files, err := c.collect(ctx, root, "", 0)
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return tree, files, nil
}

func (x *collector) collect(ctx context.Context, dir, rel string, depth int) ([]*model.TreeNode, []*model.FileRecord, error) {
	if depth > maxWalkDepth {
		logging.From(ctx).Warn("directory tree exceeds depth cap, pruning", "path", rel, "depth", depth)
		return nil, nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to read directory", goerr.V("dir", dir))
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	nodes := []*model.TreeNode{}
	files := []*model.FileRecord{}

	for _, entry := range entries {
		name := entry.Name()
		if _, ok := x.skipDirs[name]; ok {
			continue
		}

		// Symlinks are never followed or recorded: they could escape the
		// workspace root or cycle.
		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}

		nodePath := path.Join(rel, name)

		switch {
		case entry.IsDir():
			children, childFiles, err := x.collect(ctx, filepath.Join(dir, name), nodePath, depth+1)
			if err != nil {
				return nil, nil, err
			}
			if children == nil {
				children = []*model.TreeNode{}
			}
			nodes = append(nodes, &model.TreeNode{
				Name:     name,
				Path:     nodePath,
				Type:     types.NodeTypeDirectory,
				Children: children,
			})
			files = append(files, childFiles...)

		case entry.Type().IsRegular():
			record := x.classifyFile(ctx, filepath.Join(dir, name), nodePath, entry)
			files = append(files, record)
			nodes = append(nodes, &model.TreeNode{
				Name: name,
				Path: nodePath,
				Type: types.NodeTypeFile,
			})
		}
	}

	return nodes, files, nil
}

func markOmitted(record *model.FileRecord, reason types.OmitReason) {
	record.Omitted = true
	record.OmittedReason = &reason
}

// classifyFile produces the FileRecord for one regular file. A failure on one
// file never aborts the walk: unreadable files are recorded as binary.
func (x *collector) classifyFile(ctx context.Context, fsPath, nodePath string, entry fs.DirEntry) *model.FileRecord {
	record := &model.FileRecord{Path: nodePath}

	info, err := entry.Info()
	if err != nil {
		logging.From(ctx).Warn("failed to stat file, recording as binary", "path", nodePath, "error", err)
		markOmitted(record, types.OmitReasonBinary)
		return record
	}
	record.Size = info.Size()

	if x.isBinaryFile(fsPath) {
		markOmitted(record, types.OmitReasonBinary)
		return record
	}

	if record.Size > x.maxFileBytes {
		markOmitted(record, types.OmitReasonLarge)
		return record
	}

	data, err := os.ReadFile(filepath.Clean(fsPath))
	if err != nil {
		logging.From(ctx).Warn("failed to read file, recording as binary", "path", nodePath, "error", err)
		markOmitted(record, types.OmitReasonBinary)
		return record
	}

	content := string(bytes.ToValidUTF8(data, []byte("�")))
	record.Content = &content
	return record
}

// isBinaryFile samples the leading bytes of the file: a NUL byte, or more than
// threshold of the sample outside the printable+whitespace set, classifies it
// as binary. Unreadable files count as binary.
func (x *collector) isBinaryFile(fsPath string) bool {
	fd, err := os.Open(filepath.Clean(fsPath))
	if err != nil {
		return true
	}
	defer safe.Close(fd)

	sample := make([]byte, x.sampleSize)
	n, err := io.ReadFull(fd, sample)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return true
	}
	if n == 0 {
		return false
	}
	sample = sample[:n]

	if bytes.IndexByte(sample, 0x00) >= 0 {
		return true
	}

	nonText := 0
	for _, b := range sample {
		if (b < 0x20 || b >= 0x7f) && b != '\t' && b != '\n' && b != '\r' {
			nonText++
		}
	}
	return float64(nonText)/float64(n) > x.threshold
}
