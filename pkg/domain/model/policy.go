package model

import "time"

// DefaultSkipDirs are directory names pruned from every walk: VCS metadata,
// dependency/build output, caches, and editor state.
var DefaultSkipDirs = []string{
	".git",
	"node_modules",
	"__pycache__",
	"build",
	".venv",
	"venv",
	".next",
	"dist",
	"out",
	"coverage",
	".pytest_cache",
	".mypy_cache",
	".ruff_cache",
	".tox",
	".idea",
	".vscode",
	".cache",
}

// Policy is the process-wide ingestion configuration. It is built once at
// startup and passed explicitly into each component; nothing mutates it after.
type Policy struct {
	AllowedGitHosts []string
	SkipDirs        []string

	MaxArchiveBytes int64
	MaxExtractBytes int64
	MaxFileBytes    int64
	MaxTokenChars   int

	CloneTimeout time.Duration

	// Binary sniffing knobs. The heuristic (NUL byte, or too many bytes
	// outside printable+whitespace in a leading sample) is deliberately
	// configurable rather than load-bearing.
	BinarySampleSize int
	BinaryThreshold  float64
}

func DefaultPolicy() Policy {
	return Policy{
		AllowedGitHosts:  []string{"github.com", "www.github.com"},
		SkipDirs:         DefaultSkipDirs,
		MaxArchiveBytes:  50 * 1024 * 1024,
		MaxExtractBytes:  200 * 1024 * 1024,
		MaxFileBytes:     512_000,
		MaxTokenChars:    2_000_000,
		CloneTimeout:     60 * time.Second,
		BinarySampleSize: 1024,
		BinaryThreshold:  0.3,
	}
}

// SkipDirSet returns the skip list as a set for per-segment lookups.
func (x Policy) SkipDirSet() map[string]struct{} {
	set := make(map[string]struct{}, len(x.SkipDirs))
	for _, d := range x.SkipDirs {
		set[d] = struct{}{}
	}
	return set
}
