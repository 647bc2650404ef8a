package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/codexlabs/unroller/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Policy collects the ingestion limits from flags/env and builds the
// immutable model.Policy passed into every component at startup.
type Policy struct {
	allowedGitHosts  string
	extraSkipDirs    string
	maxArchiveBytes  int64
	maxExtractBytes  int64
	maxFileBytes     int64
	maxTokenChars    int64
	cloneTimeout     time.Duration
	binarySampleSize int64
	binaryThreshold  float64
}

func (x *Policy) Flags() []cli.Flag {
	defaults := model.DefaultPolicy()

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "allowed-git-hosts",
			Usage:       "Comma-separated allow-list of git hosts",
			Category:    "Ingestion policy",
			Value:       strings.Join(defaults.AllowedGitHosts, ","),
			Sources:     cli.EnvVars("UNROLLER_ALLOWED_GIT_HOSTS"),
			Destination: &x.allowedGitHosts,
		},
		&cli.StringFlag{
			Name:        "extra-skip-dirs",
			Usage:       "Comma-separated directory names to prune in addition to the defaults",
			Category:    "Ingestion policy",
			Sources:     cli.EnvVars("UNROLLER_EXTRA_SKIP_DIRS"),
			Destination: &x.extraSkipDirs,
		},
		&cli.Int64Flag{
			Name:        "max-archive-bytes",
			Usage:       "Max accepted zip upload size in bytes",
			Category:    "Ingestion policy",
			Value:       defaults.MaxArchiveBytes,
			Sources:     cli.EnvVars("UNROLLER_MAX_ARCHIVE_BYTES"),
			Destination: &x.maxArchiveBytes,
		},
		&cli.Int64Flag{
			Name:        "max-extract-bytes",
			Usage:       "Max total declared size of extracted archive members in bytes",
			Category:    "Ingestion policy",
			Value:       defaults.MaxExtractBytes,
			Sources:     cli.EnvVars("UNROLLER_MAX_EXTRACT_BYTES"),
			Destination: &x.maxExtractBytes,
		},
		&cli.Int64Flag{
			Name:        "max-file-bytes",
			Usage:       "Per-file content ceiling in bytes",
			Category:    "Ingestion policy",
			Value:       defaults.MaxFileBytes,
			Sources:     cli.EnvVars("UNROLLER_MAX_FILE_BYTES"),
			Destination: &x.maxFileBytes,
		},
		&cli.Int64Flag{
			Name:        "max-token-chars",
			Usage:       "Max text length accepted by the token counting endpoint",
			Category:    "Ingestion policy",
			Value:       int64(defaults.MaxTokenChars),
			Sources:     cli.EnvVars("UNROLLER_MAX_TOKEN_CHARS"),
			Destination: &x.maxTokenChars,
		},
		&cli.DurationFlag{
			Name:        "clone-timeout",
			Usage:       "Wall-clock budget for git clone",
			Category:    "Ingestion policy",
			Value:       defaults.CloneTimeout,
			Sources:     cli.EnvVars("UNROLLER_CLONE_TIMEOUT"),
			Destination: &x.cloneTimeout,
		},
		&cli.Int64Flag{
			Name:        "binary-sample-bytes",
			Usage:       "Leading sample size for binary detection",
			Category:    "Ingestion policy",
			Value:       int64(defaults.BinarySampleSize),
			Sources:     cli.EnvVars("UNROLLER_BINARY_SAMPLE_BYTES"),
			Destination: &x.binarySampleSize,
		},
		&cli.Float64Flag{
			Name:        "binary-threshold",
			Usage:       "Max fraction of non-printable bytes in the sample before a file counts as binary",
			Category:    "Ingestion policy",
			Value:       defaults.BinaryThreshold,
			Sources:     cli.EnvVars("UNROLLER_BINARY_THRESHOLD"),
			Destination: &x.binaryThreshold,
		},
	}
}

func (x Policy) Build() model.Policy {
	policy := model.DefaultPolicy()

	if hosts := splitList(x.allowedGitHosts); len(hosts) > 0 {
		policy.AllowedGitHosts = hosts
	}
	policy.SkipDirs = append(policy.SkipDirs, splitList(x.extraSkipDirs)...)
	policy.MaxArchiveBytes = x.maxArchiveBytes
	policy.MaxExtractBytes = x.maxExtractBytes
	policy.MaxFileBytes = x.maxFileBytes
	policy.MaxTokenChars = int(x.maxTokenChars)
	policy.CloneTimeout = x.cloneTimeout
	policy.BinarySampleSize = int(x.binarySampleSize)
	policy.BinaryThreshold = x.binaryThreshold

	return policy
}

func (x Policy) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("AllowedGitHosts", x.allowedGitHosts),
		slog.Int64("MaxArchiveBytes", x.maxArchiveBytes),
		slog.Int64("MaxExtractBytes", x.maxExtractBytes),
		slog.Int64("MaxFileBytes", x.maxFileBytes),
		slog.Int64("MaxTokenChars", x.maxTokenChars),
		slog.Duration("CloneTimeout", x.cloneTimeout),
	)
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
