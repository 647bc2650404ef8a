package cli

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/codexlabs/unroller/pkg/cli/config"
	"github.com/codexlabs/unroller/pkg/domain/model"
	"github.com/codexlabs/unroller/pkg/infra"
	"github.com/codexlabs/unroller/pkg/usecase"
	"github.com/codexlabs/unroller/pkg/utils/logging"
	"github.com/codexlabs/unroller/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func ingestCommand() *cli.Command {
	var (
		repoURL string
		zipPath string
		output  string

		policy config.Policy
		git    config.Git
	)

	return &cli.Command{
		Name:    "ingest",
		Aliases: []string{"i"},
		Usage:   "One-shot ingestion: unroll a repo URL or local zip and print the JSON result",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "url",
				Aliases:     []string{"u"},
				Usage:       "Repository URL to clone",
				Destination: &repoURL,
			},
			&cli.StringFlag{
				Name:        "zip",
				Aliases:     []string{"z"},
				Usage:       "Path to local zip archive",
				Destination: &zipPath,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output file path (default: stdout)",
				Destination: &output,
			},
		}, policy.Flags(), git.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			cloner, err := git.NewCloner()
			if err != nil {
				return err
			}

			ingestPolicy := policy.Build()
			uc := usecase.New(infra.New(infra.WithCloner(cloner)), ingestPolicy)

			input := &model.IngestInput{}
			if repoURL != "" {
				repo, err := model.ParseRepoURL(repoURL, ingestPolicy.AllowedGitHosts)
				if err != nil {
					return err
				}
				input.RepoURL = repo
			}
			if zipPath != "" {
				fd, err := os.Open(filepath.Clean(zipPath))
				if err != nil {
					return goerr.Wrap(err, "failed to open zip file", goerr.V("path", zipPath))
				}
				defer safe.Close(fd)
				input.Archive = &model.ArchiveUpload{
					FileName: filepath.Base(zipPath),
					Reader:   fd,
				}
			}

			result, err := uc.Ingest(ctx, input)
			if err != nil {
				return err
			}

			w := os.Stdout
			if output != "" {
				fd, err := os.Create(filepath.Clean(output))
				if err != nil {
					return goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
				}
				defer safe.Close(fd)
				w = fd
			}

			encoder := json.NewEncoder(w)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(result); err != nil {
				return goerr.Wrap(err, "failed to encode result")
			}

			logging.From(ctx).Info("ingestion done",
				slog.Int("files", len(result.Files)),
			)

			return nil
		},
	}
}
