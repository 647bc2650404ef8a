package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/codexlabs/unroller/pkg/cli/config"
	"github.com/codexlabs/unroller/pkg/controller/server"
	"github.com/codexlabs/unroller/pkg/infra"
	"github.com/codexlabs/unroller/pkg/usecase"
	"github.com/codexlabs/unroller/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr    string
		origins string

		policy config.Policy
		git    config.Git
		sentry config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("UNROLLER_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "allowed-origins",
			Usage:       "Comma-separated CORS origins",
			Value:       "http://localhost:3000,http://127.0.0.1:3000",
			Sources:     cli.EnvVars("UNROLLER_ALLOWED_ORIGINS"),
			Destination: &origins,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			policy.Flags(),
			git.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("Policy", policy),
				slog.Any("Git", git),
				slog.Any("Sentry", sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			cloner, err := git.NewCloner()
			if err != nil {
				return err
			}

			clients := infra.New(infra.WithCloner(cloner))
			ingestPolicy := policy.Build()

			uc := usecase.New(clients, ingestPolicy)
			s := server.New(uc, ingestPolicy, server.WithAllowedOrigins(splitOrigins(origins)))

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       5 * time.Minute,
				WriteTimeout:      5 * time.Minute,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
