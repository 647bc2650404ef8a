package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/codexlabs/unroller/pkg/domain/interfaces"
	"github.com/codexlabs/unroller/pkg/domain/model"
	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/codexlabs/unroller/pkg/utils/safe"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/m-mizutani/goerr/v2"
)

// multipartOverhead covers boundary markers and non-file fields when bounding
// the request body around the archive ceiling.
const multipartOverhead = 1024 * 1024

type Server struct {
	mux *chi.Mux
}

type config struct {
	allowedOrigins []string
}

type Option func(*config)

func WithAllowedOrigins(origins []string) Option {
	return func(cfg *config) {
		cfg.allowedOrigins = origins
	}
}

func New(uc interfaces.UseCase, policy model.Policy, options ...Option) *Server {
	cfg := &config{
		allowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
	}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/parse", func(w http.ResponseWriter, r *http.Request) {
		handleParse(uc, policy, w, r)
	})
	r.Post("/tokens", func(w http.ResponseWriter, r *http.Request) {
		handleTokens(uc, w, r)
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

// handleParse accepts multipart/form-data with either a repoUrl field or a
// zipFile upload. The body is bounded around the archive ceiling so an
// adversarial upload is aborted mid-stream instead of buffered.
func handleParse(uc interfaces.UseCase, policy model.Policy, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, policy.MaxArchiveBytes+multipartOverhead)

	mr, err := r.MultipartReader()
	if err != nil {
		respondError(ctx, w, "fail to read multipart request",
			goerr.Wrap(err, "request must be multipart/form-data", goerr.T(types.TagInvalidInput)))
		return
	}

	var (
		repoURLRaw string
		zipName    string
		zipSpool   *os.File
	)
	defer func() {
		if zipSpool != nil {
			safe.Close(zipSpool)
			safe.Remove(zipSpool.Name())
		}
	}()

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			respondError(ctx, w, "fail to read multipart part", wrapStreamErr(err))
			return
		}

		switch part.FormName() {
		case "repoUrl":
			raw, err := io.ReadAll(io.LimitReader(part, 4096))
			if err != nil {
				respondError(ctx, w, "fail to read repoUrl field", wrapStreamErr(err))
				return
			}
			repoURLRaw = string(raw)

		case "zipFile":
			if zipSpool != nil {
				respondError(ctx, w, "duplicate zipFile part",
					goerr.New("provide only one zip file", goerr.T(types.TagInvalidInput)))
				return
			}

			spool, err := os.CreateTemp("", "unroller-upload-*.zip")
			if err != nil {
				respondError(ctx, w, "fail to create upload spool", goerr.Wrap(err, "failed to create temp file"))
				return
			}
			zipSpool = spool
			zipName = part.FileName()

			if _, err := io.Copy(spool, part); err != nil {
				respondError(ctx, w, "fail to spool upload", wrapStreamErr(err))
				return
			}
		}
	}

	input := &model.IngestInput{}
	if repoURLRaw != "" {
		repo, err := model.ParseRepoURL(repoURLRaw, policy.AllowedGitHosts)
		if err != nil {
			respondError(ctx, w, "fail to normalize repo URL", err)
			return
		}
		input.RepoURL = repo
	}
	if zipSpool != nil {
		if _, err := zipSpool.Seek(0, io.SeekStart); err != nil {
			respondError(ctx, w, "fail to rewind upload spool", goerr.Wrap(err, "failed to seek temp file"))
			return
		}
		input.Archive = &model.ArchiveUpload{FileName: zipName, Reader: zipSpool}
	}

	output, err := uc.Ingest(ctx, input)
	if err != nil {
		respondError(ctx, w, "fail to ingest repository", err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}

// wrapStreamErr classifies body-read failures: crossing the MaxBytesReader
// ceiling is a payload-size rejection, anything else is a bad request.
func wrapStreamErr(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return goerr.Wrap(err, "zip exceeds allowed size", goerr.T(types.TagPayloadTooLarge))
	}
	return goerr.Wrap(err, "failed to read request body", goerr.T(types.TagInvalidInput))
}

func handleTokens(uc interfaces.UseCase, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, "fail to decode token request",
			goerr.Wrap(err, "invalid JSON body", goerr.T(types.TagInvalidInput)))
		return
	}

	resp, err := uc.CountTokens(ctx, &req)
	if err != nil {
		respondError(ctx, w, "fail to count tokens", err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
