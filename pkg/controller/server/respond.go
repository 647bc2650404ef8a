package server

import (
	"context"
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/codexlabs/unroller/pkg/utils/errutil"
	"github.com/codexlabs/unroller/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, body)
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusFromError maps the error taxonomy tags to HTTP statuses. A clone
// timeout is distinguished from generic failure since it may be transient.
func statusFromError(err error) int {
	switch {
	case goerr.HasTag(err, types.TagInvalidInput),
		goerr.HasTag(err, types.TagArchiveRejected),
		goerr.HasTag(err, types.TagAcquisitionFailed):
		return http.StatusBadRequest
	case goerr.HasTag(err, types.TagPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case goerr.HasTag(err, types.TagAcquisitionTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	code := statusFromError(err)
	if code >= http.StatusInternalServerError {
		errutil.HandleError(ctx, msg, err)
	} else {
		logging.From(ctx).Warn(msg, slog.Any("error", err))
	}

	respondJSON(w, code, errorResponse{Error: err.Error()})
}
