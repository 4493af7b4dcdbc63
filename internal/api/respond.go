package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/logger"
	"github.com/culinai/chef/internal/sentry"
)

const maxBodyBytes = 1 << 20

// feature selects the localized message shown for a failed call.
type feature int

const (
	featureNone feature = iota
	featureGenerate
	featurePreview
	featureChat
)

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Type    apperrors.ErrorType `json:"type"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Detail  string              `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return apperrors.NewValidationError("Invalid request body", "INVALID_BODY", "Send a JSON object.")
	}
	return nil
}

// writeError maps err to its status. Feature calls carry the localized
// feature message with the underlying one as detail. Internal failures are
// also reported to Sentry.
func writeError(w http.ResponseWriter, r *http.Request, lang i18n.Language, f feature, err error) {
	appErr := apperrors.As(err)
	ctx := r.Context()

	message := appErr.Message
	messages := i18n.MessagesFor(lang)
	switch f {
	case featureGenerate:
		message = messages.ErrorGen
	case featurePreview:
		message = messages.ErrorImage
	case featureChat:
		message = messages.ChatError
	}

	switch {
	case appErr.Type == apperrors.ErrorTypeValidation || appErr.Type == apperrors.ErrorTypeSuperseded:
		slog.DebugContext(ctx, "Request rejected", "path", r.URL.Path, "error", err, logger.WithTraceContext(ctx))
	case appErr.StatusCode >= http.StatusInternalServerError && !appErr.IsOperational:
		slog.ErrorContext(ctx, "Request failed", "path", r.URL.Path, "error", err, logger.WithTraceContext(ctx))
		sentry.CaptureError(ctx, err)
	default:
		slog.WarnContext(ctx, "Request failed", "path", r.URL.Path, "type", string(appErr.Type), "error", err, logger.WithTraceContext(ctx))
	}

	writeJSON(w, appErr.StatusCode, errorBody{Error: errorPayload{
		Type:    appErr.Type,
		Code:    appErr.Code(),
		Message: message,
		Detail:  appErr.Detail(),
	}})
}
