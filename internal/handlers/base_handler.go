package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/virtualtechbox/backend/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondSuccess sends a successful response envelope
func (h *BaseHandler) respondSuccess(w http.ResponseWriter, status int, data any, message string) {
	h.respondJSON(w, status, models.APIResponse{Success: true, Data: data, Message: message})
}

// respondError sends a failed response envelope
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, models.APIResponse{Success: false, Error: message})
}

// respondServiceError maps service errors to HTTP statuses.
// Messages of unexpected errors are not exposed, fallbackMessage is sent instead.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		h.respondError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, models.ErrUserAlreadyExists):
		h.respondError(w, http.StatusBadRequest, "User with this email already exists")
	case errors.Is(err, models.ErrAreaNotFound), errors.Is(err, models.ErrModuleNotFound), errors.Is(err, models.ErrUserNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, fallbackMessage)
	}
}

// decodeJSON decodes the request body into dst.
// It responds itself and returns false when the body is too large or malformed.
func (h *BaseHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}

	h.respondError(w, http.StatusBadRequest, "invalid request body")
	return false
}

// pathParam returns a decoded URL parameter.
// chi matches against the raw path when the request path was percent-encoded,
// its parameters are still escaped then.
func pathParam(r *http.Request, key string) (string, error) {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value, nil
	}
	return url.PathUnescape(value)
}

// NotFound responds to unknown routes
func (h *BaseHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed responds to known routes requested with an unsupported method
func (h *BaseHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// NewBaseHandler creates a base handler, used directly for router level responses
func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	return &BaseHandler{logger: logger}
}

// validationMessage strips the validation error prefix from a wrapped error message
func validationMessage(err error) string {
	msg, _ := strings.CutPrefix(err.Error(), models.ErrValidation.Error()+": ")
	return msg
}
