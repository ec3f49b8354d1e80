package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/virtualtechbox/backend/internal/models"
	"go.uber.org/zap"
)

// DirectoryStatus is the interface that reports the remote user directory state
type DirectoryStatus interface {
	// Method Connected reports whether a remote CRM is configured.
	Connected() bool
}

// HealthHandler handles service status requests
type HealthHandler struct {
	BaseHandler
	directory  DirectoryStatus
	version    string
	docsPath   string
	serviceTag string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(directory DirectoryStatus, version, docsPath string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: BaseHandler{logger: logger},
		directory:   directory,
		version:     version,
		docsPath:    docsPath,
		serviceTag:  "backend-api",
	}
}

// RegisterRoutes registers versioned health routes
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
}

// RegisterRootRoutes registers unversioned service routes
func (h *HealthHandler) RegisterRootRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/health", h.Liveness)
}

// Health handles GET /health
// @Summary Health check
// @Description Service liveness and HubSpot connectivity
// @Tags health
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthResponse}
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	hubspot := "disconnected"
	if h.directory.Connected() {
		hubspot = "connected"
	}

	h.respondSuccess(w, http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Service: h.serviceTag,
		HubSpot: hubspot,
	}, "")
}

// Liveness handles unversioned GET /health
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	h.respondSuccess(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": h.serviceTag,
	}, "")
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	h.respondSuccess(w, http.StatusOK, map[string]string{
		"version": h.version,
		"docs":    h.docsPath,
	}, "Welcome to Virtual Tech Box Learning Platform API")
}
