package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/virtualtechbox/backend/internal/models"
	"go.uber.org/zap"
)

// LearningService is the interface that wraps methods for learning content business logic
type LearningService interface {
	// Method GetLearningAreas returns all learning areas.
	GetLearningAreas(ctx context.Context) []models.LearningArea
	// Method GetModules returns the modules of a learning area.
	//
	// models.ErrAreaNotFound is returned for unknown areas.
	GetModules(ctx context.Context, area string) ([]models.Module, error)
	// Method GetModule returns a single module of a learning area.
	//
	// models.ErrAreaNotFound or models.ErrModuleNotFound is returned if nothing matches.
	GetModule(ctx context.Context, area, moduleID string) (*models.Module, error)
	// Method UpdateProgress records learner progress.
	UpdateProgress(ctx context.Context, req models.ProgressUpdateRequest) error
}

// LearningHandler handles learning content HTTP requests
type LearningHandler struct {
	BaseHandler
	service LearningService
}

// NewLearningHandler creates a new learning handler
func NewLearningHandler(service LearningService, logger *zap.Logger) *LearningHandler {
	return &LearningHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all learning routes
func (h *LearningHandler) RegisterRoutes(r chi.Router) {
	r.Route("/learning", func(r chi.Router) {
		r.Get("/areas", h.GetAreas)
		r.Get("/{area}/modules", h.GetModules)
		r.Get("/{area}/modules/{moduleId}", h.GetModule)
		r.Post("/progress/update", h.UpdateProgress)
	})
}

// GetAreas handles GET /learning/areas
// @Summary List learning areas
// @Description Get all learning areas with their metadata
// @Tags learning
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.LearningArea}
// @Router /learning/areas [get]
func (h *LearningHandler) GetAreas(w http.ResponseWriter, r *http.Request) {
	h.respondSuccess(w, http.StatusOK, h.service.GetLearningAreas(r.Context()), "")
}

// GetModules handles GET /learning/{area}/modules
// @Summary List modules of an area
// @Description Get all modules of a learning area sorted by order
// @Tags learning
// @Produce json
// @Param area path string true "Learning area id"
// @Success 200 {object} models.APIResponse{data=[]models.Module}
// @Failure 404 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /learning/{area}/modules [get]
func (h *LearningHandler) GetModules(w http.ResponseWriter, r *http.Request) {
	area := chi.URLParam(r, "area")

	modules, err := h.service.GetModules(r.Context(), area)
	if err != nil {
		h.logger.Debug("failed to get modules", zap.String("area", area), zap.Error(err))
		h.respondServiceError(w, err, "Failed to load modules")
		return
	}

	h.respondSuccess(w, http.StatusOK, modules, "")
}

// GetModule handles GET /learning/{area}/modules/{moduleId}
// @Summary Get a module
// @Description Get a single module of a learning area with its lessons
// @Tags learning
// @Produce json
// @Param area path string true "Learning area id"
// @Param moduleId path string true "Module id"
// @Success 200 {object} models.APIResponse{data=models.Module}
// @Failure 404 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /learning/{area}/modules/{moduleId} [get]
func (h *LearningHandler) GetModule(w http.ResponseWriter, r *http.Request) {
	area := chi.URLParam(r, "area")
	moduleID := chi.URLParam(r, "moduleId")

	module, err := h.service.GetModule(r.Context(), area, moduleID)
	if err != nil {
		h.logger.Debug("failed to get module", zap.String("area", area), zap.String("module_id", moduleID), zap.Error(err))
		h.respondServiceError(w, err, "Failed to load module")
		return
	}

	h.respondSuccess(w, http.StatusOK, module, "")
}

// UpdateProgress handles POST /learning/progress/update
// @Summary Update learning progress
// @Description Accept a progress update, currently not persisted
// @Tags learning
// @Accept json
// @Produce json
// @Param request body models.ProgressUpdateRequest true "Progress fields"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 413 {object} models.APIResponse
// @Router /learning/progress/update [post]
func (h *LearningHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req models.ProgressUpdateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateProgress(r.Context(), req); err != nil {
		h.logger.Error("failed to update progress", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "Failed to update progress")
		return
	}

	h.respondSuccess(w, http.StatusOK, nil, "Progress updated successfully")
}
