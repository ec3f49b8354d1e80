package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/virtualtechbox/backend/internal/models"
	"go.uber.org/zap"
)

// UserService is the interface that wraps methods for user registration business logic
type UserService interface {
	// Method Register validates and stores a new user.
	//
	// models.ErrValidation or models.ErrUserAlreadyExists is returned for rejected requests.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error)
	// Method EmailExists reports whether a user with the email is registered.
	EmailExists(ctx context.Context, email string) (bool, error)
}

// UserHandler handles user HTTP requests
type UserHandler struct {
	BaseHandler
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Get("/check-email/{email}", h.CheckEmail)
	})
}

// Register handles POST /users/register
// @Summary Register a user
// @Description Register a learner in HubSpot, falling back to local storage
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 200 {object} models.APIResponse{data=models.UserResponse}
// @Failure 400 {object} models.APIResponse
// @Failure 413 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /users/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrRegistrationFailed) {
			h.respondError(w, http.StatusInternalServerError, "Failed to register user")
			return
		}
		h.respondServiceError(w, err, "An error occurred during registration")
		return
	}

	h.logger.Info("user registered", zap.String("email", user.Email), zap.String("learning_area", user.SelectedArea))
	h.respondSuccess(w, http.StatusOK, user, "User registered successfully")
}

// CheckEmail handles GET /users/check-email/{email}
// @Summary Check email
// @Description Check whether an email is already registered
// @Tags users
// @Produce json
// @Param email path string true "Email address"
// @Success 200 {object} models.APIResponse{data=models.EmailCheckResponse}
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /users/check-email/{email} [get]
func (h *UserHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	email, err := pathParam(r, "email")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid email")
		return
	}

	exists, err := h.service.EmailExists(r.Context(), email)
	if err != nil {
		h.logger.Error("failed to check email", zap.Error(err))
		h.respondServiceError(w, err, "Failed to check email")
		return
	}

	h.respondSuccess(w, http.StatusOK, models.EmailCheckResponse{Exists: exists}, "")
}
