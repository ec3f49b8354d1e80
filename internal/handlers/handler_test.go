package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/virtualtechbox/backend/internal/models"
	"go.uber.org/zap"
)

// mockLearningService is a mock implementation of LearningService
type mockLearningService struct {
	areas       []models.LearningArea
	modules     []models.Module
	module      *models.Module
	err         error
	progressErr error
	progress    models.ProgressUpdateRequest
}

func (m *mockLearningService) GetLearningAreas(ctx context.Context) []models.LearningArea {
	return m.areas
}

func (m *mockLearningService) GetModules(ctx context.Context, area string) ([]models.Module, error) {
	return m.modules, m.err
}

func (m *mockLearningService) GetModule(ctx context.Context, area, moduleID string) (*models.Module, error) {
	return m.module, m.err
}

func (m *mockLearningService) UpdateProgress(ctx context.Context, req models.ProgressUpdateRequest) error {
	m.progress = req
	return m.progressErr
}

// mockUserService is a mock implementation of UserService
type mockUserService struct {
	user      *models.UserResponse
	err       error
	exists    bool
	existsErr error
	lastEmail string
}

func (m *mockUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	return m.user, m.err
}

func (m *mockUserService) EmailExists(ctx context.Context, email string) (bool, error) {
	m.lastEmail = email
	return m.exists, m.existsErr
}

// mockDirectoryStatus is a mock implementation of DirectoryStatus
type mockDirectoryStatus struct {
	connected bool
}

func (m *mockDirectoryStatus) Connected() bool {
	return m.connected
}

// envelope mirrors models.APIResponse with raw data for per-test decoding
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func serve(t *testing.T, r chi.Router, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func intPtr(v int) *int {
	return &v
}

func TestLearningHandler_GetAreas(t *testing.T) {
	svc := &mockLearningService{areas: models.LearningAreas}
	r := chi.NewRouter()
	NewLearningHandler(svc, zap.NewNop()).RegisterRoutes(r)

	w, env := serve(t, r, http.MethodGet, "/learning/areas", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.True(t, env.Success)

	var areas []models.LearningArea
	require.NoError(t, json.Unmarshal(env.Data, &areas))
	require.Len(t, areas, len(models.LearningAreas))
	assert.Equal(t, models.LearningAreas[0].ID, areas[0].ID)
}

func TestLearningHandler_GetModules(t *testing.T) {
	tests := []struct {
		name           string
		svc            *mockLearningService
		expectedStatus int
		expectedError  string
		expectedCount  int
	}{
		{
			name: "success",
			svc: &mockLearningService{modules: []models.Module{
				{ID: "intro", Title: "Intro", Order: intPtr(1)},
				{ID: "git", Title: "Git", Order: intPtr(2)},
			}},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "unknown area",
			svc:            &mockLearningService{err: fmt.Errorf("%w: cooking", models.ErrAreaNotFound)},
			expectedStatus: http.StatusNotFound,
			expectedError:  "learning area not found: cooking",
		},
		{
			name:           "repository failure",
			svc:            &mockLearningService{err: errors.New("disk failure")},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to load modules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewLearningHandler(tt.svc, zap.NewNop()).RegisterRoutes(r)

			w, env := serve(t, r, http.MethodGet, "/learning/devops/modules", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.False(t, env.Success)
				assert.Equal(t, tt.expectedError, env.Error)
				return
			}
			assert.True(t, env.Success)
			var modules []models.Module
			require.NoError(t, json.Unmarshal(env.Data, &modules))
			assert.Len(t, modules, tt.expectedCount)
		})
	}
}

func TestLearningHandler_GetModule(t *testing.T) {
	tests := []struct {
		name           string
		svc            *mockLearningService
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "success",
			svc:            &mockLearningService{module: &models.Module{ID: "git", Title: "Git"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "module not found",
			svc:            &mockLearningService{err: fmt.Errorf("%w: missing", models.ErrModuleNotFound)},
			expectedStatus: http.StatusNotFound,
			expectedError:  "module not found: missing",
		},
		{
			name:           "unexpected failure",
			svc:            &mockLearningService{err: errors.New("boom")},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to load module",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewLearningHandler(tt.svc, zap.NewNop()).RegisterRoutes(r)

			w, env := serve(t, r, http.MethodGet, "/learning/devops/modules/git", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, env.Error)
				return
			}
			var module models.Module
			require.NoError(t, json.Unmarshal(env.Data, &module))
			assert.Equal(t, "git", module.ID)
		})
	}
}

func TestLearningHandler_UpdateProgress(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockLearningService{}
		r := chi.NewRouter()
		NewLearningHandler(svc, zap.NewNop()).RegisterRoutes(r)

		w, env := serve(t, r, http.MethodPost, "/learning/progress/update", `{"moduleId":"git","lessonId":"git-basics"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "Progress updated successfully", env.Message)
		assert.Equal(t, "git", svc.progress["moduleId"])
	})

	t.Run("invalid body", func(t *testing.T) {
		r := chi.NewRouter()
		NewLearningHandler(&mockLearningService{}, zap.NewNop()).RegisterRoutes(r)

		w, env := serve(t, r, http.MethodPost, "/learning/progress/update", `{"moduleId":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "invalid request body", env.Error)
	})
}

func TestUserHandler_Register(t *testing.T) {
	registeredAt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	validBody := `{"name":"Jane Doe","email":"jane@example.com","phoneNumber":"+1 555 123 4567","learningArea":"devops"}`

	tests := []struct {
		name            string
		body            string
		svc             *mockUserService
		expectedStatus  int
		expectedError   string
		expectedMessage string
	}{
		{
			name: "success",
			body: validBody,
			svc: &mockUserService{user: &models.UserResponse{
				Name:         "Jane Doe",
				Email:        "jane@example.com",
				PhoneNumber:  "+1 555 123 4567",
				SelectedArea: "devops",
				RegisteredAt: registeredAt,
			}},
			expectedStatus:  http.StatusOK,
			expectedMessage: "User registered successfully",
		},
		{
			name:           "validation error",
			body:           validBody,
			svc:            &mockUserService{err: fmt.Errorf("%w: Phone number must have at least 10 digits", models.ErrValidation)},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Phone number must have at least 10 digits",
		},
		{
			name:           "duplicate email",
			body:           validBody,
			svc:            &mockUserService{err: models.ErrUserAlreadyExists},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "User with this email already exists",
		},
		{
			name:           "both stores failed",
			body:           validBody,
			svc:            &mockUserService{err: fmt.Errorf("%w: remote: timeout; local: read-only file system", models.ErrRegistrationFailed)},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to register user",
		},
		{
			name:           "unexpected error",
			body:           validBody,
			svc:            &mockUserService{err: errors.New("boom")},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "An error occurred during registration",
		},
		{
			name:           "malformed body",
			body:           `{"name":`,
			svc:            &mockUserService{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewUserHandler(tt.svc, zap.NewNop()).RegisterRoutes(r)

			w, env := serve(t, r, http.MethodPost, "/users/register", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.False(t, env.Success)
				assert.Equal(t, tt.expectedError, env.Error)
				return
			}

			assert.True(t, env.Success)
			assert.Equal(t, tt.expectedMessage, env.Message)
			var user models.UserResponse
			require.NoError(t, json.Unmarshal(env.Data, &user))
			assert.Equal(t, "devops", user.SelectedArea)
			assert.True(t, registeredAt.Equal(user.RegisteredAt))
		})
	}
}

func TestUserHandler_CheckEmail(t *testing.T) {
	tests := []struct {
		name           string
		svc            *mockUserService
		expectedStatus int
		expectedExists bool
		expectedError  string
	}{
		{
			name:           "exists",
			svc:            &mockUserService{exists: true},
			expectedStatus: http.StatusOK,
			expectedExists: true,
		},
		{
			name:           "does not exist",
			svc:            &mockUserService{},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "lookup failure",
			svc:            &mockUserService{existsErr: errors.New("boom")},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to check email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewUserHandler(tt.svc, zap.NewNop()).RegisterRoutes(r)

			w, env := serve(t, r, http.MethodGet, "/users/check-email/jane@example.com", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "jane@example.com", tt.svc.lastEmail)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, env.Error)
				return
			}
			var resp models.EmailCheckResponse
			require.NoError(t, json.Unmarshal(env.Data, &resp))
			assert.Equal(t, tt.expectedExists, resp.Exists)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name            string
		connected       bool
		expectedHubSpot string
	}{
		{name: "connected", connected: true, expectedHubSpot: "connected"},
		{name: "disconnected", connected: false, expectedHubSpot: "disconnected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewHealthHandler(&mockDirectoryStatus{connected: tt.connected}, "1.0.0", "/swagger/index.html", zap.NewNop()).RegisterRoutes(r)

			w, env := serve(t, r, http.MethodGet, "/health", "")

			assert.Equal(t, http.StatusOK, w.Code)
			var health models.HealthResponse
			require.NoError(t, json.Unmarshal(env.Data, &health))
			assert.Equal(t, "healthy", health.Status)
			assert.Equal(t, "backend-api", health.Service)
			assert.Equal(t, tt.expectedHubSpot, health.HubSpot)
		})
	}
}

func TestHealthHandler_RootRoutes(t *testing.T) {
	r := chi.NewRouter()
	NewHealthHandler(&mockDirectoryStatus{}, "1.2.3", "/swagger/index.html", zap.NewNop()).RegisterRootRoutes(r)

	w, env := serve(t, r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to Virtual Tech Box Learning Platform API", env.Message)
	var root map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &root))
	assert.Equal(t, "1.2.3", root["version"])
	assert.Equal(t, "/swagger/index.html", root["docs"])

	w, env = serve(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestBaseHandler_RouterFallbacks(t *testing.T) {
	base := NewBaseHandler(zap.NewNop())
	r := chi.NewRouter()
	r.NotFound(base.NotFound)
	r.MethodNotAllowed(base.MethodNotAllowed)
	r.Get("/only-get", func(w http.ResponseWriter, r *http.Request) {})

	w, env := serve(t, r, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "resource not found", env.Error)

	w, env = serve(t, r, http.MethodPost, "/only-get", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "method not allowed", env.Error)
}

func TestUserHandler_CheckEmail_PathEncoding(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedEmail  string
		expectedStatus int
	}{
		{name: "plain", path: "/users/check-email/jo+x@example.com", expectedEmail: "jo+x@example.com", expectedStatus: http.StatusOK},
		{name: "percent encoded", path: "/users/check-email/jo%2Bx%40example.com", expectedEmail: "jo+x@example.com", expectedStatus: http.StatusOK},
		{name: "encoded percent sign", path: "/users/check-email/a%25b@example.com", expectedEmail: "a%b@example.com", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockUserService{exists: true}
			r := chi.NewRouter()
			NewUserHandler(svc, zap.NewNop()).RegisterRoutes(r)

			w, env := serve(t, r, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedEmail, svc.lastEmail)
			var resp models.EmailCheckResponse
			require.NoError(t, json.Unmarshal(env.Data, &resp))
			assert.True(t, resp.Exists)
		})
	}
}

func TestHandlers_BodyTooLarge(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "register", path: "/users/register"},
		{name: "progress update", path: "/learning/progress/update"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			// Chunked bodies carry no Content-Length, only the reader limit applies
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					r.Body = http.MaxBytesReader(w, r.Body, 16)
					next.ServeHTTP(w, r)
				})
			})
			NewUserHandler(&mockUserService{}, zap.NewNop()).RegisterRoutes(r)
			NewLearningHandler(&mockLearningService{}, zap.NewNop()).RegisterRoutes(r)

			body := `{"name":"` + strings.Repeat("x", 64) + `"}`
			w, env := serve(t, r, http.MethodPost, tt.path, body)

			assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, "request body too large", env.Error)
		})
	}
}
