package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/virtualtechbox/backend/internal/models"
	"go.uber.org/zap"
)

// ContentRepository is the interface that wraps methods for learning content access
type ContentRepository interface {
	// Method ListModules retrieves all modules of a learning area sorted by order.
	//
	// An area without stored content returns an empty slice and no error.
	ListModules(ctx context.Context, area string) ([]models.Module, error)
	// Method GetModule retrieves a module of a learning area by its id.
	//
	// models.ErrModuleNotFound is returned if the area has no such module.
	GetModule(ctx context.Context, area, moduleID string) (*models.Module, error)
}

type learningService struct {
	repo   ContentRepository
	logger *zap.Logger
}

// NewLearningService creates a new learning service
func NewLearningService(repo ContentRepository, logger *zap.Logger) *learningService {
	return &learningService{
		repo:   repo,
		logger: logger,
	}
}

// GetLearningAreas returns all learning areas in presentation order
func (s *learningService) GetLearningAreas(ctx context.Context) []models.LearningArea {
	return models.LearningAreas
}

// GetModules returns the modules of a learning area.
//
// Areas without stored content get demo modules instead.
func (s *learningService) GetModules(ctx context.Context, area string) ([]models.Module, error) {
	if !models.IsValidLearningArea(area) {
		return nil, fmt.Errorf("%w: %s", models.ErrAreaNotFound, area)
	}

	modules, err := s.repo.ListModules(ctx, area)
	if err != nil {
		s.logger.Error("failed to list modules", zap.String("area", area), zap.Error(err))
		return nil, fmt.Errorf("failed to get modules: %w", err)
	}

	if len(modules) == 0 {
		s.logger.Debug("no stored modules, serving demo content", zap.String("area", area))
		return demoModules(area), nil
	}

	return modules, nil
}

// GetModule returns a single module of a learning area, looking in demo modules when it is not stored
func (s *learningService) GetModule(ctx context.Context, area, moduleID string) (*models.Module, error) {
	if !models.IsValidLearningArea(area) {
		return nil, fmt.Errorf("%w: %s", models.ErrAreaNotFound, area)
	}

	module, err := s.repo.GetModule(ctx, area, moduleID)
	if err == nil {
		return module, nil
	}
	if !errors.Is(err, models.ErrModuleNotFound) {
		s.logger.Error("failed to get module", zap.String("area", area), zap.String("module_id", moduleID), zap.Error(err))
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	for _, demo := range demoModules(area) {
		if demo.ID == moduleID {
			return &demo, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", models.ErrModuleNotFound, moduleID)
}

// UpdateProgress accepts a progress update. Progress is not persisted.
func (s *learningService) UpdateProgress(ctx context.Context, req models.ProgressUpdateRequest) error {
	s.logger.Debug("progress update received", zap.Int("fields", len(req)))
	return nil
}
