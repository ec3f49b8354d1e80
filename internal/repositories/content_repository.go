package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/virtualtechbox/backend/internal/models"
	"go.uber.org/zap"
)

// moduleTemplateFile is the authoring template contentctl copies into area directories, never served
const moduleTemplateFile = "module-template.json"

// contentRepository implements ContentRepository reading module JSON files from disk.
//
// Each learning area is a directory under basePath holding one JSON file per module.
// Areas are read once and cached until Reload is called.
type contentRepository struct {
	basePath string
	logger   *zap.Logger

	mu    sync.RWMutex
	cache map[string][]models.Module
}

// NewContentRepository creates a new content repository rooted at basePath
func NewContentRepository(basePath string, logger *zap.Logger) *contentRepository {
	return &contentRepository{
		basePath: basePath,
		logger:   logger,
		cache:    make(map[string][]models.Module),
	}
}

// ListModules returns all modules of an area sorted by order.
//
// A missing area directory is not an error, an empty slice is returned instead.
// Modules with equal order keep the lexical order of their file names.
// Returned modules are copies of the cached ones.
func (r *contentRepository) ListModules(ctx context.Context, area string) ([]models.Module, error) {
	r.mu.RLock()
	modules, ok := r.cache[area]
	r.mu.RUnlock()
	if ok {
		return cloneModules(modules), nil
	}

	modules, found, err := r.loadArea(ctx, area)
	if err != nil {
		return nil, err
	}

	// Missing areas are not cached so content added later is picked up
	if found {
		r.mu.Lock()
		r.cache[area] = modules
		r.mu.Unlock()
	}

	return cloneModules(modules), nil
}

// GetModule returns the module with moduleID from an area.
// The returned module is a copy, changing it does not affect the cache.
func (r *contentRepository) GetModule(ctx context.Context, area, moduleID string) (*models.Module, error) {
	modules, err := r.ListModules(ctx, area)
	if err != nil {
		return nil, err
	}

	for i := range modules {
		if modules[i].ID == moduleID {
			return &modules[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s/%s", models.ErrModuleNotFound, area, moduleID)
}

// Reload drops cached modules of the given areas, or of all areas when none are given
func (r *contentRepository) Reload(areas ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(areas) == 0 {
		r.cache = make(map[string][]models.Module)
		return
	}
	for _, area := range areas {
		delete(r.cache, area)
	}
}

// loadArea reads and sorts all module files of an area.
// found is false when the area has no directory.
func (r *contentRepository) loadArea(ctx context.Context, area string) ([]models.Module, bool, error) {
	// Area names come from URLs, never let them escape the base path
	if area == "" || area != filepath.Base(area) || strings.HasPrefix(area, ".") {
		return []models.Module{}, false, nil
	}

	areaPath := filepath.Join(r.basePath, area)
	entries, err := os.ReadDir(areaPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Module{}, false, nil
		}
		return nil, false, fmt.Errorf("failed to read area directory %s: %w", areaPath, err)
	}

	// os.ReadDir sorts by file name, which gives a deterministic tie breaker
	modules := make([]models.Module, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") || entry.Name() == moduleTemplateFile {
			continue
		}

		path := filepath.Join(areaPath, entry.Name())
		module, err := readModuleFile(path)
		if err != nil {
			r.logger.Warn("skipping malformed module file", zap.String("area", area), zap.String("file", path), zap.Error(err))
			continue
		}
		modules = append(modules, *module)
	}

	sort.SliceStable(modules, func(i, j int) bool {
		return modules[i].SortKey() < modules[j].SortKey()
	})

	r.logger.Debug("learning area loaded", zap.String("area", area), zap.Int("modules", len(modules)))

	return slices.Clip(modules), true, nil
}

// cloneModules deep copies cached modules so callers can not modify the cache
func cloneModules(modules []models.Module) []models.Module {
	cloned := make([]models.Module, len(modules))
	for i := range modules {
		cloned[i] = *cloneModule(&modules[i])
	}
	return cloned
}

func cloneModule(m *models.Module) *models.Module {
	cloned := *m
	if m.Order != nil {
		order := *m.Order
		cloned.Order = &order
	}
	if m.Lessons != nil {
		cloned.Lessons = make([]models.Lesson, len(m.Lessons))
		for i, lesson := range m.Lessons {
			lesson.CodeExamples = slices.Clone(lesson.CodeExamples)
			lesson.Resources = slices.Clone(lesson.Resources)
			cloned.Lessons[i] = lesson
		}
	}
	if m.Quiz != nil {
		quiz := *m.Quiz
		if quiz.Questions != nil {
			quiz.Questions = make([]models.Question, len(m.Quiz.Questions))
			for i, q := range m.Quiz.Questions {
				q.Options = slices.Clone(q.Options)
				quiz.Questions[i] = q
			}
		}
		cloned.Quiz = &quiz
	}
	return &cloned
}

// readModuleFile decodes a single module JSON file
func readModuleFile(path string) (*models.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var module models.Module
	if err := json.Unmarshal(data, &module); err != nil {
		return nil, fmt.Errorf("invalid module JSON: %w", err)
	}
	if module.ID == "" {
		return nil, fmt.Errorf("module id is missing")
	}

	return &module, nil
}
