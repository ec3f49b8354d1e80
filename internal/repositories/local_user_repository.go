package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/virtualtechbox/backend/internal/models"
)

// localUserRepository stores users in a JSON array file.
//
// Every write rewrites the whole file into a temporary sibling and renames it over
// the original, so readers never observe a partially written file. The mutex
// serializes read-modify-write cycles within the process.
type localUserRepository struct {
	path string
	mu   sync.Mutex
}

// NewLocalUserRepository creates a new local user repository backed by the file at path
func NewLocalUserRepository(path string) *localUserRepository {
	return &localUserRepository{path: path}
}

// Create appends a user to the store.
//
// If a user with the same email is already stored, nothing is written and
// models.ErrUserAlreadyExists is returned.
func (r *localUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	users, err := r.load()
	if err != nil {
		return err
	}

	for _, existing := range users {
		if strings.EqualFold(existing.Email, user.Email) {
			return models.ErrUserAlreadyExists
		}
	}

	users = append(users, *user)
	return r.save(users)
}

// GetByEmail returns a stored user by email
func (r *localUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			user := users[i]
			return &user, nil
		}
	}

	return nil, models.ErrUserNotFound
}

// GetAll returns all stored users in insertion order
func (r *localUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

// load reads the store file, a missing or empty file is an empty store
func (r *localUserRepository) load() ([]models.User, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.User{}, nil
		}
		return nil, fmt.Errorf("failed to read local users file: %w", err)
	}

	users := []models.User{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return users, nil
	}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse local users file: %w", err)
	}

	return users, nil
}

// save atomically replaces the store file with users
func (r *localUserRepository) save(users []models.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode local users: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create local users directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary users file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temporary users file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync temporary users file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temporary users file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace local users file: %w", err)
	}

	return nil
}
