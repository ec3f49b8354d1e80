package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// TemplateFileName is the module template copied into new area directories
const TemplateFileName = "module-template.json"

// RequiredFields are the top level keys every imported module must carry
var RequiredFields = []string{"id", "title", "description", "order", "lessons"}

var (
	// ErrInvalidArea is returned for area names that are not a single path element
	ErrInvalidArea = errors.New("invalid learning area name")
	// ErrSourceNotFound is returned when the module file to import does not exist
	ErrSourceNotFound = errors.New("module file not found")
	// ErrInvalidModule is returned when the module file is not valid module JSON
	ErrInvalidModule = errors.New("invalid module")
)

// CreateResult describes the outcome of CreateAreaStructure
type CreateResult struct {
	AreaPath       string
	CreatedBase    bool
	CreatedArea    bool
	TemplatePath   string
	TemplateCopied bool
}

// Importer manages the on-disk content layout read by the API
type Importer struct {
	basePath      string
	templatesPath string
	logger        *zap.Logger
}

// NewImporter creates a new importer writing under basePath
func NewImporter(basePath, templatesPath string, logger *zap.Logger) *Importer {
	return &Importer{
		basePath:      basePath,
		templatesPath: templatesPath,
		logger:        logger,
	}
}

// CreateAreaStructure creates the directory of a learning area and copies the module template into it.
// A missing template is not an error, CreateResult.TemplateCopied is false then.
func (im *Importer) CreateAreaStructure(area string) (*CreateResult, error) {
	if err := validateArea(area); err != nil {
		return nil, err
	}

	result := &CreateResult{AreaPath: filepath.Join(im.basePath, area)}

	createdBase, err := ensureDir(im.basePath)
	if err != nil {
		return nil, err
	}
	result.CreatedBase = createdBase

	createdArea, err := ensureDir(result.AreaPath)
	if err != nil {
		return nil, err
	}
	result.CreatedArea = createdArea

	templatePath := filepath.Join(im.templatesPath, TemplateFileName)
	target := filepath.Join(result.AreaPath, TemplateFileName)
	if err := copyFile(templatePath, target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			im.logger.Debug("module template not found", zap.String("path", templatePath))
			return result, nil
		}
		return nil, fmt.Errorf("failed to copy module template: %w", err)
	}
	result.TemplatePath = target
	result.TemplateCopied = true

	im.logger.Debug("learning area structure created", zap.String("area", area), zap.String("path", result.AreaPath))

	return result, nil
}

// moduleHeader holds the fields used to name the imported file
type moduleHeader struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// ImportModule validates a module JSON file and writes it into the area directory
// as module-<order>-<id>.json. The area directory is created if missing.
// It returns the path of the written file.
func (im *Importer) ImportModule(filePath, area string) (string, error) {
	if err := validateArea(area); err != nil {
		return "", err
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, filePath)
		}
		return "", fmt.Errorf("failed to read module file: %w", err)
	}

	header, err := validateModule(raw)
	if err != nil {
		return "", err
	}

	var formatted bytes.Buffer
	if err := json.Indent(&formatted, raw, "", "  "); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidModule, err)
	}
	formatted.WriteByte('\n')

	areaPath := filepath.Join(im.basePath, area)
	if _, err := ensureDir(areaPath); err != nil {
		return "", err
	}

	target := filepath.Join(areaPath, ModuleFileName(header.Order, header.ID))
	if err := os.WriteFile(target, formatted.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write module file: %w", err)
	}

	im.logger.Debug("module imported", zap.String("area", area), zap.String("module_id", header.ID), zap.String("path", target))

	return target, nil
}

// ModuleFileName returns the file name an imported module is stored under
func ModuleFileName(order int, id string) string {
	return fmt.Sprintf("module-%02d-%s.json", order, id)
}

// validateModule checks that raw is a JSON object with all required fields
func validateModule(raw []byte) (*moduleHeader, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: not a valid JSON object: %v", ErrInvalidModule, err)
	}

	for _, field := range RequiredFields {
		if _, ok := fields[field]; !ok {
			return nil, fmt.Errorf("%w: required field '%s' missing", ErrInvalidModule, field)
		}
	}

	var header moduleHeader
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("%w: id must be a string and order an integer: %v", ErrInvalidModule, err)
	}
	if header.ID == "" || header.ID != filepath.Base(header.ID) || strings.HasPrefix(header.ID, ".") {
		return nil, fmt.Errorf("%w: id %q can not be used as a file name", ErrInvalidModule, header.ID)
	}

	return &header, nil
}

func validateArea(area string) error {
	if area == "" || area != filepath.Base(area) || strings.HasPrefix(area, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidArea, area)
	}
	return nil
}

// ensureDir creates path with parents and reports whether it did not exist before
func ensureDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", path)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
