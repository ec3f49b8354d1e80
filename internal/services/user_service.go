package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/virtualtechbox/backend/internal/models"
	"go.uber.org/zap"
)

// UserDirectory is the interface that wraps methods for user lookup and persistence
type UserDirectory interface {
	// Method FindByEmail retrieves a registered user by email.
	//
	// models.ErrUserNotFound is returned if no user is found or the directory can not tell.
	FindByEmail(ctx context.Context, email string) (*models.UserRecord, error)
	// Method Register persists a new user.
	//
	// models.ErrRegistrationFailed is returned if the user could not be stored anywhere.
	Register(ctx context.Context, user *models.User) error
}

const minPhoneDigits = 10

type userService struct {
	directory UserDirectory
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewUserService creates a new user service
func NewUserService(directory UserDirectory, logger *zap.Logger) *userService {
	return &userService{
		directory: directory,
		validate:  newRegistrationValidator(),
		logger:    logger,
		now:       time.Now,
	}
}

// Register validates a registration request and stores the user.
//
// Validation failures wrap models.ErrValidation, an already registered email returns
// models.ErrUserAlreadyExists. Both are detected before the user directory is asked to store anything.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	normalized := normalizeRegisterRequest(req)

	if err := s.validateRequest(normalized); err != nil {
		return nil, err
	}

	if _, err := s.directory.FindByEmail(ctx, normalized.Email); err == nil {
		return nil, models.ErrUserAlreadyExists
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &models.User{
		Name:         normalized.Name,
		Email:        normalized.Email,
		PhoneNumber:  normalized.PhoneNumber,
		LearningArea: normalized.LearningArea,
		RegisteredAt: s.now().UTC(),
	}

	if err := s.directory.Register(ctx, user); err != nil {
		s.logger.Error("registration failed", zap.String("email", user.Email), zap.Error(err))
		return nil, err
	}

	return &models.UserResponse{
		Name:         user.Name,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
		SelectedArea: user.LearningArea,
		RegisteredAt: user.RegisteredAt,
	}, nil
}

// EmailExists reports whether a user with the email is registered
func (s *userService) EmailExists(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, fmt.Errorf("%w: email is required", models.ErrValidation)
	}

	_, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return true, nil
}

// validateRequest validates a normalized request and converts validator errors into readable messages
func (s *userService) validateRequest(req *models.RegisterRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, validationMessage(fieldErr))
	}

	return fmt.Errorf("%w: %s", models.ErrValidation, strings.Join(messages, "; "))
}

// normalizeRegisterRequest trims all fields and lowercases the email
func normalizeRegisterRequest(req *models.RegisterRequest) *models.RegisterRequest {
	return &models.RegisterRequest{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		LearningArea: strings.TrimSpace(req.LearningArea),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newRegistrationValidator creates a validator aware of registration specific tags
func newRegistrationValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		return countDigits(fl.Field().String()) >= minPhoneDigits
	})
	v.RegisterValidation("learningarea", func(fl validator.FieldLevel) bool {
		return models.IsValidLearningArea(fl.Field().String())
	})

	return v
}

// validationMessage returns a human readable message for a failed field validation
func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "min":
		if fieldErr.Field() == "name" {
			return fmt.Sprintf("Name must be at least %s characters long", fieldErr.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters long", fieldErr.Field(), fieldErr.Param())
	case "email":
		return "Invalid email address"
	case "phonedigits":
		return fmt.Sprintf("Phone number must have at least %d digits", minPhoneDigits)
	case "learningarea":
		return fmt.Sprintf("Learning area must be one of: %s", strings.Join(models.LearningAreaIDs(), ", "))
	default:
		return fmt.Sprintf("%s is invalid", fieldErr.Field())
	}
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}
