package models

import "errors"

var (
	// ErrAreaNotFound is returned for learning areas outside of LearningAreas
	ErrAreaNotFound = errors.New("learning area not found")
	// ErrModuleNotFound is returned when a module id is absent from an area
	ErrModuleNotFound = errors.New("module not found")
	// ErrUserNotFound is returned when no user matches an email
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when an email is already registered
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	// ErrRemoteUnavailable is returned when the remote user directory can not be reached
	ErrRemoteUnavailable = errors.New("remote user directory unavailable")
	// ErrValidation wraps every request validation failure
	ErrValidation = errors.New("validation error")
	// ErrRegistrationFailed is returned when neither the remote directory nor the local store accepted a user
	ErrRegistrationFailed = errors.New("failed to register user")
)
