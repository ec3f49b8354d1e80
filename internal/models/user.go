package models

import "time"

// User represents a single registration
type User struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	LearningArea string    `json:"learningArea"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// UserRecord represents a user found in the remote directory
type UserRecord struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	PhoneNumber  string `json:"phoneNumber"`
	LearningArea string `json:"learningArea"`
	HubSpotID    string `json:"hubspotId"`
}

// RegisterRequest represents a registration request body
type RegisterRequest struct {
	Name         string `json:"name" validate:"required,min=2"`
	Email        string `json:"email" validate:"required,email"`
	PhoneNumber  string `json:"phoneNumber" validate:"required,phonedigits"`
	LearningArea string `json:"learningArea" validate:"required,learningarea"`
}

// UserResponse represents a registered user returned to the client
type UserResponse struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	SelectedArea string    `json:"selectedArea"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// EmailCheckResponse represents the result of an email existence check
type EmailCheckResponse struct {
	Exists bool `json:"exists"`
}
