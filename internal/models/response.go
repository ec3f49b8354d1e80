package models

// APIResponse is the envelope every endpoint responds with
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the API health status
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	HubSpot string `json:"hubspot"`
}
