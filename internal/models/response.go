package models

// APIResponse is the envelope used for error responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// HealthCheck is the fixed payload of GET /health. The service is
// stateless, so the payload never varies.
type HealthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
