package model

// Error kinds
const (
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindInternal   = "internal"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Kind    string        `json:"kind" example:"validation"`
	Status  string        `json:"status" example:"Bad Request"`
	Message string        `json:"message" example:"Invalid input format"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HealthResponse represents the health check payload
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
