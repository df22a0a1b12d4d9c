package domain

// Envelope status values used by every API response.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// FieldError describes a single field-level validation failure reported by
// the API.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Pagination accompanies every list response.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}
