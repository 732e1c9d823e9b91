// File: internal/api/error_response.go
package api

// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Error string `json:"error" example:"service account not found"`
}
