package dto

import "errors"

// Custom errors
var (
	ErrEmptyDocument   = errors.New("document payload is empty")
	ErrMissingFileKind = errors.New("file kind is required")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
