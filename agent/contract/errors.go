package contract

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrSchemaViolation = errors.New("model response violates schema")
	ErrSessionNotFound = errors.New("chat session not found")
	ErrForbidden       = errors.New("not authorized for this session")
)
