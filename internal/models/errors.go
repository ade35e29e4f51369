package models

import "errors"

// Custom errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidDocument = errors.New("invalid standings document")
	ErrDriverNotFound  = errors.New("driver not found")
)
