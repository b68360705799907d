// Package common defines shared constants and sentinel errors used across
// repository, service and transport layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Validation errors (missing or malformed input).
	ErrorValidation = errors.New("validation error")

	// Credential errors. Unknown email and wrong password share one value.
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// ErrorInvalidOTP covers missing, expired, already used and mismatching codes.
	ErrorInvalidOTP = errors.New("invalid or expired otp")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")

	// Upload errors.
	ErrorUnsupportedMedia = errors.New("unsupported media type")
	ErrorTooLarge         = errors.New("payload too large")
)
