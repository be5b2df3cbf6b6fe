package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeTokenExpired     ErrorType = "token_expired"
	ErrorTypeTokenInvalid     ErrorType = "token_invalid"
	ErrorTypeSignatureInvalid ErrorType = "signature_invalid"
)

// AuthError represents authentication-specific errors with enhanced security context
type AuthError struct {
	*AppError
	// ShouldLog is false for expected failures such as a normally expired token.
	ShouldLog bool
	// SecurityEvent marks failures that may indicate tampering.
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewTokenExpiredError creates an error for an expired access token
func NewTokenExpiredError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: fmt.Sprintf("%s has expired", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
	}
}

// NewTokenInvalidError creates an error for a malformed or forged token
func NewTokenInvalidError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: fmt.Sprintf("Invalid %s", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Token is invalid or has been revoked",
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// NewSignatureInvalidError creates an error for a webhook whose signature is missing or does not match
func NewSignatureInvalidError(reason string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeSignatureInvalid,
			Message: "Invalid signature",
			Code:    http.StatusUnauthorized,
			Details: reason,
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// GetAuthError extracts AuthError from error chain (supports wrapped errors via errors.As)
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// IsAuthError checks if the error is an AuthError
func IsAuthError(err error) bool {
	return GetAuthError(err) != nil
}

// ShouldLogAuthError returns true if the authentication error should be logged
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}

// IsSecurityEvent returns true if the error should be tracked as a security event
func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}
