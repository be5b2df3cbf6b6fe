package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderError_StatusCode(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode int
	}{
		{"keeps client error", http.StatusUnprocessableEntity, http.StatusUnprocessableEntity},
		{"keeps server error", http.StatusBadGateway, http.StatusBadGateway},
		{"zero becomes 500", 0, http.StatusInternalServerError},
		{"success code becomes 500", http.StatusOK, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewProviderError(tt.status, "provider failed")
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, ErrorTypeProvider, err.Type)
		})
	}
}

func TestGetAppError_UnwrapsAuthAndWrapped(t *testing.T) {
	authErr := NewSignatureInvalidError("missing x-signature header")
	wrapped := fmt.Errorf("webhook rejected: %w", authErr)

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	assert.True(t, IsSecurityEvent(wrapped))
	assert.True(t, ShouldLogAuthError(wrapped))
	assert.False(t, ShouldLogAuthError(NewTokenExpiredError("access token")))
}

func TestFriendlyMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"network", stderrors.New("TypeError: Failed to fetch"), "Network error. Please check your connection and try again."},
		{"timeout", stderrors.New("context deadline exceeded"), "The request took too long. Please try again."},
		{"file type", stderrors.New("Unsupported file type: application/zip"), "This file type isn't supported. Please upload a PDF, image, audio file or plain text."},
		{"oversize", stderrors.New("file size exceeds 20MB limit"), "This file is too large. Please upload a smaller file."},
		{"app error message", NewNotFoundError("material not found"), "We couldn't find what you were looking for."},
		{"fallback to raw", stderrors.New("questions could not be generated"), "questions could not be generated"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FriendlyMessage(tt.err))
		})
	}
}
