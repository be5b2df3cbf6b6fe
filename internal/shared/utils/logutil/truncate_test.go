package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"empty input", "", 10, ""},
		{"zero max", "", 0, "..."},
		{"shorter than max", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated", `{"meta":{"event_name":"order_created"}}`, 8, `{"meta":...`},
		{"multibyte boundary", "héllo", 2, "h..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateForLog(tt.input, tt.maxLen))
		})
	}
}

func TestTruncatePayload(t *testing.T) {
	assert.Equal(t, "abc...", TruncatePayload([]byte("abcdef"), 3))
}
