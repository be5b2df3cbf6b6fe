package errors

import "strings"

type friendlyRule struct {
	patterns []string
	message  string
}

// Order matters: the first rule with a matching pattern wins.
var friendlyRules = []friendlyRule{
	{[]string{"timeout", "timed out", "deadline exceeded"}, "The request took too long. Please try again."},
	{[]string{"network", "failed to fetch", "connection refused", "connection reset", "no such host"}, "Network error. Please check your connection and try again."},
	{[]string{"unsupported file", "invalid file type", "unsupported media type", "mime"}, "This file type isn't supported. Please upload a PDF, image, audio file or plain text."},
	{[]string{"too large", "file size", "payload too large", "exceeds", "413"}, "This file is too large. Please upload a smaller file."},
	{[]string{"rate limit", "too many requests", "429"}, "You're doing that too often. Please wait a moment and try again."},
	{[]string{"unauthorized", "jwt", "not authenticated"}, "Your session has expired. Please log in again."},
	{[]string{"not found"}, "We couldn't find what you were looking for."},
}

// FriendlyMessage maps a raw error to a message suitable for end users.
// Errors that match no known pattern are returned verbatim.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}
	raw := err.Error()
	if appErr := GetAppError(err); appErr != nil {
		raw = appErr.Message
		if appErr.Details != "" {
			raw += ": " + appErr.Details
		}
	}
	return FriendlyText(raw)
}

// FriendlyText applies the same mapping as FriendlyMessage to a plain message.
func FriendlyText(raw string) string {
	lower := strings.ToLower(raw)
	for _, rule := range friendlyRules {
		for _, p := range rule.patterns {
			if strings.Contains(lower, p) {
				return rule.message
			}
		}
	}
	return raw
}
