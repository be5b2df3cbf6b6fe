package logutil

import "unicode/utf8"

// TruncateForLog truncates s to at most maxLen bytes for logging, appending
// "..." when anything was cut. The cut never splits a UTF-8 sequence.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// TruncatePayload is TruncateForLog for raw request bodies.
func TruncatePayload(b []byte, maxLen int) string {
	return TruncateForLog(string(b), maxLen)
}
