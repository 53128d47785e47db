package notes

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceOpenRe  = regexp.MustCompile("^```(?:json)?\\s*\n?")
	fenceCloseRe = regexp.MustCompile("\n?```\\s*$")
)

// extractJSON strips markdown code fences the model may wrap around
// its output despite instructions.
func extractJSON(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```") {
		clean = fenceOpenRe.ReplaceAllString(clean, "")
		clean = fenceCloseRe.ReplaceAllString(clean, "")
	}
	return clean
}

// parseStructured parses raw model text into a loose JSON value. The
// shape is cleaned up afterwards by normalizeCandidate, so anything
// that is valid JSON passes here.
func parseStructured(raw string) (any, bool) {
	var parsed any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return nil, false
	}
	return parsed, true
}
