package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePlanID creates a human-readable plan ID.
// Format: {ORIGIN}-{DESTINATION}-{8charHexUUID}
//
// Example:
//   - Input: origin="khpn", destination="KGON"
//   - Output: "KHPN-KGON-a3f8e2b1"
func GeneratePlanID(origin, destination string) string {
	return sanitizeCode(origin) + "-" + sanitizeCode(destination) + "-" + generateShortUUID()
}

// GenerateSessionID creates an opaque session identifier
func GenerateSessionID() string {
	return uuid.NewString()
}

// sanitizeCode uppercases an identifier and drops anything that is not a
// letter or digit, so the ID stays safe for file names
func sanitizeCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
