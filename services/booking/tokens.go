// File: services/booking/tokens.go
package booking

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// newSecureToken returns 16 random bytes hex-encoded, the capability key for
// one reschedule or cancel link.
func newSecureToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
