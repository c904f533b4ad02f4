package scheduling

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// generateCancellationToken returns a 256-bit random token, hex encoded. The
// token is the sole credential for self-service cancellation, so it must not
// be guessable.
func generateCancellationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
