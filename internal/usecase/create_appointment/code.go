package create_appointment

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const codeSuffixCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxCodeAttempts bounds the insert retries on a confirmation code collision.
const maxCodeAttempts = 5

// generateConfirmationCode produces a code like "BS16718304007KQ": the "BS"
// prefix, 8 digits derived from the clock and 3 random uppercase
// alphanumerics. Uniqueness is enforced by the ledger, not here; the caller
// retries on collision.
func generateConfirmationCode(now time.Time) (string, error) {
	digits := now.Unix() % 100000000

	suffix := make([]byte, 3)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeSuffixCharset))))
		if err != nil {
			return "", fmt.Errorf("confirmation code: %w", err)
		}
		suffix[i] = codeSuffixCharset[n.Int64()]
	}

	return fmt.Sprintf("BS%08d%s", digits, suffix), nil
}
