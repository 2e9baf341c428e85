package card

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var accountIDSpace = big.NewInt(1_000_000_000)
var pinSpace = big.NewInt(10_000)

// RandomAccountID draws a uniform 9-digit zero-padded account id.
func RandomAccountID() (string, error) {
	n, err := rand.Int(rand.Reader, accountIDSpace)
	if err != nil {
		return "", fmt.Errorf("draw account id: %w", err)
	}
	return FormatAccountID(n.Int64()), nil
}

// RandomPIN draws a uniform 4-digit zero-padded PIN. A fresh value is drawn on
// every call; the result is never cached or reused between issuances.
func RandomPIN() (string, error) {
	n, err := rand.Int(rand.Reader, pinSpace)
	if err != nil {
		return "", fmt.Errorf("draw pin: %w", err)
	}
	return fmt.Sprintf("%0*d", PINLength, n.Int64()), nil
}
