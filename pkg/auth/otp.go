package auth

import (
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// GenerateResetCode produces a 6-digit one-time code by deriving a TOTP
// value from a freshly generated random secret. The secret is thrown away
// afterwards; the code itself is persisted with its own expiry and compared
// verbatim on verification.
func GenerateResetCode() (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "gourmet-gleam",
		AccountName: "password-reset",
		SecretSize:  20,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate reset secret: %w", err)
	}

	code, err := totp.GenerateCode(key.Secret(), time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}

	return code, nil
}
