package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// confirmationTTL bounds how long an emailed confirmation link stays valid.
const confirmationTTL = 48 * time.Hour

type confirmationClaims struct {
	jwt.RegisteredClaims
	RedirectTo string `json:"redirect_to,omitempty"`
}

// ConfirmationToken is the signed payload embedded in a confirmation link.
type ConfirmationToken struct {
	UserID     string
	RedirectTo string
}

func newConfirmationToken(secret []byte, userID, redirectTo string, now time.Time) (string, error) {
	claims := confirmationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(confirmationTTL)),
		},
		RedirectTo: redirectTo,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign confirmation token: %w", err)
	}
	return signed, nil
}

func parseConfirmationToken(secret []byte, raw string, now time.Time) (ConfirmationToken, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ConfirmationToken{}, fmt.Errorf("confirmation token is required")
	}
	var claims confirmationClaims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return ConfirmationToken{}, fmt.Errorf("parse confirmation token: %w", err)
	}
	if !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return ConfirmationToken{}, fmt.Errorf("confirmation token is invalid")
	}
	return ConfirmationToken{UserID: claims.Subject, RedirectTo: claims.RedirectTo}, nil
}
