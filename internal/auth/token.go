// Package auth mints and verifies the signed bearer tokens carried by
// company links. Tokens are HS256 JWTs scoping a company to one edition.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid link token")

type LinkClaims struct {
	CompanyID string `json:"company"`
	Edition   string `json:"edition"`
	jwt.RegisteredClaims
}

// NewLinkToken signs a link token for a company and edition, valid until
// expiresAt.
func NewLinkToken(secret, companyID, edition string, expiresAt time.Time) (string, error) {
	claims := LinkClaims{
		CompanyID: companyID,
		Edition:   edition,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign link token: %w", err)
	}
	return signed, nil
}

// ParseLinkToken verifies the signature and expiry and returns the claims.
func ParseLinkToken(secret, raw string) (*LinkClaims, error) {
	var claims LinkClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.CompanyID == "" || claims.Edition == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
