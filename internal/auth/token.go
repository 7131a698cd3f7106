package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims du token d'accès (RBAC simple: EstAdmin)
type Claims struct {
	UserID   uint `json:"userId"`
	EstAdmin bool `json:"estAdmin"`
	jwt.RegisteredClaims
}

// Durée de vie du token d'accès
const AccessTTL = 15 * time.Minute

var (
	secret []byte
	issuer string
)

// Configure enregistre le secret HS256 et l'issuer attendus.
func Configure(s, iss string) error {
	if s == "" {
		return errors.New("JWT_SECRET manquant")
	}
	secret = []byte(s)
	issuer = iss
	return nil
}

// GenerateAccessToken émet un JWT HS256 avec iss, sub, iat, exp et jti.
func GenerateAccessToken(userID uint, estAdmin bool) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("auth non configurée (secret absent)")
	}

	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		EstAdmin: estAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			ID:        fmt.Sprintf("%d-%d", userID, now.UnixNano()),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

// ParseAndValidate vérifie signature, issuer et expiration.
func ParseAndValidate(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token invalide")
	}

	c, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims invalides")
	}
	if c.Issuer != issuer {
		return nil, errors.New("issuer invalide")
	}
	if c.ExpiresAt == nil || time.Now().After(c.ExpiresAt.Time) {
		return nil, errors.New("token expiré")
	}

	return c, nil
}
