package utils

import (
	"errors"
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims are the claims of an application access token.
type IdentityClaims struct {
	EmailVerified bool `json:"email_verified"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new JWT token for the identity.
func GenerateJWT(id domain.Identity, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := IdentityClaims{
		EmailVerified: id.Verified,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseIdentityJWT parses a JWT token string, validates its signature and standard claims,
// and returns the identity it carries.
func ParseIdentityJWT(tokenString string, secretKey string) (domain.Identity, error) {
	claims := &IdentityClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return domain.Identity{}, err
	}
	if !token.Valid {
		return domain.Identity{}, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return domain.Identity{}, errors.New("token subject is empty")
	}

	return domain.Identity{UserID: claims.Subject, Verified: claims.EmailVerified}, nil
}
