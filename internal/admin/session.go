package admin

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionSubject = "admin"

// Claims represents the JWT claims for admin sessions
type Claims struct {
	jwt.RegisteredClaims
}

// CreateSessionToken creates a new admin session token.
// The token is signed with HS256 and expires after sessionHours.
func CreateSessionToken(secret string, sessionHours int) (string, error) {
	expiresAt := time.Now().Add(time.Duration(sessionHours) * time.Hour)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionSubject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateSessionToken validates an admin session token.
// Returns an error if the token is invalid, expired, or malformed.
func ValidateSessionToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.Subject != sessionSubject {
		return nil, fmt.Errorf("unexpected token subject")
	}

	return claims, nil
}
