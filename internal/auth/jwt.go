package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the token lifetime. There is no revocation list: a leaked
// token stays valid until its natural expiry.
const TokenTTL = 24 * time.Hour

// The token only carries the subject. The role is re-read from the database
// on every request, so role changes apply immediately, not at next login.
func GenerateToken(secret, username string) (string, error) {
	return generateTokenAt(secret, username, time.Now())
}

func generateTokenAt(secret, username string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken returns the token subject, or "" when the token is malformed,
// carries a bad signature or has expired. Callers treat "" as anonymous.
func VerifyToken(secret, tokenStr string) string {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return ""
	}
	return claims.Subject
}
