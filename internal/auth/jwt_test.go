package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key-with-at-least-32-bytes!!"

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "karthik")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if got := VerifyToken(testSecret, token); got != "karthik" {
		t.Fatalf("expected subject karthik got %q", got)
	}
}

func TestVerifyTokenWrongKey(t *testing.T) {
	token, err := GenerateToken(testSecret, "karthik")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if got := VerifyToken("another-secret-key-with-32-bytes-min!!!!", token); got != "" {
		t.Fatalf("token signed with a different key verified, subject %q", got)
	}
}

func TestVerifyTokenMalformed(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b.c", strings.Repeat("x", 500)} {
		if got := VerifyToken(testSecret, tok); got != "" {
			t.Fatalf("malformed token %q verified, subject %q", tok, got)
		}
	}
}

func TestVerifyTokenExpiryBoundary(t *testing.T) {
	// Just inside the 24h window.
	token, err := generateTokenAt(testSecret, "karthik", time.Now().Add(-TokenTTL+time.Minute))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := VerifyToken(testSecret, token); got != "karthik" {
		t.Fatal("token inside its lifetime was rejected")
	}

	// Just past it.
	token, err = generateTokenAt(testSecret, "karthik", time.Now().Add(-TokenTTL-time.Minute))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := VerifyToken(testSecret, token); got != "" {
		t.Fatal("expired token was accepted")
	}
}

func TestTokenClaims(t *testing.T) {
	issued := time.Now()
	token, err := generateTokenAt(testSecret, "karthik", issued)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	claims := parsed.Claims.(*jwt.RegisteredClaims)

	if claims.Subject != "karthik" {
		t.Fatalf("subject %q", claims.Subject)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != TokenTTL {
		t.Fatalf("expected 24h lifetime got %v", got)
	}
}

func TestVerifyTokenRejectsUnsignedAlg(t *testing.T) {
	// alg=none must never pass the HMAC method check.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &jwt.RegisteredClaims{
		Subject:   "karthik",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if got := VerifyToken(testSecret, token); got != "" {
		t.Fatal("unsigned token was accepted")
	}
}
