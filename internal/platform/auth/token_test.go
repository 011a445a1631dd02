package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken(testSecret, "cred-123")
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken() error: %v", err)
	}
	if claims.Subject != "cred-123" {
		t.Errorf("expected subject cred-123, got %s", claims.Subject)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != TokenLifetime {
		t.Errorf("expected 24h lifetime, got %s", ttl)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := IssueToken(testSecret, "cred-123")
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}

	if _, err := ParseToken([]byte("other-secret"), token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "cred-123",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseToken(testSecret, token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken(testSecret, "not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
