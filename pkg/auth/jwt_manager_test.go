package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestGenerateVerifyRoundtrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.Generate("user-42")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "user-42" {
		t.Errorf("expected subject 'user-42', got %q", claims.Subject)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-one", time.Hour).Generate("user")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := NewJWTManager("secret-two", time.Hour).Verify(token); err == nil {
		t.Error("token signed with another secret must not verify")
	}
}

func TestVerifyForeignIssuer(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "user",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewJWTManager("secret", time.Hour).Verify(token); err == nil {
		t.Error("token from another issuer must not verify")
	}
}

func TestExpiry(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.Generate("user")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	exp, err := m.Expiry(token)
	if err != nil {
		t.Fatalf("Expiry: %v", err)
	}
	if time.Until(exp) <= 0 || time.Until(exp) > time.Hour {
		t.Errorf("expiry out of expected window: %s", exp)
	}
}
