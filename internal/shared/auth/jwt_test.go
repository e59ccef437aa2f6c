package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignAndVerify(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := SignJWT("user-1", Claims{Email: "a@example.com", Name: "Ann"}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "a@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsTamperedAndForeignTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := SignJWT("user-1", Claims{}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyJWT(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for tampered signature, got %v", err)
	}

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, _ := foreign.SignedString([]byte("test-secret"))
	if _, err := VerifyJWT(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token without issuer, got %v", err)
	}

	if _, err := VerifyJWT(strings.Repeat("a", 10)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for garbage, got %v", err)
	}
}

func TestSignRequiresSecretInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")
	if _, err := SignJWT("user-1", Claims{}, time.Hour); err == nil {
		t.Fatalf("expected error without secret in production")
	}
}
