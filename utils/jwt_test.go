package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, "ada@example.com", true)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if !claims.Admin {
		t.Error("admin flag lost")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("secret-one"), "ada@example.com", false)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken([]byte("secret-two"), token); err == nil {
		t.Fatal("token verified with wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.MapClaims{
		"email": "ada@example.com",
		"admin": false,
		"iat":   time.Now().Add(-2 * time.Hour).Unix(),
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseToken(secret, token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestTokenMissingEmail(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.MapClaims{
		"admin": true,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseToken(secret, token); err == nil {
		t.Fatal("token without email claim accepted")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := ParseToken([]byte("test-secret"), "not.a.token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
