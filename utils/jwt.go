package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetime (7 days)
const tokenLifetime = 7 * 24 * time.Hour

// TokenClaims is the verified content of a bearer token: who the caller is
// and whether they hold the admin flag.
type TokenClaims struct {
	Email string
	Admin bool
}

func GenerateToken(secret []byte, email string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"admin": isAdmin,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ParseToken(secret []byte, tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, errors.New("token missing email claim")
	}
	admin, _ := claims["admin"].(bool)

	return &TokenClaims{Email: email, Admin: admin}, nil
}
