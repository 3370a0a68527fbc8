package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/geocoder89/dashhub/internal/auth"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	m := auth.NewManager("test-secret", 7*24*time.Hour)

	token, err := m.GenerateToken("user-1", "admin")

	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := m.VerifyToken(token)

	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Fatalf("got userID %q, want %q", claims.UserID, "user-1")
	}

	if claims.Role != "admin" {
		t.Fatalf("got role %q, want %q", claims.Role, "admin")
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	issuer := auth.NewManager("secret-a", time.Hour)
	verifier := auth.NewManager("secret-b", time.Hour)

	token, err := issuer.GenerateToken("user-1", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = verifier.VerifyToken(token)

	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	m := auth.NewManager("test-secret", -time.Minute)

	token, err := m.GenerateToken("user-1", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = m.VerifyToken(token)

	if !errors.Is(err, auth.ErrExpiredToken) {
		t.Fatalf("got %v, want ErrExpiredToken", err)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	_, err := m.VerifyToken("not.a.token")

	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}
