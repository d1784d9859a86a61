package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewService("secret", time.Minute, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID || claims.Role != "user" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestExpiredAccessToken(t *testing.T) {
	svc := NewService("secret", -time.Minute, time.Hour)
	token, err := svc.GenerateAccessToken(uuid.New(), "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, _ := NewService("a", time.Minute, time.Hour).GenerateAccessToken(uuid.New(), "user")

	if _, err := NewService("b", time.Minute, time.Hour).ValidateAccessToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshTokenHashIsStable(t *testing.T) {
	svc := NewService("secret", time.Minute, time.Hour)
	token, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(token))
	}
	if HashRefreshToken(token) != HashRefreshToken(token) || HashRefreshToken(token) == token {
		t.Fatal("hash must be deterministic and differ from token")
	}
}
