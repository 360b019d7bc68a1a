package auth

import (
	"testing"
	"time"

	"github.com/ghorkotha/ghorkotha-backend/pkg/config"
	"github.com/google/uuid"
)

func jwtTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "ghorkotha-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseAdminToken(t *testing.T) {
	cfg := jwtTestConfig()
	adminID := uuid.New()

	token, err := MintAdminToken(cfg, time.Now(), adminID, "admin@ghorkotha.test")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseAdminToken(cfg, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.AdminID != adminID {
		t.Fatalf("admin id mismatch: %s vs %s", claims.AdminID, adminID)
	}
	if claims.Email != "admin@ghorkotha.test" {
		t.Fatalf("email mismatch: %s", claims.Email)
	}
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
	cfg := jwtTestConfig()
	token, err := MintAdminToken(cfg, time.Now().Add(-2*time.Hour), uuid.New(), "admin@ghorkotha.test")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := ParseAdminToken(cfg, token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParseAdminTokenRejectsWrongIssuer(t *testing.T) {
	minted, err := MintAdminToken(config.JWTConfig{Secret: "test-secret", Issuer: "other", ExpirationMinutes: 60}, time.Now(), uuid.New(), "a@b.c")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := ParseAdminToken(jwtTestConfig(), minted); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}

func TestMintAdminTokenValidation(t *testing.T) {
	if _, err := MintAdminToken(config.JWTConfig{}, time.Now(), uuid.New(), "a@b.c"); err == nil {
		t.Fatal("expected error without secret")
	}
	if _, err := MintAdminToken(jwtTestConfig(), time.Now(), uuid.Nil, "a@b.c"); err == nil {
		t.Fatal("expected error without admin id")
	}
}
