package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/auraluxe/auraluxe-backend/pkg/config"
)

func TestMintAndParseAdminToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "auraluxe",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()

	token, err := MintAdminToken(cfg, now)
	if err != nil {
		t.Fatalf("mint admin token: %v", err)
	}

	claims, err := ParseAdminToken(cfg, token)
	if err != nil {
		t.Fatalf("parse admin token: %v", err)
	}

	if claims.Role != RoleAdmin {
		t.Fatalf("unexpected role %q", claims.Role)
	}
	if claims.ID == "" {
		t.Fatal("expected a token id")
	}

	// RegisteredClaims is embedded, so access fields directly.
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestParseAdminTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "auraluxe",
		ExpirationMinutes: 10,
	}

	token, err := MintAdminToken(cfg, time.Now())
	if err != nil {
		t.Fatalf("mint admin token: %v", err)
	}

	if _, err = ParseAdminToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseAdminTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "auraluxe",
		ExpirationMinutes: 15,
	}

	token, err := MintAdminToken(cfg, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("mint admin token: %v", err)
	}

	_, err = ParseAdminToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseAdminTokenWrongIssuer(t *testing.T) {
	minted := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "someone-else",
		ExpirationMinutes: 5,
	}

	token, err := MintAdminToken(minted, time.Now())
	if err != nil {
		t.Fatalf("mint admin token: %v", err)
	}

	verifier := minted
	verifier.Issuer = "auraluxe"
	if _, err := ParseAdminToken(verifier, token); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}

func TestMintAdminTokenRequiresSecret(t *testing.T) {
	cfg := config.JWTConfig{Issuer: "auraluxe", ExpirationMinutes: 5}
	if _, err := MintAdminToken(cfg, time.Now()); err == nil {
		t.Fatal("expected missing secret error")
	}
}
