package config

import (
	"testing"
	"time"
)

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_ProductionRequiresIssuerAndAudience(t *testing.T) {
	c := Config{
		App:  AppConfig{Env: "production", Port: 8080},
		Auth: AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without issuer/audience")
	}
}

func TestValidate_AppliesTTLDefaults(t *testing.T) {
	c := Config{
		App:  AppConfig{Env: "local", Port: 8080},
		Auth: AuthConfig{JWTSecret: "secret"},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.Auth.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("expected access ttl default, got %v", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		t.Fatalf("expected refresh ttl greater than access ttl")
	}
}

func TestValidate_RejectsRefreshShorterThanAccess(t *testing.T) {
	c := Config{
		App: AppConfig{Env: "local", Port: 8080},
		Auth: AuthConfig{
			JWTSecret:       "secret",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: time.Minute,
		},
	}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for refresh ttl <= access ttl")
	}
}
