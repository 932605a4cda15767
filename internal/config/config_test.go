package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.JWTExpiry != 60*time.Minute {
		t.Errorf("expected default expiry 60m, got %v", cfg.JWTExpiry)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("expected default sslmode disable, got %q", cfg.DBSSLMode)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "15m")
	t.Setenv("DB_NAME", "jobtracker_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Errorf("expected secret from env, got %q", cfg.JWTSecret)
	}
	if cfg.JWTExpiry != 15*time.Minute {
		t.Errorf("expected 15m expiry, got %v", cfg.JWTExpiry)
	}
	if !strings.Contains(cfg.DSN(), "dbname=jobtracker_test") {
		t.Errorf("DSN missing db name: %q", cfg.DSN())
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"missing secret", Config{JWTIssuer: "i", JWTAudience: "a"}, "JWT_SECRET"},
		{"missing issuer", Config{JWTSecret: "s", JWTAudience: "a"}, "JWT_ISSUER"},
		{"missing audience", Config{JWTSecret: "s", JWTIssuer: "i"}, "JWT_AUDIENCE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}

	ok := Config{JWTSecret: "s", JWTIssuer: "i", JWTAudience: "a"}
	if err := ok.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}
