package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, "DATABASE_URL", "postgres://localhost/carebook_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.DBMaxConns != 20 {
		t.Errorf("DBMaxConns = %d, want 20", cfg.DBMaxConns)
	}
	if cfg.ClinicName != "CareBook" {
		t.Errorf("ClinicName = %q, want CareBook", cfg.ClinicName)
	}
	if !cfg.IsDev() {
		t.Error("expected IsDev() to be true by default")
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	setEnv(t, "DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is empty")
	}
}

func TestLoad_CORSOriginsSplit(t *testing.T) {
	setEnv(t, "DATABASE_URL", "postgres://localhost/carebook_test")
	setEnv(t, "CORS_ORIGINS", "https://booking.example.com,https://admin.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 CORS origins, got %d: %v", len(cfg.CORSOrigins), cfg.CORSOrigins)
	}
	if cfg.CORSOrigins[0] != "https://booking.example.com" {
		t.Errorf("unexpected first origin: %q", cfg.CORSOrigins[0])
	}
}

func TestValidate_ProductionRequiresSMS(t *testing.T) {
	cfg := &Config{Env: "production"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for production without SMS_API_URL")
	}

	cfg.SMSAPIURL = "https://sms.example.com/v1/messages"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for production without SMS_API_KEY")
	}

	cfg.SMSAPIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_ConnBounds(t *testing.T) {
	cfg := &Config{Env: "development", DBMaxConns: 5, DBMinConns: 10}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when DB_MIN_CONNS exceeds DB_MAX_CONNS")
	}
}
