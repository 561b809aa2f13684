package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "DB_DRIVER", "DB_DSN", "AUTH_HMAC_SECRET",
		"TOKEN_TTL", "ADMIN_USER", "ADMIN_PASS_HASH", "CORS_ORIGINS_ONLINE", "CORS_ORIGINS_OFFLINE"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	if cfg.Mode != ModeOffline {
		t.Errorf("mode = %q", cfg.Mode)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("addr = %q", cfg.HTTPAddr)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("driver = %q", cfg.DBDriver)
	}
	if cfg.TokenTTL != 8*time.Hour {
		t.Errorf("ttl = %v", cfg.TokenTTL)
	}
	if cfg.AdminUser != "admin" || cfg.AdminPassHash != "" {
		t.Errorf("admin = %q/%q", cfg.AdminUser, cfg.AdminPassHash)
	}
	if len(cfg.CORSOriginsOffline) != 2 {
		t.Errorf("offline origins = %v", cfg.CORSOriginsOffline)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CORS_ORIGINS_ONLINE", "https://a.example, https://b.example, ")

	cfg := FromEnv()
	if cfg.Mode != ModeOnline || cfg.HTTPAddr != ":9999" || cfg.DBDriver != "postgres" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("ttl = %v", cfg.TokenTTL)
	}
	if len(cfg.CORSOriginsOnline) != 2 || cfg.CORSOriginsOnline[1] != "https://b.example" {
		t.Errorf("online origins = %v", cfg.CORSOriginsOnline)
	}
}

func TestEnvDurationBadValue(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")
	if cfg := FromEnv(); cfg.TokenTTL != 8*time.Hour {
		t.Errorf("bad ttl fell through: %v", cfg.TokenTTL)
	}
}
