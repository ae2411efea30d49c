package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("RULES_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Store.RedisAddr != "" {
		t.Fatalf("expected in-memory store selected, got %q", cfg.Store.RedisAddr)
	}
	if cfg.Rules.PartyMax != 20 || cfg.Rules.BookingHorizonDays != 90 {
		t.Fatalf("expected default rules, got %+v", cfg.Rules)
	}
}

func TestLoadServerAddrVariants(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.Server.Addr)
	}

	t.Setenv("PORT", "127.0.0.1:9090")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Fatalf("expected host:port passed through, got %s", cfg.Server.Addr)
	}

	t.Setenv("PORT", "bad port")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid PORT")
	}
}

func TestLoadStoreConfig(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Store.RedisAddr != "localhost:6379" || cfg.Store.RedisDB != 3 {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.Store.SessionTTL != 30*time.Minute {
		t.Fatalf("expected 30m TTL, got %v", cfg.Store.SessionTTL)
	}

	t.Setenv("SESSION_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid SESSION_TTL")
	}
}

func TestLoadRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	rules := "party_min: 2\nparty_max: 12\nbooking_horizon_days: 30\nopening_hour: 17\nclosing_hour: 23\n"
	if err := os.WriteFile(path, []byte(rules), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	t.Setenv("RULES_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Rules.PartyMin != 2 || cfg.Rules.PartyMax != 12 || cfg.Rules.BookingHorizonDays != 30 {
		t.Fatalf("unexpected rules: %+v", cfg.Rules)
	}
}

func TestLoadRulesFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("party_min: 5\nparty_max: 2\n"), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	t.Setenv("RULES_FILE", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for inverted party bounds")
	}

	t.Setenv("RULES_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing rules file")
	}
}
