package config

import (
	"errors"
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "42")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AdminID != 42 {
		t.Fatalf("want admin 42, got %d", cfg.AdminID)
	}
	if cfg.AckDelay != 30*time.Second {
		t.Fatalf("want 30s delay, got %s", cfg.AckDelay)
	}
	if cfg.SendTimeout != 10*time.Second {
		t.Fatalf("want 10s send timeout, got %s", cfg.SendTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("want info, got %s", cfg.LogLevel)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	_ = os.Unsetenv("BOT_TOKEN")
	t.Setenv("ADMIN_ID", "42")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing BOT_TOKEN")
	}
}

func TestLoad_EmptyToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("ADMIN_ID", "42")

	_, err := Load()
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("want ErrMissingToken, got %v", err)
	}
}

func TestLoad_ZeroAdmin(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "0")

	_, err := Load()
	if !errors.Is(err, ErrMissingAdmin) {
		t.Fatalf("want ErrMissingAdmin, got %v", err)
	}
}

func TestValidate_AckDelay(t *testing.T) {
	cfg := Config{BotToken: "t", AdminID: 1, AckDelay: 0}
	if !errors.Is(cfg.Validate(), ErrBadAckDelay) {
		t.Fatal("want ErrBadAckDelay for zero delay")
	}
	cfg.AckDelay = time.Second
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
