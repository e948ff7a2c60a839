package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected development environment, got %q", cfg.Environment)
	}
	if cfg.Mail.Service != "smtp" {
		t.Errorf("expected smtp service, got %q", cfg.Mail.Service)
	}
	if cfg.CORS.Origin != "*" {
		t.Errorf("expected wildcard origin, got %q", cfg.CORS.Origin)
	}
	if cfg.RateLimit.EmailWindow != time.Hour || cfg.RateLimit.EmailMax != 5 {
		t.Errorf("unexpected email tier defaults: %v / %d", cfg.RateLimit.EmailWindow, cfg.RateLimit.EmailMax)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("GENERAL_WINDOW", "30s")
	t.Setenv("GENERAL_MAX_REQUESTS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if !cfg.Production() {
		t.Error("expected production mode")
	}
	if cfg.RateLimit.GeneralWindow != 30*time.Second {
		t.Errorf("expected 30s general window, got %v", cfg.RateLimit.GeneralWindow)
	}
	if cfg.RateLimit.GeneralMax != 2 {
		t.Errorf("expected general max 2, got %d", cfg.RateLimit.GeneralMax)
	}
}

func TestProduction(t *testing.T) {
	for env, want := range map[string]bool{
		"production":  true,
		"development": false,
		"test":        false,
		"":            false,
	} {
		cfg := &Config{Environment: env}
		if got := cfg.Production(); got != want {
			t.Errorf("Production() with NODE_ENV=%q: got %v, want %v", env, got, want)
		}
	}
}

func TestMailConfigured_SMTP(t *testing.T) {
	cfg := &Config{Mail: MailConfig{
		Service:   "smtp",
		User:      "relay@example.com",
		Password:  "secret",
		Recipient: "owner@example.com",
	}}
	if !cfg.MailConfigured() {
		t.Error("expected configured with full smtp credentials")
	}

	cfg.Mail.Password = ""
	if cfg.MailConfigured() {
		t.Error("expected not configured without password")
	}
	if got := cfg.MissingMailVars(); len(got) != 1 || got[0] != "EMAIL_PASSWORD" {
		t.Errorf("expected [EMAIL_PASSWORD], got %v", got)
	}
}

func TestFromAddress(t *testing.T) {
	cfg := &Config{Mail: MailConfig{
		User:      "account@example.com",
		Recipient: "owner@example.com",
	}}
	if got := cfg.FromAddress(); got != "account@example.com" {
		t.Errorf("expected account user as from, got %q", got)
	}

	cfg.Mail.User = ""
	if got := cfg.FromAddress(); got != "owner@example.com" {
		t.Errorf("expected recipient fallback as from, got %q", got)
	}
}

func TestMailConfigured_Relay(t *testing.T) {
	cfg := &Config{Mail: MailConfig{
		Service:   "relay",
		RelayURL:  "https://relay.example.com/send",
		Recipient: "owner@example.com",
	}}
	if !cfg.MailConfigured() {
		t.Error("expected configured relay transport")
	}

	cfg.Mail.RelayURL = ""
	cfg.Mail.Recipient = ""
	if cfg.MailConfigured() {
		t.Error("expected not configured without relay url")
	}
	got := cfg.MissingMailVars()
	if len(got) != 2 || got[0] != "RELAY_URL" || got[1] != "SENDER_EMAIL" {
		t.Errorf("expected [RELAY_URL SENDER_EMAIL], got %v", got)
	}
}
