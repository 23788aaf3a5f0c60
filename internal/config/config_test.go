package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Full(t *testing.T) {
	p := writeConfig(t, `sui:
  validator: "ed25519:abc"
bridges:
  - alias: "Alpha"
    target: "http://10.0.0.1:9100"
    public_address: "https://alpha.example.com"
validators:
  - alias: "Node One"
    target: "10.0.0.2:9184"
pagerduty:
  integration_key: "pd-key"
telegram:
  bot_token: "bot-token"
  chat_id: -1001234
discord:
  webhook_url: "https://discord.example/hook"
alertmanager:
  default_webhook_port: "9096"
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Authority != "ed25519:abc" {
		t.Errorf("authority: got %q", cfg.Authority)
	}
	if len(cfg.Bridges) != 1 || len(cfg.Validators) != 1 {
		t.Fatalf("entities: got %d bridges, %d validators", len(cfg.Bridges), len(cfg.Validators))
	}
	ch := cfg.Channels
	if ch.PagerDutyKey != "pd-key" {
		t.Errorf("pagerduty key: got %q", ch.PagerDutyKey)
	}
	if !ch.Telegram || ch.TelegramChatID != -1001234 || ch.TelegramBotToken != "bot-token" {
		t.Errorf("telegram: got %+v", ch)
	}
	if ch.DiscordWebhookURL != "https://discord.example/hook" {
		t.Errorf("discord: got %q", ch.DiscordWebhookURL)
	}
	if ch.WebhookPort != "9096" {
		t.Errorf("webhook port: got %q", ch.WebhookPort)
	}
}

func TestLoad_DefaultWebhookPort(t *testing.T) {
	p := writeConfig(t, `bridges:
  - alias: "Alpha"
    target: "10.0.0.1:9100"
    public_address: "https://alpha.example.com"
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Channels.WebhookPort != DefaultWebhookPort {
		t.Errorf("webhook port: got %q, want %q", cfg.Channels.WebhookPort, DefaultWebhookPort)
	}
	if cfg.Channels.Telegram || cfg.Channels.PagerDutyKey != "" || cfg.Channels.DiscordWebhookURL != "" {
		t.Errorf("unexpected channels: %+v", cfg.Channels)
	}
}

func TestLoad_QuotedChatID(t *testing.T) {
	p := writeConfig(t, `bridges:
  - alias: "Alpha"
    target: "10.0.0.1:9100"
    public_address: "https://alpha.example.com"
telegram:
  bot_token: "tok"
  chat_id: "-42"
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Channels.Telegram || cfg.Channels.TelegramChatID != -42 {
		t.Errorf("telegram: got %+v", cfg.Channels)
	}
}

func TestLoad_NonNumericChatID(t *testing.T) {
	p := writeConfig(t, `bridges:
  - alias: "Alpha"
    target: "10.0.0.1:9100"
    public_address: "https://alpha.example.com"
telegram:
  bot_token: "tok"
  chat_id: "not-a-number"
`)
	_, err := Load(p)
	if err == nil {
		t.Fatal("want error for non-numeric chat_id")
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConfigError, got %T: %v", err, err)
	}
	if ce.Field != "telegram.chat_id" {
		t.Errorf("field: got %q", ce.Field)
	}
}

func TestLoad_MissingBridgesSection(t *testing.T) {
	p := writeConfig(t, `sui:
  validator: "x"
`)
	_, err := Load(p)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConfigError, got %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	p := writeConfig(t, "bridges: [unclosed\n")
	_, err := Load(p)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConfigError, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConfigError, got %v", err)
	}
}
