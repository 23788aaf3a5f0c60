package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/suiwatch/suiwatch/internal/catalog"
)

// DefaultWebhookPort is the Alertmanager default-receiver webhook port used
// when the input file does not set alertmanager.default_webhook_port.
const DefaultWebhookPort = "8081"

// File mirrors the top-level structure of the input YAML file before
// validation. Entity records stay raw here; Validate turns them into
// Entity values.
type File struct {
	Sui        SuiSection    `yaml:"sui"`
	Bridges    []RawEntity   `yaml:"bridges"`
	Validators []RawEntity   `yaml:"validators"`
	PagerDuty  *PagerDuty    `yaml:"pagerduty"`
	Telegram   *Telegram     `yaml:"telegram"`
	Discord    *Discord      `yaml:"discord"`
	AM         *Alertmanager `yaml:"alertmanager"`
}

// SuiSection carries the global validator authority identity substituted
// into alert expressions that reference {authority}.
type SuiSection struct {
	Validator string `yaml:"validator"`
}

// RawEntity is one unvalidated entity record. Alerts values are kept
// untyped so that a non-boolean value can be reported as a ValidationError
// on the specific key rather than as a YAML decode failure.
type RawEntity struct {
	Alias         string         `yaml:"alias"`
	Target        string         `yaml:"target"`
	PublicAddress string         `yaml:"public_address"`
	Alerts        map[string]any `yaml:"alerts"`
}

// PagerDuty holds the paging-service credential.
type PagerDuty struct {
	IntegrationKey string `yaml:"integration_key"`
}

// Telegram holds the chat-bot credentials. ChatID accepts either a quoted
// string or a bare YAML integer; it must parse as an integer either way.
type Telegram struct {
	BotToken string     `yaml:"bot_token"`
	ChatID   ScalarText `yaml:"chat_id"`
}

// Discord holds the chat-webhook credential.
type Discord struct {
	WebhookURL string `yaml:"webhook_url"`
}

// Alertmanager holds generation options for the routing document.
type Alertmanager struct {
	DefaultWebhookPort string `yaml:"default_webhook_port"`
}

// ScalarText captures any YAML scalar as its literal text, so "-100123"
// and -100123 decode identically.
type ScalarText string

func (s *ScalarText) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected scalar, got %s", value.Tag)
	}
	*s = ScalarText(value.Value)
	return nil
}

// Entity is one validated monitored entity. Alerts contains only keys the
// catalog defines for Kind; every defined key is present exactly when the
// input listed it, or all keys are present (true) when the input listed
// none.
type Entity struct {
	Kind          catalog.Kind              `json:"kind"`
	Alias         string                    `json:"alias"`
	Target        string                    `json:"target"`
	PublicAddress string                    `json:"public_address,omitempty"`
	Alerts        map[catalog.AlertKey]bool `json:"alerts"`
}

// NotificationChannels is the resolved credential set gating which channels
// the routing document includes. Presence of a credential is the sole gate:
// an empty PagerDutyKey means no paging channel, Telegram is false unless
// both a bot token and a parsable chat id were supplied, and so on.
type NotificationChannels struct {
	PagerDutyKey string

	Telegram         bool
	TelegramBotToken string
	TelegramChatID   int64

	DiscordWebhookURL string

	WebhookPort string
}

// Config is the fully validated run input.
type Config struct {
	// Authority is the global validator identity from sui.validator.
	Authority string

	Bridges    []Entity
	Validators []Entity

	Channels NotificationChannels
}

// Load reads, parses and validates the input file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Reason: "read failed", Err: err}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &ConfigError{Path: path, Reason: "invalid YAML", Err: err}
	}

	cfg, err := f.Resolve()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve validates the parsed file and assembles the run configuration.
func (f *File) Resolve() (*Config, error) {
	if f.Bridges == nil {
		return nil, &ConfigError{Reason: `no "bridges" section found`}
	}

	bridges, err := Validate(f.Bridges, catalog.KindBridge)
	if err != nil {
		return nil, err
	}
	validators, err := Validate(f.Validators, catalog.KindValidator)
	if err != nil {
		return nil, err
	}

	channels, err := f.channels()
	if err != nil {
		return nil, err
	}

	return &Config{
		Authority:  f.Sui.Validator,
		Bridges:    bridges,
		Validators: validators,
		Channels:   channels,
	}, nil
}

// channels resolves the notification credential set. A telegram section
// with a non-numeric chat id is an error, never a silently disabled
// channel.
func (f *File) channels() (NotificationChannels, error) {
	ch := NotificationChannels{WebhookPort: DefaultWebhookPort}

	if f.AM != nil && f.AM.DefaultWebhookPort != "" {
		ch.WebhookPort = f.AM.DefaultWebhookPort
	}
	if f.PagerDuty != nil {
		ch.PagerDutyKey = f.PagerDuty.IntegrationKey
	}
	if f.Discord != nil {
		ch.DiscordWebhookURL = f.Discord.WebhookURL
	}
	if f.Telegram != nil && f.Telegram.BotToken != "" && f.Telegram.ChatID != "" {
		id, err := strconv.ParseInt(string(f.Telegram.ChatID), 10, 64)
		if err != nil {
			return NotificationChannels{}, &ConfigError{
				Field:  "telegram.chat_id",
				Reason: fmt.Sprintf("%q is not an integer", f.Telegram.ChatID),
			}
		}
		ch.Telegram = true
		ch.TelegramBotToken = f.Telegram.BotToken
		ch.TelegramChatID = id
	}

	return ch, nil
}
