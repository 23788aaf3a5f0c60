package amcfg

import (
	"fmt"
	"time"

	"github.com/prometheus/common/model"

	"github.com/suiwatch/suiwatch/internal/catalog"
	"github.com/suiwatch/suiwatch/internal/config"
)

// Receiver names referenced by the route tree.
const (
	ReceiverDefault  = "default-webhook"
	ReceiverCritical = "critical-alerts"
	ReceiverWarning  = "warning-alerts"
)

// Config is the generated Alertmanager document.
type Config struct {
	Route        Route         `yaml:"route"`
	Receivers    []Receiver    `yaml:"receivers"`
	InhibitRules []InhibitRule `yaml:"inhibit_rules"`
}

// Route is one node of the routing tree.
type Route struct {
	Receiver       string            `yaml:"receiver"`
	GroupBy        []string          `yaml:"group_by,omitempty"`
	GroupWait      model.Duration    `yaml:"group_wait,omitempty"`
	GroupInterval  model.Duration    `yaml:"group_interval,omitempty"`
	RepeatInterval model.Duration    `yaml:"repeat_interval,omitempty"`
	Match          map[string]string `yaml:"match,omitempty"`
	Routes         []Route           `yaml:"routes,omitempty"`
}

// Receiver bundles the notification channels for one route target.
type Receiver struct {
	Name             string            `yaml:"name"`
	WebhookConfigs   []WebhookConfig   `yaml:"webhook_configs,omitempty"`
	PagerDutyConfigs []PagerDutyConfig `yaml:"pagerduty_configs,omitempty"`
	TelegramConfigs  []TelegramConfig  `yaml:"telegram_configs,omitempty"`
	DiscordConfigs   []DiscordConfig   `yaml:"discord_configs,omitempty"`
}

type WebhookConfig struct {
	URL string `yaml:"url"`
}

type PagerDutyConfig struct {
	RoutingKey string `yaml:"routing_key"`
}

type TelegramConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChatID    int64  `yaml:"chat_id"`
	ParseMode string `yaml:"parse_mode,omitempty"`
}

type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

// InhibitRule suppresses target alerts while a matching source alert fires.
type InhibitRule struct {
	SourceMatch map[string]string `yaml:"source_match"`
	TargetMatch map[string]string `yaml:"target_match"`
	Equal       []string          `yaml:"equal"`
}

// Build assembles the routing document from the resolved credential set.
// The structure is fixed; only receiver channel membership varies with
// which credentials are present.
func Build(ch config.NotificationChannels) *Config {
	groupBy := []string{"alertname", "service", "environment"}

	return &Config{
		Route: Route{
			Receiver:      ReceiverDefault,
			GroupBy:       groupBy,
			GroupWait:     model.Duration(30 * time.Second),
			GroupInterval: model.Duration(5 * time.Minute),
			Routes: []Route{
				{
					Receiver:       ReceiverCritical,
					Match:          map[string]string{"severity": string(catalog.SeverityCritical)},
					GroupWait:      model.Duration(10 * time.Second),
					RepeatInterval: model.Duration(time.Hour),
				},
				{
					Receiver:       ReceiverWarning,
					Match:          map[string]string{"severity": string(catalog.SeverityWarning)},
					GroupWait:      model.Duration(2 * time.Minute),
					RepeatInterval: model.Duration(6 * time.Hour),
				},
			},
		},
		Receivers: []Receiver{
			defaultReceiver(ch),
			assembleReceiver(ch, catalog.SeverityCritical),
			assembleReceiver(ch, catalog.SeverityWarning),
		},
		InhibitRules: []InhibitRule{
			{
				SourceMatch: map[string]string{"severity": string(catalog.SeverityCritical)},
				TargetMatch: map[string]string{"severity": string(catalog.SeverityWarning)},
				Equal:       groupBy,
			},
		},
	}
}

// defaultReceiver is the root fallback: webhook only, always present.
func defaultReceiver(ch config.NotificationChannels) Receiver {
	return Receiver{
		Name:           ReceiverDefault,
		WebhookConfigs: []WebhookConfig{{URL: webhookURL(ch)}},
	}
}

// assembleReceiver builds the receiver for one severity as a pure function
// of credential presence. The webhook channel is unconditional; telegram
// and discord are attached when their credentials exist; pagerduty is
// attached only on the critical receiver.
func assembleReceiver(ch config.NotificationChannels, severity catalog.Severity) Receiver {
	r := Receiver{
		WebhookConfigs: []WebhookConfig{{URL: webhookURL(ch)}},
	}
	switch severity {
	case catalog.SeverityCritical:
		r.Name = ReceiverCritical
		if ch.PagerDutyKey != "" {
			r.PagerDutyConfigs = []PagerDutyConfig{{RoutingKey: ch.PagerDutyKey}}
		}
	default:
		r.Name = ReceiverWarning
	}
	if ch.Telegram {
		r.TelegramConfigs = []TelegramConfig{{
			BotToken:  ch.TelegramBotToken,
			ChatID:    ch.TelegramChatID,
			ParseMode: "HTML",
		}}
	}
	if ch.DiscordWebhookURL != "" {
		r.DiscordConfigs = []DiscordConfig{{WebhookURL: ch.DiscordWebhookURL}}
	}
	return r
}

func webhookURL(ch config.NotificationChannels) string {
	return fmt.Sprintf("http://127.0.0.1:%s/alerts", ch.WebhookPort)
}
