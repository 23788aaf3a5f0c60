// Package config loads and validates the declarative monitoring input file.
//
// The file describes the monitored Sui entities and the notification
// credentials:
//
//	sui:
//	  validator: "ed25519:..."       # global authority identity
//	bridges:
//	  - alias: "Alpha"
//	    target: "http://10.0.0.1:9100"
//	    public_address: "https://alpha.example.com"
//	    alerts: {uptime: true, voting_power: false}
//	validators:
//	  - alias: "Node One"
//	    target: "10.0.0.2:9184"
//	pagerduty:    {integration_key: "..."}
//	telegram:     {bot_token: "...", chat_id: -100123}
//	discord:      {webhook_url: "..."}
//	alertmanager: {default_webhook_port: "8081"}
//
// Load parses the file, validates every entity and resolves the
// notification channel set. Two error kinds surface from here: ConfigError
// for an unreadable or structurally broken file, and ValidationError for a
// schema violation on a specific entity field. Both are fatal to a run.
package config
