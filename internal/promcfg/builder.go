package promcfg

import (
	"strings"
	"time"

	"github.com/prometheus/common/model"

	"github.com/suiwatch/suiwatch/internal/catalog"
	"github.com/suiwatch/suiwatch/internal/config"
)

// Options carries the deployment addresses baked into the generated file.
// Empty fields fall back to the ${VAR} placeholders the deployment wrapper
// substitutes at install time.
type Options struct {
	PrometheusTarget        string
	AlertmanagerTarget      string
	BlackboxExporterAddress string

	// RuleGlob is the rule_files pattern pointing at the generated rule
	// directory as mounted inside the Prometheus container.
	RuleGlob string
}

func (o Options) withDefaults() Options {
	if o.PrometheusTarget == "" {
		o.PrometheusTarget = "${PROMETHEUS_TARGET}"
	}
	if o.AlertmanagerTarget == "" {
		o.AlertmanagerTarget = "${ALERTMANAGER_TARGET}"
	}
	if o.BlackboxExporterAddress == "" {
		o.BlackboxExporterAddress = "${BLACKBOX_EXPORTER_ADDRESS}"
	}
	if o.RuleGlob == "" {
		o.RuleGlob = "/etc/prometheus/rules/*.yml"
	}
	return o
}

// Builder assembles the scrape configuration for validated entities.
type Builder struct {
	opts Options
}

// NewBuilder returns a Builder with defaults applied to opts.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts.withDefaults()}
}

// Build returns the full scrape configuration: the static base, then
// per-bridge jobs (metrics, health probe, ingress probe) in input order,
// then per-validator metrics jobs in input order.
func (b *Builder) Build(bridges, validators []config.Entity) *Config {
	cfg := b.base()
	for _, e := range bridges {
		metrics, health, ingress := b.BridgeJobs(e)
		cfg.ScrapeConfigs = append(cfg.ScrapeConfigs, metrics, health, ingress)
	}
	for _, e := range validators {
		cfg.ScrapeConfigs = append(cfg.ScrapeConfigs, b.ValidatorJob(e))
	}
	return cfg
}

// base is the entity-independent part of the configuration: global scrape
// intervals, external labels, the rule-file glob, the Alertmanager address
// and Prometheus's self-monitoring job.
func (b *Builder) base() *Config {
	return &Config{
		Global: Global{
			ScrapeInterval:     model.Duration(15 * time.Second),
			EvaluationInterval: model.Duration(15 * time.Second),
			ExternalLabels: map[string]string{
				"cluster": "sui-monitoring",
				"replica": "prometheus-1",
			},
		},
		RuleFiles: []string{b.opts.RuleGlob},
		Alerting: Alerting{
			Alertmanagers: []AlertmanagerConfig{
				{StaticConfigs: []StaticConfig{{Targets: []string{b.opts.AlertmanagerTarget}}}},
			},
		},
		ScrapeConfigs: []ScrapeConfig{
			{
				JobName:        "prometheus",
				StaticConfigs:  []StaticConfig{{Targets: []string{b.opts.PrometheusTarget}}},
				ScrapeInterval: model.Duration(5 * time.Second),
				MetricsPath:    "/metrics",
			},
		},
	}
}

// BridgeJobs builds the three jobs for one bridge: a direct metrics scrape,
// a blackbox probe of the /metrics_pub_key endpoint, and a blackbox probe
// of the public ingress address.
func (b *Builder) BridgeJobs(e config.Entity) (metrics, health, ingress ScrapeConfig) {
	clean, scheme := StripScheme(e.Target)
	name := "sui_bridge_" + catalog.SanitizeAlias(e.Alias)

	metrics = ScrapeConfig{
		JobName: name,
		StaticConfigs: []StaticConfig{{
			Targets: []string{clean},
			Labels:  entityLabels("sui_bridge", e.Alias),
		}},
		ScrapeInterval: model.Duration(15 * time.Second),
		MetricsPath:    "/metrics",
		ScrapeTimeout:  model.Duration(10 * time.Second),
		Scheme:         scheme,
		HonorLabels:    true,
		RelabelConfigs: []RelabelConfig{
			{TargetLabel: "instance", Replacement: clean},
		},
	}

	health = b.probeJob(
		name+"_metrics_public_key_check",
		"sui_bridge_health_check",
		e.Alias,
		e.PublicAddress+"/metrics_pub_key",
		clean,
	)
	ingress = b.probeJob(
		name+"_ingress_check",
		"sui_bridge_ingress_check",
		e.Alias,
		e.PublicAddress,
		clean,
	)
	return metrics, health, ingress
}

// ValidatorJob builds the single metrics job for a validator. Validators
// have no public ingress in this model, so no probe jobs are generated.
func (b *Builder) ValidatorJob(e config.Entity) ScrapeConfig {
	clean, scheme := StripScheme(e.Target)
	return ScrapeConfig{
		JobName: "sui_validator_" + catalog.SanitizeAlias(e.Alias),
		StaticConfigs: []StaticConfig{{
			Targets: []string{clean},
			Labels:  entityLabels("sui_validator", e.Alias),
		}},
		ScrapeInterval: model.Duration(15 * time.Second),
		MetricsPath:    "/metrics",
		ScrapeTimeout:  model.Duration(10 * time.Second),
		Scheme:         scheme,
		HonorLabels:    true,
		RelabelConfigs: []RelabelConfig{
			{TargetLabel: "instance", Replacement: clean},
		},
	}
}

// probeJob builds a blackbox http_2xx probe. The externally visible
// instance label is restored to the bridge's scrape address rather than the
// probe proxy address, and the actual scrape address is pointed at the
// blackbox exporter.
func (b *Builder) probeJob(jobName, service, alias, target, instance string) ScrapeConfig {
	return ScrapeConfig{
		JobName:     jobName,
		MetricsPath: "/probe",
		Params:      map[string][]string{"module": {"http_2xx"}},
		StaticConfigs: []StaticConfig{{
			Targets: []string{target},
			Labels:  entityLabels(service, alias),
		}},
		ScrapeInterval: model.Duration(time.Minute),
		ScrapeTimeout:  model.Duration(10 * time.Second),
		RelabelConfigs: []RelabelConfig{
			{SourceLabels: []string{"__address__"}, TargetLabel: "__param_target"},
			{SourceLabels: []string{"__param_target"}, TargetLabel: "instance", Replacement: instance},
			{TargetLabel: "__address__", Replacement: b.opts.BlackboxExporterAddress},
		},
	}
}

func entityLabels(service, alias string) map[string]string {
	return map[string]string{
		"service":     service,
		"environment": alias,
		"configured":  "true",
	}
}

// StripScheme splits an optional http/https scheme prefix off target. The
// remainder is the scrape address; the scheme becomes a separate job field,
// defaulting to http when target carries no prefix. Stripping is idempotent
// and lossless: scheme + "://" + clean is a canonical form of target.
func StripScheme(target string) (clean, scheme string) {
	switch {
	case strings.HasPrefix(target, "https://"):
		return target[len("https://"):], "https"
	case strings.HasPrefix(target, "http://"):
		return target[len("http://"):], "http"
	default:
		return target, "http"
	}
}
