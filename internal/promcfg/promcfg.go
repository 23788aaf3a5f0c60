package promcfg

import "github.com/prometheus/common/model"

// Config is the generated Prometheus configuration document.
type Config struct {
	Global        Global         `yaml:"global"`
	RuleFiles     []string       `yaml:"rule_files"`
	Alerting      Alerting       `yaml:"alerting"`
	ScrapeConfigs []ScrapeConfig `yaml:"scrape_configs"`
}

// Global holds the top-level scrape defaults and external labels.
type Global struct {
	ScrapeInterval     model.Duration    `yaml:"scrape_interval"`
	EvaluationInterval model.Duration    `yaml:"evaluation_interval"`
	ExternalLabels     map[string]string `yaml:"external_labels,omitempty"`
}

// Alerting points Prometheus at its Alertmanager instances.
type Alerting struct {
	Alertmanagers []AlertmanagerConfig `yaml:"alertmanagers"`
}

// AlertmanagerConfig is one statically addressed Alertmanager.
type AlertmanagerConfig struct {
	StaticConfigs []StaticConfig `yaml:"static_configs"`
}

// StaticConfig is a static target group with optional labels.
type StaticConfig struct {
	Targets []string          `yaml:"targets"`
	Labels  map[string]string `yaml:"labels,omitempty"`
}

// ScrapeConfig is one scrape or probe job.
type ScrapeConfig struct {
	JobName        string              `yaml:"job_name"`
	MetricsPath    string              `yaml:"metrics_path,omitempty"`
	Params         map[string][]string `yaml:"params,omitempty"`
	StaticConfigs  []StaticConfig      `yaml:"static_configs"`
	ScrapeInterval model.Duration      `yaml:"scrape_interval,omitempty"`
	ScrapeTimeout  model.Duration      `yaml:"scrape_timeout,omitempty"`
	Scheme         string              `yaml:"scheme,omitempty"`
	HonorLabels    bool                `yaml:"honor_labels,omitempty"`
	RelabelConfigs []RelabelConfig     `yaml:"relabel_configs,omitempty"`
}

// RelabelConfig is one relabeling step.
type RelabelConfig struct {
	SourceLabels []string `yaml:"source_labels,omitempty"`
	TargetLabel  string   `yaml:"target_label"`
	Replacement  string   `yaml:"replacement,omitempty"`
}
