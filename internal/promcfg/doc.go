// Package promcfg builds the Prometheus scrape configuration for the
// monitored entities: a static self-monitoring job, one metrics job per
// entity, and for bridges two additional blackbox probe jobs (health-check
// and ingress).
//
// Deployment-specific addresses (the Prometheus and Alertmanager targets
// and the blackbox exporter) default to ${VAR} placeholder strings that the
// surrounding deployment expands, matching how the generated file is
// consumed.
package promcfg
