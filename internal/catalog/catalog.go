package catalog

import "strings"

// Kind identifies the type of monitored entity.
type Kind string

const (
	KindBridge    Kind = "bridge"
	KindValidator Kind = "validator"
)

// Prefix returns the job/file name prefix for entities of this kind.
func (k Kind) Prefix() string {
	switch k {
	case KindValidator:
		return "sui_validator"
	default:
		return "sui_bridge"
	}
}

// Category names a rule group within an entity's rule file.
//
// Bridge rules are grouped by which bridge-client mode they apply to;
// validator rules are grouped by severity.
type Category string

const (
	CategoryCommon         Category = "common"
	CategoryClientDisabled Category = "client-disabled"
	CategoryClientEnabled  Category = "client-enabled"
	CategoryCritical       Category = "critical"
	CategoryWarning        Category = "warning"
)

// Severity is the alert severity label value routed on by Alertmanager.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// AlertKey identifies one alert template within a kind's catalog. It is the
// key operators use in an entity's `alerts:` map to enable or disable the
// corresponding rule.
type AlertKey string

// Template is one alert definition. Name, Expr, Summary and Description are
// patterns: `{alias}` expands to the entity alias and `{authority}` to the
// global validator identity. Thresholds and durations are template data and
// are carried into generated rules unchanged.
type Template struct {
	Key      AlertKey
	Kind     Kind
	Category Category
	Severity Severity

	// Name is the alert name pattern. The generator substitutes the
	// sanitized alias here so the result stays a valid metric name.
	Name string

	Expr        string
	For         string
	Summary     string
	Description string

	// Dashboard is the Grafana dashboard slug surfaced as an annotation.
	Dashboard string
}

var bridgeCategories = []Category{
	CategoryCommon,
	CategoryClientDisabled,
	CategoryClientEnabled,
}

var validatorCategories = []Category{
	CategoryCritical,
	CategoryWarning,
}

// bridgeTemplates is the bridge alert catalog. Order is fixed and defines
// the order of generated rules.
var bridgeTemplates = []Template{
	{
		Key:         "uptime",
		Kind:        KindBridge,
		Category:    CategoryCommon,
		Severity:    SeverityCritical,
		Name:        "SuiBridgeDown_{alias}",
		Expr:        `up{service="sui_bridge", environment="{alias}"} == 0`,
		For:         "5m",
		Summary:     "Sui bridge {alias} is down",
		Description: "No metrics have been scraped from bridge {alias} for 5 minutes.",
		Dashboard:   "sui-bridge-overview",
	},
	{
		Key:         "voting_power",
		Kind:        KindBridge,
		Category:    CategoryCommon,
		Severity:    SeverityCritical,
		Name:        "SuiBridgeVotingPowerZero_{alias}",
		Expr:        `sui_bridge_current_voting_power{environment="{alias}", authority="{authority}"} == 0`,
		For:         "10m",
		Summary:     "Bridge {alias} reports zero voting power",
		Description: "Bridge authority {authority} on {alias} has held zero voting power for 10 minutes.",
		Dashboard:   "sui-bridge-committee",
	},
	{
		Key:         "public_key_check",
		Kind:        KindBridge,
		Category:    CategoryCommon,
		Severity:    SeverityCritical,
		Name:        "SuiBridgePublicKeyUnreachable_{alias}",
		Expr:        `probe_success{service="sui_bridge_health_check", environment="{alias}"} == 0`,
		For:         "5m",
		Summary:     "Bridge {alias} metrics public key endpoint unreachable",
		Description: "The /metrics_pub_key probe against bridge {alias} has failed for 5 minutes.",
		Dashboard:   "sui-bridge-overview",
	},
	{
		Key:         "ingress_check",
		Kind:        KindBridge,
		Category:    CategoryCommon,
		Severity:    SeverityWarning,
		Name:        "SuiBridgeIngressUnreachable_{alias}",
		Expr:        `probe_success{service="sui_bridge_ingress_check", environment="{alias}"} == 0`,
		For:         "5m",
		Summary:     "Bridge {alias} public ingress unreachable",
		Description: "The public address of bridge {alias} has not answered HTTP probes for 5 minutes.",
		Dashboard:   "sui-bridge-overview",
	},
	{
		Key:         "unexpected_client",
		Kind:        KindBridge,
		Category:    CategoryClientDisabled,
		Severity:    SeverityWarning,
		Name:        "SuiBridgeClientUnexpectedlyEnabled_{alias}",
		Expr:        `sui_bridge_client_enabled{environment="{alias}"} == 1`,
		For:         "15m",
		Summary:     "Bridge {alias} client enabled unexpectedly",
		Description: "Bridge {alias} is configured client-disabled but its node reports an active bridge client.",
		Dashboard:   "sui-bridge-client",
	},
	{
		Key:         "client_sync_lag",
		Kind:        KindBridge,
		Category:    CategoryClientEnabled,
		Severity:    SeverityWarning,
		Name:        "SuiBridgeClientSyncStalled_{alias}",
		Expr:        `increase(sui_bridge_last_synced_sui_checkpoints{environment="{alias}"}[10m]) == 0`,
		For:         "10m",
		Summary:     "Bridge {alias} client stopped syncing Sui checkpoints",
		Description: "Bridge {alias} has made no Sui checkpoint sync progress in 10 minutes.",
		Dashboard:   "sui-bridge-client",
	},
	{
		Key:         "eth_sync_lag",
		Kind:        KindBridge,
		Category:    CategoryClientEnabled,
		Severity:    SeverityWarning,
		Name:        "SuiBridgeEthSyncStalled_{alias}",
		Expr:        `increase(sui_bridge_last_finalized_eth_block{environment="{alias}"}[15m]) == 0`,
		For:         "15m",
		Summary:     "Bridge {alias} client stopped following Ethereum",
		Description: "Bridge {alias} has observed no new finalized Ethereum block in 15 minutes.",
		Dashboard:   "sui-bridge-client",
	},
	{
		Key:         "gas_balance",
		Kind:        KindBridge,
		Category:    CategoryClientEnabled,
		Severity:    SeverityCritical,
		Name:        "SuiBridgeGasBalanceLow_{alias}",
		Expr:        `sui_bridge_gas_coin_balance{environment="{alias}"} < 5000000000`,
		For:         "5m",
		Summary:     "Bridge {alias} gas coin balance below 5 SUI",
		Description: "Bridge {alias} is running low on gas; claim submission will fail once the balance is exhausted.",
		Dashboard:   "sui-bridge-client",
	},
}

// validatorTemplates is the validator alert catalog. Order is fixed.
var validatorTemplates = []Template{
	{
		Key:         "uptime",
		Kind:        KindValidator,
		Category:    CategoryCritical,
		Severity:    SeverityCritical,
		Name:        "SuiValidatorDown_{alias}",
		Expr:        `up{service="sui_validator", environment="{alias}"} == 0`,
		For:         "5m",
		Summary:     "Sui validator {alias} is down",
		Description: "No metrics have been scraped from validator {alias} for 5 minutes.",
		Dashboard:   "sui-validator-overview",
	},
	{
		Key:         "voting_power",
		Kind:        KindValidator,
		Category:    CategoryCritical,
		Severity:    SeverityCritical,
		Name:        "SuiValidatorVotingPowerZero_{alias}",
		Expr:        `sui_validator_current_voting_power{validator="{authority}"} == 0`,
		For:         "10m",
		Summary:     "Validator {alias} reports zero voting power",
		Description: "Validator authority {authority} has held zero voting power for 10 minutes.",
		Dashboard:   "sui-validator-overview",
	},
	{
		Key:         "consensus_stall",
		Kind:        KindValidator,
		Category:    CategoryCritical,
		Severity:    SeverityCritical,
		Name:        "SuiValidatorConsensusStalled_{alias}",
		Expr:        `increase(sui_consensus_last_committed_leader_round{environment="{alias}"}[10m]) == 0`,
		For:         "10m",
		Summary:     "Validator {alias} consensus has stalled",
		Description: "Validator {alias} has committed no consensus leader round in 10 minutes.",
		Dashboard:   "sui-validator-consensus",
	},
	{
		Key:         "checkpoint_lag",
		Kind:        KindValidator,
		Category:    CategoryWarning,
		Severity:    SeverityWarning,
		Name:        "SuiValidatorCheckpointLag_{alias}",
		Expr:        `sui_highest_known_checkpoint{environment="{alias}"} - sui_highest_synced_checkpoint{environment="{alias}"} > 100`,
		For:         "10m",
		Summary:     "Validator {alias} is falling behind on checkpoints",
		Description: "Validator {alias} is more than 100 checkpoints behind the highest known checkpoint.",
		Dashboard:   "sui-validator-sync",
	},
	{
		Key:         "low_peers",
		Kind:        KindValidator,
		Category:    CategoryWarning,
		Severity:    SeverityWarning,
		Name:        "SuiValidatorLowPeers_{alias}",
		Expr:        `sui_network_peers{environment="{alias}"} < 5`,
		For:         "15m",
		Summary:     "Validator {alias} has few network peers",
		Description: "Validator {alias} has been connected to fewer than 5 peers for 15 minutes.",
		Dashboard:   "sui-validator-network",
	},
	{
		Key:         "consensus_latency",
		Kind:        KindValidator,
		Category:    CategoryWarning,
		Severity:    SeverityWarning,
		Name:        "SuiValidatorConsensusLatencyHigh_{alias}",
		Expr:        `histogram_quantile(0.95, rate(sui_consensus_commit_latency_seconds_bucket{environment="{alias}"}[5m])) > 5`,
		For:         "10m",
		Summary:     "Validator {alias} consensus commit latency is high",
		Description: "p95 consensus commit latency on validator {alias} has exceeded 5s for 10 minutes.",
		Dashboard:   "sui-validator-consensus",
	},
}

// TemplatesFor returns the ordered template sequence for kind. The returned
// slice is shared and must not be modified.
func TemplatesFor(kind Kind) []Template {
	if kind == KindValidator {
		return validatorTemplates
	}
	return bridgeTemplates
}

// Categories returns the fixed category order for kind.
func Categories(kind Kind) []Category {
	if kind == KindValidator {
		return validatorCategories
	}
	return bridgeCategories
}

// ValidKeys returns the set of alert keys defined for kind.
func ValidKeys(kind Kind) map[AlertKey]struct{} {
	tpls := TemplatesFor(kind)
	keys := make(map[AlertKey]struct{}, len(tpls))
	for _, t := range tpls {
		keys[t.Key] = struct{}{}
	}
	return keys
}

// DefaultAlertMap returns a fresh all-enabled alert map for kind, used when
// an entity declares no alerts of its own.
func DefaultAlertMap(kind Kind) map[AlertKey]bool {
	tpls := TemplatesFor(kind)
	m := make(map[AlertKey]bool, len(tpls))
	for _, t := range tpls {
		m[t.Key] = true
	}
	return m
}

// SanitizeAlias lowercases alias and replaces spaces and hyphens with
// underscores, producing a token safe for job names, group names, file
// names and alert names.
func SanitizeAlias(alias string) string {
	s := strings.ToLower(alias)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
