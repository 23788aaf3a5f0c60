package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/suiwatch/suiwatch/internal/catalog"
	"github.com/suiwatch/suiwatch/internal/config"
)

// Render returns the flat export stream for cfg. sidecarPath is the
// location of the JSON entity sidecar referenced on the final line.
func Render(cfg *config.Config, sidecarPath string) string {
	var b strings.Builder

	b.WriteString("# Sui monitoring configuration variables\n")
	fmt.Fprintf(&b, "export SUI_BRIDGES_COUNT=%d\n", len(cfg.Bridges))
	fmt.Fprintf(&b, "export SUI_VALIDATOR=%s\n", shellQuote(cfg.Authority))

	for i, e := range cfg.Bridges {
		writeEntity(&b, "SUI_BRIDGE", i, e)
	}

	fmt.Fprintf(&b, "export SUI_VALIDATORS_COUNT=%d\n", len(cfg.Validators))
	for i, e := range cfg.Validators {
		writeEntity(&b, "SUI_VALIDATOR", i, e)
	}

	fmt.Fprintf(&b, "export SUI_ENTITIES_CONFIG_FILE=%s\n", shellQuote(sidecarPath))
	return b.String()
}

func writeEntity(b *strings.Builder, prefix string, index int, e config.Entity) {
	fmt.Fprintf(b, "export %s_%d_ALIAS=%s\n", prefix, index, shellQuote(e.Alias))
	fmt.Fprintf(b, "export %s_%d_TARGET=%s\n", prefix, index, shellQuote(e.Target))
	if e.PublicAddress != "" {
		fmt.Fprintf(b, "export %s_%d_PUBLIC_ADDRESS=%s\n", prefix, index, shellQuote(e.PublicAddress))
	}
	// Alert flags walk the catalog, not the map, for stable order.
	for _, tpl := range catalog.TemplatesFor(e.Kind) {
		v, ok := e.Alerts[tpl.Key]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "export %s_%d_ALERT_%s=%s\n",
			prefix, index, strings.ToUpper(string(tpl.Key)), strconv.FormatBool(v))
	}
}

// shellQuote single-quotes v for POSIX shells, escaping embedded quotes.
func shellQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

// sidecar is the JSON document written next to the generated artifacts.
type sidecar struct {
	Bridges    []config.Entity `json:"bridges"`
	Validators []config.Entity `json:"validators"`
}

// Sidecar marshals the full validated entity list.
func Sidecar(cfg *config.Config) ([]byte, error) {
	doc := sidecar{Bridges: cfg.Bridges, Validators: cfg.Validators}
	if doc.Bridges == nil {
		doc.Bridges = []config.Entity{}
	}
	if doc.Validators == nil {
		doc.Validators = []config.Entity{}
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal entity sidecar: %w", err)
	}
	return append(out, '\n'), nil
}
