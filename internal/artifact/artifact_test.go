package artifact

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/suiwatch/suiwatch/internal/catalog"
	"github.com/suiwatch/suiwatch/internal/config"
	"github.com/suiwatch/suiwatch/internal/promcfg"
	"github.com/suiwatch/suiwatch/internal/rules"
)

// scenarioConfig is the end-to-end input: one bridge with a partial alerts
// map enabling uptime and disabling voting_power.
func scenarioConfig() *config.Config {
	return &config.Config{
		Authority: "ed25519:abc",
		Bridges: []config.Entity{{
			Kind:          catalog.KindBridge,
			Alias:         "Alpha",
			Target:        "http://10.0.0.1:9100",
			PublicAddress: "https://alpha.example.com",
			Alerts: map[catalog.AlertKey]bool{
				"uptime":       true,
				"voting_power": false,
			},
		}},
	}
}

func TestBuild_Scenario(t *testing.T) {
	set, err := Build(scenarioConfig(), Options{OutputDir: "out"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Metrics job scrapes the stripped target over http.
	var metrics *promcfg.ScrapeConfig
	for i := range set.Prometheus.ScrapeConfigs {
		if set.Prometheus.ScrapeConfigs[i].JobName == "sui_bridge_alpha" {
			metrics = &set.Prometheus.ScrapeConfigs[i]
		}
	}
	if metrics == nil {
		t.Fatal("bridge metrics job not found")
	}
	if got := metrics.StaticConfigs[0].Targets[0]; got != "10.0.0.1:9100" {
		t.Errorf("target: got %q", got)
	}
	if metrics.Scheme != "http" {
		t.Errorf("scheme: got %q", metrics.Scheme)
	}

	// Exactly one rule file with exactly the common group and one rule.
	if len(set.RuleFiles) != 1 {
		t.Fatalf("rule files: got %d", len(set.RuleFiles))
	}
	rf := set.RuleFiles[0]
	if rf.Name != "sui_bridge_0_alpha.yml" {
		t.Errorf("file name: got %q", rf.Name)
	}
	if len(rf.Doc.Groups) != 1 || rf.Doc.Groups[0].Name != "sui_bridge_alpha_common" {
		t.Fatalf("groups: got %+v", rf.Doc.Groups)
	}
	rs := rf.Doc.Groups[0].Rules
	if len(rs) != 1 || rs[0].Alert != "SuiBridgeDown_alpha" {
		t.Errorf("rules: got %+v", rs)
	}

	// Export references the sidecar under the output directory.
	wantRef := "export SUI_ENTITIES_CONFIG_FILE='" + filepath.Join("out", SidecarFile) + "'"
	if !bytes.Contains([]byte(set.Export), []byte(wantRef)) {
		t.Errorf("export missing sidecar reference %q:\n%s", wantRef, set.Export)
	}
}

func TestBuild_EntityWithNoRulesGetsNoFile(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Bridges[0].Alerts = map[catalog.AlertKey]bool{"uptime": false}
	set, err := Build(cfg, Options{OutputDir: "out"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(set.RuleFiles) != 0 {
		t.Errorf("rule files: got %d, want 0", len(set.RuleFiles))
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	set, err := Build(scenarioConfig(), Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := set.Write(dir); err != nil {
		t.Fatalf("Write: %v", err)
	}

	promOut, err := os.ReadFile(filepath.Join(dir, PrometheusFile))
	if err != nil {
		t.Fatalf("read prometheus.yml: %v", err)
	}
	var prom promcfg.Config
	if err := yaml.Unmarshal(promOut, &prom); err != nil {
		t.Fatalf("prometheus.yml does not parse: %v", err)
	}
	// self + bridge metrics + health probe + ingress probe
	if len(prom.ScrapeConfigs) != 4 {
		t.Errorf("scrape configs: got %d, want 4", len(prom.ScrapeConfigs))
	}

	ruleOut, err := os.ReadFile(filepath.Join(dir, RulesDir, "sui_bridge_0_alpha.yml"))
	if err != nil {
		t.Fatalf("read rule file: %v", err)
	}
	var doc rules.Document
	if err := yaml.Unmarshal(ruleOut, &doc); err != nil {
		t.Fatalf("rule file does not parse: %v", err)
	}
	if len(doc.Groups) != 1 || len(doc.Groups[0].Rules) != 1 {
		t.Errorf("rule file content: %+v", doc)
	}

	if _, err := os.Stat(filepath.Join(dir, AlertmanagerFile)); err != nil {
		t.Errorf("alertmanager.yml: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, SidecarFile)); err != nil {
		t.Errorf("entities.json: %v", err)
	}
}

func TestWrite_ByteIdentical(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	for _, dir := range []string{dirA, dirB} {
		set, err := Build(scenarioConfig(), Options{OutputDir: "out"})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if err := set.Write(dir); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	for _, name := range []string{
		PrometheusFile,
		AlertmanagerFile,
		SidecarFile,
		filepath.Join(RulesDir, "sui_bridge_0_alpha.yml"),
	} {
		a, err := os.ReadFile(filepath.Join(dirA, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		b, err := os.ReadFile(filepath.Join(dirB, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between runs", name)
		}
	}
}
