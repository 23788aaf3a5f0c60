package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/suiwatch/suiwatch/internal/catalog"
	"github.com/suiwatch/suiwatch/internal/config"
)

func testConfig() *config.Config {
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
		Validators: []config.Entity{{
			Kind:   catalog.KindValidator,
			Alias:  "Node One",
			Target: "10.0.0.2:9184",
			Alerts: map[catalog.AlertKey]bool{"uptime": true},
		}},
	}
}

func TestRender(t *testing.T) {
	out := Render(testConfig(), "generated_configs/entities.json")

	want := []string{
		"export SUI_BRIDGES_COUNT=1",
		"export SUI_VALIDATOR='ed25519:abc'",
		"export SUI_BRIDGE_0_ALIAS='Alpha'",
		"export SUI_BRIDGE_0_TARGET='http://10.0.0.1:9100'",
		"export SUI_BRIDGE_0_PUBLIC_ADDRESS='https://alpha.example.com'",
		"export SUI_BRIDGE_0_ALERT_UPTIME=true",
		"export SUI_BRIDGE_0_ALERT_VOTING_POWER=false",
		"export SUI_VALIDATORS_COUNT=1",
		"export SUI_VALIDATOR_0_ALIAS='Node One'",
		"export SUI_VALIDATOR_0_TARGET='10.0.0.2:9184'",
		"export SUI_VALIDATOR_0_ALERT_UPTIME=true",
		"export SUI_ENTITIES_CONFIG_FILE='generated_configs/entities.json'",
	}
	for _, line := range want {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("missing line %q in output:\n%s", line, out)
		}
	}

	// Flags for keys the entity never listed must not appear.
	if strings.Contains(out, "SUI_BRIDGE_0_ALERT_GAS_BALANCE") {
		t.Error("unlisted alert key exported")
	}
}

func TestRender_FlagOrderFollowsCatalog(t *testing.T) {
	out := Render(testConfig(), "x.json")
	up := strings.Index(out, "SUI_BRIDGE_0_ALERT_UPTIME")
	vp := strings.Index(out, "SUI_BRIDGE_0_ALERT_VOTING_POWER")
	if up < 0 || vp < 0 || up > vp {
		t.Errorf("flag order wrong: uptime at %d, voting_power at %d", up, vp)
	}
}

func TestRender_Deterministic(t *testing.T) {
	cfg := testConfig()
	if Render(cfg, "x.json") != Render(cfg, "x.json") {
		t.Error("repeated renders differ")
	}
}

func TestShellQuote(t *testing.T) {
	if got := shellQuote("it's"); got != `'it'\''s'` {
		t.Errorf("shellQuote: got %s", got)
	}
}

func TestSidecar(t *testing.T) {
	out, err := Sidecar(testConfig())
	if err != nil {
		t.Fatalf("Sidecar: %v", err)
	}

	var doc struct {
		Bridges    []config.Entity `json:"bridges"`
		Validators []config.Entity `json:"validators"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("unmarshal sidecar: %v", err)
	}
	if len(doc.Bridges) != 1 || doc.Bridges[0].Alias != "Alpha" {
		t.Errorf("bridges: got %+v", doc.Bridges)
	}
	if len(doc.Validators) != 1 || doc.Validators[0].Alias != "Node One" {
		t.Errorf("validators: got %+v", doc.Validators)
	}
	if !doc.Bridges[0].Alerts["uptime"] {
		t.Error("bridge alerts not carried into sidecar")
	}
}

func TestSidecar_EmptySlicesNotNull(t *testing.T) {
	out, err := Sidecar(&config.Config{})
	if err != nil {
		t.Fatalf("Sidecar: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "null") {
		t.Errorf("sidecar contains null: %s", s)
	}
}
