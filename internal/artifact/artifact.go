package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/suiwatch/suiwatch/internal/amcfg"
	"github.com/suiwatch/suiwatch/internal/config"
	"github.com/suiwatch/suiwatch/internal/export"
	"github.com/suiwatch/suiwatch/internal/promcfg"
	"github.com/suiwatch/suiwatch/internal/rules"
)

// File names within the output directory.
const (
	PrometheusFile   = "prometheus.yml"
	AlertmanagerFile = "alertmanager.yml"
	SidecarFile      = "entities.json"
	RulesDir         = "rules"
)

// Options controls artifact generation.
type Options struct {
	// OutputDir is where Write places the artifact set. It is also baked
	// into the export stream as the sidecar location.
	OutputDir string

	// Prom carries the deployment addresses for the scrape configuration.
	Prom promcfg.Options
}

// RuleFile is one generated rule file.
type RuleFile struct {
	Name string
	Doc  rules.Document
}

// Set is the in-memory artifact set for one run.
type Set struct {
	Prometheus   *promcfg.Config
	RuleFiles    []RuleFile
	Alertmanager *amcfg.Config
	Sidecar      []byte

	// Export is the shell-assignable variable stream, printed to stdout
	// by the CLI.
	Export string
}

// Build derives the full artifact set from a validated configuration.
func Build(cfg *config.Config, opts Options) (*Set, error) {
	gen := rules.Generator{Authority: cfg.Authority}

	var files []RuleFile
	for i, e := range cfg.Bridges {
		groups := gen.Generate(e, i)
		if len(groups) == 0 {
			continue
		}
		files = append(files, RuleFile{
			Name: rules.FileName(e, i),
			Doc:  rules.Document{Groups: groups},
		})
	}
	for i, e := range cfg.Validators {
		groups := gen.Generate(e, i)
		if len(groups) == 0 {
			continue
		}
		files = append(files, RuleFile{
			Name: rules.FileName(e, i),
			Doc:  rules.Document{Groups: groups},
		})
	}

	sidecar, err := export.Sidecar(cfg)
	if err != nil {
		return nil, err
	}

	return &Set{
		Prometheus:   promcfg.NewBuilder(opts.Prom).Build(cfg.Bridges, cfg.Validators),
		RuleFiles:    files,
		Alertmanager: amcfg.Build(cfg.Channels),
		Sidecar:      sidecar,
		Export:       export.Render(cfg, filepath.Join(opts.OutputDir, SidecarFile)),
	}, nil
}

// Write serializes the set under dir. Rule files are written first so the
// scrape configuration never references a rule glob that has no files yet.
func (s *Set) Write(dir string) error {
	rulesDir := filepath.Join(dir, RulesDir)
	if err := os.MkdirAll(rulesDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", rulesDir, err)
	}

	for _, rf := range s.RuleFiles {
		if err := writeYAML(filepath.Join(rulesDir, rf.Name), rf.Doc); err != nil {
			return err
		}
	}
	if err := writeYAML(filepath.Join(dir, PrometheusFile), s.Prometheus); err != nil {
		return err
	}
	if err := writeYAML(filepath.Join(dir, AlertmanagerFile), s.Alertmanager); err != nil {
		return err
	}

	sidecarPath := filepath.Join(dir, SidecarFile)
	if err := os.WriteFile(sidecarPath, s.Sidecar, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", sidecarPath, err)
	}
	return nil
}

func writeYAML(path string, doc any) error {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
