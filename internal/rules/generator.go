package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suiwatch/suiwatch/internal/catalog"
	"github.com/suiwatch/suiwatch/internal/config"
)

// Generator instantiates catalog templates for monitored entities.
type Generator struct {
	// Authority is the global validator identity substituted into
	// templates that reference {authority}.
	Authority string
}

// Generate builds the rule groups for one entity. Index is the entity's
// position within its kind's input sequence; it is carried onto every rule
// as a traceability label. Categories with no enabled alerts produce no
// group.
func (g Generator) Generate(e config.Entity, index int) []Group {
	var groups []Group
	for _, cat := range catalog.Categories(e.Kind) {
		var rs []Rule
		for _, tpl := range catalog.TemplatesFor(e.Kind) {
			if tpl.Category != cat || !e.Alerts[tpl.Key] {
				continue
			}
			rs = append(rs, g.instantiate(tpl, e, index))
		}
		if len(rs) == 0 {
			continue
		}
		groups = append(groups, Group{Name: groupName(e, cat), Rules: rs})
	}
	return groups
}

func (g Generator) instantiate(tpl catalog.Template, e config.Entity, index int) Rule {
	// Expressions and annotations get the alias verbatim; the alert name
	// gets the sanitized alias so it stays a valid metric name.
	expand := strings.NewReplacer("{alias}", e.Alias, "{authority}", g.Authority)
	expandName := strings.NewReplacer("{alias}", catalog.SanitizeAlias(e.Alias), "{authority}", g.Authority)

	labels := map[string]string{
		"severity":    string(tpl.Severity),
		"environment": e.Alias,
	}
	if e.Kind == catalog.KindValidator {
		labels["validator_index"] = strconv.Itoa(index)
		labels["validator_alias"] = e.Alias
	} else {
		labels["bridge_index"] = strconv.Itoa(index)
		labels["bridge_alias"] = e.Alias
	}

	annotations := map[string]string{
		"summary":     expand.Replace(tpl.Summary),
		"description": expand.Replace(tpl.Description),
	}
	if tpl.Dashboard != "" {
		annotations["dashboard"] = tpl.Dashboard
	}

	return Rule{
		Alert:       expandName.Replace(tpl.Name),
		Expr:        expand.Replace(tpl.Expr),
		For:         tpl.For,
		Labels:      labels,
		Annotations: annotations,
	}
}

// groupName is "<kind prefix>_<sanitized alias>_<category>", with the
// category's hyphens normalized to underscores.
func groupName(e config.Entity, cat catalog.Category) string {
	c := strings.ReplaceAll(string(cat), "-", "_")
	return fmt.Sprintf("%s_%s_%s", e.Kind.Prefix(), catalog.SanitizeAlias(e.Alias), c)
}

// FileName is the deterministic rule file name for an entity:
// "<kind prefix>_<index>_<sanitized alias>.yml".
func FileName(e config.Entity, index int) string {
	return fmt.Sprintf("%s_%d_%s.yml", e.Kind.Prefix(), index, catalog.SanitizeAlias(e.Alias))
}
