package config

import (
	"sort"

	"github.com/suiwatch/suiwatch/internal/catalog"
)

// Validate checks raw entity records against the required-field and
// alert-flag rules for kind and returns the normalized entities.
//
// Required fields are alias and target, plus public_address for bridges.
// An alerts map may only use keys the catalog defines for kind, and every
// value must be a boolean. An absent or empty alerts map is replaced with
// the catalog default (every alert enabled); a non-empty map is taken as
// exhaustive, so keys it omits stay disabled.
func Validate(raw []RawEntity, kind catalog.Kind) ([]Entity, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	valid := catalog.ValidKeys(kind)
	entities := make([]Entity, 0, len(raw))

	for i, r := range raw {
		if r.Alias == "" {
			return nil, &ValidationError{Kind: string(kind), Index: i, Field: "alias", Reason: "missing or empty"}
		}
		if r.Target == "" {
			return nil, &ValidationError{Kind: string(kind), Index: i, Field: "target", Reason: "missing or empty"}
		}
		if kind == catalog.KindBridge && r.PublicAddress == "" {
			return nil, &ValidationError{Kind: string(kind), Index: i, Field: "public_address", Reason: "missing or empty"}
		}

		alerts, err := normalizeAlerts(r.Alerts, kind, valid, i)
		if err != nil {
			return nil, err
		}

		e := Entity{
			Kind:   kind,
			Alias:  r.Alias,
			Target: r.Target,
			Alerts: alerts,
		}
		if kind == catalog.KindBridge {
			e.PublicAddress = r.PublicAddress
		}
		entities = append(entities, e)
	}

	return entities, nil
}

// normalizeAlerts validates one raw alerts map. Keys are checked in sorted
// order so that the reported error is stable across runs.
func normalizeAlerts(raw map[string]any, kind catalog.Kind, valid map[catalog.AlertKey]struct{}, index int) (map[catalog.AlertKey]bool, error) {
	if len(raw) == 0 {
		return catalog.DefaultAlertMap(kind), nil
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	alerts := make(map[catalog.AlertKey]bool, len(raw))
	for _, k := range keys {
		if _, ok := valid[catalog.AlertKey(k)]; !ok {
			return nil, &ValidationError{
				Kind:   string(kind),
				Index:  index,
				Field:  "alerts." + k,
				Reason: "unknown alert key",
			}
		}
		v, ok := raw[k].(bool)
		if !ok {
			return nil, &ValidationError{
				Kind:   string(kind),
				Index:  index,
				Field:  "alerts." + k,
				Reason: "value must be a boolean",
			}
		}
		alerts[catalog.AlertKey(k)] = v
	}

	return alerts, nil
}
