// Package rules instantiates the alert catalog into concrete Prometheus
// rule groups, one rule file per monitored entity.
//
// Generation always walks the catalog in its fixed order and probes the
// entity's alert map by key. The alert map is never ranged over, so
// identical input yields byte-identical rule order regardless of map
// iteration order.
package rules
