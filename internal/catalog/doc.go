// Package catalog holds the fixed registry of alert templates for each
// monitored entity kind (bridge, validator).
//
// The catalog is defined once at package level and never mutated. Template
// order is part of the contract: every consumer that walks the catalog must
// preserve it, because it determines the order of generated alerting rules.
// Adding an alert type is a data addition to one of the template tables,
// never new control flow.
package catalog
