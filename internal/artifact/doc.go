// Package artifact composes the full artifact set for one run — scrape
// configuration, per-entity rule files, Alertmanager routing document and
// the flat export — and writes it to an output directory.
//
// Build is pure: it performs no I/O and identical input yields an identical
// Set. Write serializes the set; any write failure aborts the run with the
// failing path. Writes are not staged, so a failure can leave a partial
// artifact set behind — callers wanting atomicity should write to a staging
// directory and rename on success.
package artifact
