// Package export renders the validated configuration as a line-oriented
// stream of shell-assignable `export KEY='value'` lines, plus a JSON
// sidecar holding the full validated entity list for consumers that need
// structured access.
//
// Per-alert flags are emitted in catalog order so repeated runs produce
// identical output.
package export
