// Package amcfg builds the Alertmanager routing document: a severity-split
// route tree, receivers whose channels depend purely on which credentials
// are present, and an inhibition rule that silences a warning while a
// matching critical alert fires.
//
// Policy: only critical alerts page a human. The paging-service channel is
// never attached to the warning receiver, regardless of credentials.
package amcfg
