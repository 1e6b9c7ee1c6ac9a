// Package watch re-runs reconciliation when the canonical store, the
// instruction file or an agent's skill directory changes. Bursts of events
// are debounced into a single run and runs never overlap.
package watch
