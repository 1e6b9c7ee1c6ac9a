// Package linker reconciles agent skill directories and instruction files
// with the canonical store, and inspects that relationship read-only.
//
// Sync runs two skill passes. The first adopts real skill directories found
// in an agent's directory into the canonical store and links them back. The
// second links every canonical skill into every enabled agent and removes
// dangling links. Instructions are mirrored afterwards. Problems are
// collected as warnings on the SyncReport; a run never aborts part way.
//
// Status applies the same classification rules without writing anything:
// a skill that Status reports as synced is one Sync leaves untouched.
//
// The engine is single-threaded and takes no locks. It assumes it is the only
// process changing the trees it touches; two concurrent runs against the same
// base directory can race on adoption and cleanup.
package linker
