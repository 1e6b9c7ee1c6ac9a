// Package workspace resolves the base directory that every configured path is
// relative to: the current directory in project mode, the home directory (or
// AGENTLINK_HOME) in global mode. Returned roots are absolute so the symlinks
// created beneath them are absolute too.
package workspace
