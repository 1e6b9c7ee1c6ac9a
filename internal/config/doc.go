// Package config loads the synchronization settings stored at
// .agents/agentlink.toml (project) or ~/.agents/agentlink.toml (global).
// Files are decoded with viper, checked against an embedded JSON schema and
// an optional semver "requires" constraint, and resolved with defaults:
// agents missing from the targets table have skills and instructions enabled.
package config
