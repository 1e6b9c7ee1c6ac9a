package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultTemplate is the configuration written by "init".
const DefaultTemplate = `# agentlink - mirror skills and instructions across AI coding agents

# requires = ">= 0.1.0"

[skills]
source = ".agents/skills"
# Skill names matching these patterns are never adopted or linked.
ignore = []

[instructions]
source = "AGENTS.md"

[targets.claude]
skills = true
instructions = true

[targets.codex]
skills = true
instructions = true

[targets.pi]
skills = true
instructions = true

[targets.opencode]
skills = true
instructions = true
`

// ErrExists is returned by WriteTemplate when the file exists and force is false.
var ErrExists = errors.New("config file already exists")

// WriteTemplate writes DefaultTemplate to path, creating parent directories.
func WriteTemplate(fsys afero.Fs, path string, force bool) error {
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if exists && !force {
		return fmt.Errorf("%s: %w", path, ErrExists)
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := afero.WriteFile(fsys, path, []byte(DefaultTemplate), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
