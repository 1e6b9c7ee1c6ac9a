package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentlink/agentlink/internal/branding"
	"github.com/agentlink/agentlink/internal/integrations"
)

// Root returns the absolute base directory for the given mode.
//
// Project mode uses the current working directory. Global mode checks the
// AGENTLINK_HOME environment variable first, then falls back to the user's
// home directory.
func Root(mode integrations.Mode) (string, error) {
	switch mode {
	case integrations.ModeProject:
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return filepath.Abs(cwd)
	case integrations.ModeGlobal:
		if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
			return filepath.Abs(v)
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return home, nil
	default:
		return "", fmt.Errorf("unknown mode %s", mode)
	}
}

// ConfigPath returns the path to the configuration file under root.
func ConfigPath(root string) string {
	return filepath.Join(root, branding.ConfigDir(), branding.ConfigFile())
}

// DisplayConfigPath returns the configuration path as shown to the operator,
// e.g. "~/.agents/agentlink.toml" in global mode.
func DisplayConfigPath(mode integrations.Mode) string {
	rel := filepath.Join(branding.ConfigDir(), branding.ConfigFile())
	if mode == integrations.ModeGlobal {
		return filepath.Join("~", rel)
	}
	return rel
}
