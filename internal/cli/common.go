package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/agentlink/agentlink/internal/branding"
	"github.com/agentlink/agentlink/internal/config"
	"github.com/agentlink/agentlink/internal/integrations"
	"github.com/agentlink/agentlink/internal/workspace"
	"github.com/spf13/afero"
)

// appFs is the filesystem used for config and template I/O.
var appFs = afero.NewOsFs()

func currentMode() integrations.Mode {
	if flagGlobal {
		return integrations.ModeGlobal
	}
	return integrations.ModeProject
}

// initHint is the command an operator should run to create a missing config.
func initHint() string {
	if flagGlobal {
		return branding.CLIName() + " init --global"
	}
	return branding.CLIName() + " init"
}

// loadWorkspace resolves the base directory for the current mode and loads
// its configuration, including the version requirement check.
func loadWorkspace() (*config.Config, string, error) {
	mode := currentMode()
	root, err := workspace.Root(mode)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(appFs, workspace.ConfigPath(root))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%s not found; run '%s' to create one: %w",
				workspace.DisplayConfigPath(mode), initHint(), err)
		}
		return nil, "", err
	}

	if err := cfg.CheckRequires(buildVersion); err != nil {
		return nil, "", err
	}
	return cfg, root, nil
}
