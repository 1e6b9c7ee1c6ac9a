package watch

import (
	"path/filepath"

	"github.com/agentlink/agentlink/internal/config"
	"github.com/agentlink/agentlink/internal/integrations"
)

// Targets returns the watch configuration for a base directory: the
// canonical skill root and each skills-enabled agent directory as Dirs, the
// instruction source and the config file as Files.
func Targets(cfg *config.Config, baseDir string, mode integrations.Mode, configPath string) Config {
	wc := Config{
		Dirs: []string{filepath.Join(baseDir, cfg.SkillsSource)},
		Files: []string{
			filepath.Join(baseDir, cfg.InstructionsSource),
			configPath,
		},
	}
	for _, t := range integrations.SkillTargets(mode, cfg.SkillsSource) {
		if cfg.SkillsEnabled(t.Agent) {
			wc.Dirs = append(wc.Dirs, filepath.Join(baseDir, t.Dir))
		}
	}
	return wc
}
