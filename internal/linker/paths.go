package linker

import (
	"path/filepath"
	"strings"

	"github.com/agentlink/agentlink/internal/config"
	"github.com/agentlink/agentlink/internal/integrations"
)

// resolvePath follows symlinks in the longest existing prefix of path and
// appends the remaining components unchanged.
func resolvePath(path string) string {
	path = filepath.Clean(path)
	var rest []string
	for {
		if real, err := filepath.EvalSymlinks(path); err == nil {
			return filepath.Join(append([]string{real}, rest...)...)
		}
		parent := filepath.Dir(path)
		if parent == path {
			return filepath.Join(append([]string{path}, rest...)...)
		}
		rest = append([]string{filepath.Base(path)}, rest...)
		path = parent
	}
}

// resolveParent resolves the directory holding path but not path itself, so
// a link keeps its own name.
func resolveParent(path string) string {
	return filepath.Join(resolvePath(filepath.Dir(path)), filepath.Base(path))
}

// withinDir reports whether path is dir or lies beneath it.
func withinDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// skillTargets returns the registry skill targets for mode, minus agents
// whose skill directory resolves to the canonical root or beneath it. Linking
// or adopting there would rewrite the canonical store itself.
func skillTargets(cfg *config.Config, baseDir string, mode integrations.Mode) []integrations.SkillTarget {
	root := resolvePath(filepath.Join(baseDir, cfg.SkillsSource))

	var targets []integrations.SkillTarget
	for _, t := range integrations.SkillTargets(mode, cfg.SkillsSource) {
		if withinDir(resolvePath(filepath.Join(baseDir, t.Dir)), root) {
			continue
		}
		targets = append(targets, t)
	}
	return targets
}
