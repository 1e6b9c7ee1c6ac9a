package linker

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/agentlink/agentlink/internal/config"
	"github.com/agentlink/agentlink/internal/integrations"
	"github.com/agentlink/agentlink/internal/platform"
)

// StatusOptions controls a Status inspection.
type StatusOptions struct {
	Mode integrations.Mode
	// ShowDisabled reports agents with skills turned off as SkillDisabled
	// instead of SkillMissing.
	ShowDisabled bool
}

// Status classifies every canonical skill and the instruction file against
// each agent target. It never writes to the filesystem.
func Status(cfg *config.Config, baseDir string, opts StatusOptions) *StatusReport {
	report := &StatusReport{Skills: []SkillStatus{}}

	sourceDir := filepath.Join(baseDir, cfg.SkillsSource)
	names, _ := canonicalSkills(cfg, sourceDir)
	targets := skillTargets(cfg, baseDir, opts.Mode)

	for _, name := range names {
		row := SkillStatus{Name: name, Agents: make([]AgentSkillState, 0, len(targets))}
		expected := filepath.Join(sourceDir, name)
		for _, t := range targets {
			state := SkillMissing
			switch {
			case !cfg.SkillsEnabled(t.Agent):
				if opts.ShowDisabled {
					state = SkillDisabled
				}
			default:
				state = classifySkill(platform.Probe(filepath.Join(baseDir, t.Dir, name)), expected)
			}
			row.Agents = append(row.Agents, AgentSkillState{Agent: t.Agent, State: state})
		}
		report.Skills = append(report.Skills, row)
	}

	source := filepath.Join(baseDir, cfg.InstructionsSource)
	report.Instructions = InstructionStatus{
		Source:       cfg.InstructionsSource,
		SourceExists: platform.Exists(source),
		Agents:       []AgentInstructionState{},
	}
	for _, t := range integrations.InstructionTargets(opts.Mode) {
		report.Instructions.Agents = append(report.Instructions.Agents, AgentInstructionState{
			Agent: t.Agent,
			State: classifyInstruction(cfg, baseDir, source, t),
		})
	}

	return report
}

// canonicalSkills lists the skill directories under sourceDir, minus ignored
// names, sorted. An absent source yields no names and no error.
func canonicalSkills(cfg *config.Config, sourceDir string) ([]string, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if cfg.Ignored(name) {
			continue
		}
		if !platform.IsDir(filepath.Join(sourceDir, name)) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// linkCorrect is the engine's no-op test. For canonical names it agrees with
// classifySkill returning SkillSynced.
func linkCorrect(entry platform.Entry, target string) bool {
	return entry.IsLink() && entry.Target == target
}

func classifySkill(entry platform.Entry, expected string) SkillState {
	switch {
	case entry.IsLink() && entry.Dangling:
		return SkillBrokenSymlink
	case linkCorrect(entry, expected):
		return SkillSynced
	case entry.IsLink():
		return SkillWrongTarget
	case entry.IsReal():
		return SkillRealDir
	default:
		return SkillMissing
	}
}

func classifyInstruction(cfg *config.Config, baseDir, source string, t integrations.InstructionTarget) InstructionState {
	if !cfg.InstructionsEnabled(t.Agent) {
		return InstructionDisabled
	}
	if t.DirectRead() {
		return InstructionDirectRead
	}

	link := filepath.Join(baseDir, t.File)
	if resolveParent(link) == resolvePath(source) {
		return InstructionDirectRead
	}

	entry := platform.Probe(link)
	switch {
	case linkCorrect(entry, source):
		return InstructionSynced
	case entry.IsReal():
		return InstructionRealFile
	default:
		return InstructionMissing
	}
}
