package integrations

import (
	"fmt"
	"path/filepath"
)

// Agent identifies a supported AI coding agent.
type Agent string

const (
	Claude   Agent = "claude"
	Codex    Agent = "codex"
	Pi       Agent = "pi"
	OpenCode Agent = "opencode"
)

// Mode selects between project-local and home-directory target layouts.
type Mode int

const (
	// ModeProject resolves targets relative to the current project.
	ModeProject Mode = iota
	// ModeGlobal resolves targets relative to the user's home directory.
	ModeGlobal
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeProject:
		return "project"
	case ModeGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// SkillTarget is an agent's skill directory, relative to the base directory.
type SkillTarget struct {
	Agent Agent
	Dir   string
}

// InstructionTarget is an agent's instruction file, relative to the base
// directory. An empty File means the agent reads the canonical file directly.
type InstructionTarget struct {
	Agent Agent
	File  string
}

// DirectRead reports whether the agent reads the canonical instructions itself.
func (t InstructionTarget) DirectRead() bool {
	return t.File == ""
}

// AllAgents returns every supported agent in registry order.
func AllAgents() []Agent {
	return []Agent{Claude, Codex, Pi, OpenCode}
}

// ParseAgent converts a string to an Agent, returning false if invalid.
func ParseAgent(s string) (Agent, bool) {
	switch s {
	case "claude":
		return Claude, true
	case "codex":
		return Codex, true
	case "pi":
		return Pi, true
	case "opencode":
		return OpenCode, true
	default:
		return "", false
	}
}

// String implements fmt.Stringer.
func (a Agent) String() string {
	return string(a)
}

// SkillDir returns the agent's skill directory for the given mode.
func (a Agent) SkillDir(mode Mode) string {
	global := mode == ModeGlobal
	switch a {
	case Claude:
		return ".claude/skills"
	case Codex:
		return ".agents/skills"
	case Pi:
		if global {
			return ".pi/agent/skills"
		}
		return ".pi/skills"
	case OpenCode:
		if global {
			return ".config/opencode/skills"
		}
		return ".opencode/skills"
	default:
		panic(fmt.Sprintf("integrations: unknown agent %q", string(a)))
	}
}

// InstructionFile returns the agent's instruction file for the given mode,
// or "" when the agent reads the canonical file directly.
func (a Agent) InstructionFile(mode Mode) string {
	global := mode == ModeGlobal
	switch a {
	case Claude:
		if global {
			return ".claude/CLAUDE.md"
		}
		return "CLAUDE.md"
	case Codex:
		if global {
			return ".codex/AGENTS.md"
		}
		return ""
	case Pi:
		if global {
			return ".pi/agent/AGENTS.md"
		}
		return ""
	case OpenCode:
		if global {
			return ".config/opencode/AGENTS.md"
		}
		return ""
	default:
		panic(fmt.Sprintf("integrations: unknown agent %q", string(a)))
	}
}

// SkillTargets returns the skill directory of every agent in registry order,
// excluding the agent whose directory is the canonical skill source itself.
func SkillTargets(mode Mode, skillsSource string) []SkillTarget {
	source := filepath.Clean(skillsSource)
	targets := make([]SkillTarget, 0, len(AllAgents()))
	for _, agent := range AllAgents() {
		dir := agent.SkillDir(mode)
		if filepath.Clean(dir) == source {
			continue
		}
		targets = append(targets, SkillTarget{Agent: agent, Dir: dir})
	}
	return targets
}

// InstructionTargets returns the instruction file of every agent in registry order.
func InstructionTargets(mode Mode) []InstructionTarget {
	targets := make([]InstructionTarget, 0, len(AllAgents()))
	for _, agent := range AllAgents() {
		targets = append(targets, InstructionTarget{Agent: agent, File: agent.InstructionFile(mode)})
	}
	return targets
}
