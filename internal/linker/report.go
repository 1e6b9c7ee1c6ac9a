package linker

import (
	"fmt"
	"strings"

	"github.com/agentlink/agentlink/internal/integrations"
)

// SkillAgent pairs a skill name with an agent.
type SkillAgent struct {
	Skill string             `json:"skill" yaml:"skill"`
	Agent integrations.Agent `json:"agent" yaml:"agent"`
}

// WarningKind discriminates the variants of Warning.
type WarningKind string

const (
	// WarnNameConflict: several agents hold a new real skill of the same name.
	WarnNameConflict WarningKind = "name_conflict"
	// WarnFileConflict: a real file or directory occupies a skill link path.
	WarnFileConflict WarningKind = "file_conflict"
	// WarnInstructionConflict: a real file occupies an instruction link path.
	WarnInstructionConflict WarningKind = "instruction_conflict"
	// WarnIOFailure: a filesystem operation failed.
	WarnIOFailure WarningKind = "io_failure"
)

// Warning is a non-fatal problem recorded during a sync run. Which fields
// are set depends on Kind.
type Warning struct {
	Kind      WarningKind          `json:"kind" yaml:"kind"`
	Skill     string               `json:"skill,omitempty" yaml:"skill,omitempty"`
	Agent     integrations.Agent   `json:"agent,omitempty" yaml:"agent,omitempty"`
	Agents    []integrations.Agent `json:"agents,omitempty" yaml:"agents,omitempty"`
	File      string               `json:"file,omitempty" yaml:"file,omitempty"`
	Operation string               `json:"operation,omitempty" yaml:"operation,omitempty"`
	Detail    string               `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// NameConflict reports a skill name found as a real directory in several agents.
func NameConflict(skill string, agents []integrations.Agent) Warning {
	return Warning{Kind: WarnNameConflict, Skill: skill, Agents: agents}
}

// FileConflict reports a real file or directory where a skill link belongs.
func FileConflict(skill string, agent integrations.Agent) Warning {
	return Warning{Kind: WarnFileConflict, Skill: skill, Agent: agent}
}

// InstructionConflict reports a real file where an instruction link belongs.
func InstructionConflict(file string, agent integrations.Agent) Warning {
	return Warning{Kind: WarnInstructionConflict, File: file, Agent: agent}
}

// IOFailure reports a failed filesystem operation.
func IOFailure(operation, detail string) Warning {
	return Warning{Kind: WarnIOFailure, Operation: operation, Detail: detail}
}

// String renders the warning for display.
func (w Warning) String() string {
	switch w.Kind {
	case WarnNameConflict:
		names := make([]string, len(w.Agents))
		for i, a := range w.Agents {
			names[i] = a.String()
		}
		return fmt.Sprintf("skill name conflict: %q found in %s; resolve manually", w.Skill, strings.Join(names, ", "))
	case WarnFileConflict:
		return fmt.Sprintf("conflict: %s (%s) is a real file or directory; use --force to overwrite", w.Skill, w.Agent)
	case WarnInstructionConflict:
		return fmt.Sprintf("%s already exists and is not a symlink; use --force to overwrite", w.File)
	case WarnIOFailure:
		return fmt.Sprintf("%s: %s", w.Operation, w.Detail)
	default:
		return string(w.Kind)
	}
}

// SyncReport is the outcome of a Sync run.
type SyncReport struct {
	SkillsLinked        []SkillAgent         `json:"skills_linked" yaml:"skills_linked"`
	SkillsCollected     []SkillAgent         `json:"skills_collected" yaml:"skills_collected"`
	InstructionsLinked  []integrations.Agent `json:"instructions_linked" yaml:"instructions_linked"`
	InstructionsSkipped []integrations.Agent `json:"instructions_skipped" yaml:"instructions_skipped"`
	Cleaned             []string             `json:"cleaned" yaml:"cleaned"`
	Warnings            []Warning            `json:"warnings" yaml:"warnings"`
}

func newSyncReport() *SyncReport {
	return &SyncReport{
		SkillsLinked:        []SkillAgent{},
		SkillsCollected:     []SkillAgent{},
		InstructionsLinked:  []integrations.Agent{},
		InstructionsSkipped: []integrations.Agent{},
		Cleaned:             []string{},
		Warnings:            []Warning{},
	}
}

// Changed reports whether the run created, moved or removed anything.
func (r *SyncReport) Changed() bool {
	return len(r.SkillsLinked) > 0 ||
		len(r.SkillsCollected) > 0 ||
		len(r.InstructionsLinked) > 0 ||
		len(r.Cleaned) > 0
}

// SkillState classifies one skill link location.
type SkillState string

const (
	SkillSynced        SkillState = "synced"
	SkillRealDir       SkillState = "real_dir"
	SkillBrokenSymlink SkillState = "broken_symlink"
	SkillMissing       SkillState = "missing"
	SkillWrongTarget   SkillState = "wrong_target"
	// SkillDisabled is only reported when StatusOptions.ShowDisabled is set.
	SkillDisabled SkillState = "disabled"
)

// InstructionState classifies one instruction link location.
type InstructionState string

const (
	InstructionSynced     InstructionState = "synced"
	InstructionDirectRead InstructionState = "direct_read"
	InstructionRealFile   InstructionState = "real_file"
	InstructionMissing    InstructionState = "missing"
	InstructionDisabled   InstructionState = "disabled"
)

// AgentSkillState is one cell of the skill status table.
type AgentSkillState struct {
	Agent integrations.Agent `json:"agent" yaml:"agent"`
	State SkillState         `json:"state" yaml:"state"`
}

// SkillStatus is one row of the skill status table.
type SkillStatus struct {
	Name   string            `json:"name" yaml:"name"`
	Agents []AgentSkillState `json:"agents" yaml:"agents"`
}

// AgentInstructionState is one row of the instruction status table.
type AgentInstructionState struct {
	Agent integrations.Agent `json:"agent" yaml:"agent"`
	State InstructionState   `json:"state" yaml:"state"`
}

// InstructionStatus describes the canonical instruction file and every agent's link.
type InstructionStatus struct {
	Source       string                  `json:"source" yaml:"source"`
	SourceExists bool                    `json:"source_exists" yaml:"source_exists"`
	Agents       []AgentInstructionState `json:"agents" yaml:"agents"`
}

// StatusReport is the outcome of a Status inspection.
type StatusReport struct {
	Skills       []SkillStatus     `json:"skills" yaml:"skills"`
	Instructions InstructionStatus `json:"instructions" yaml:"instructions"`
}

// SkillState returns the state of skill for agent and whether the pair was found.
func (r *StatusReport) SkillState(skill string, agent integrations.Agent) (SkillState, bool) {
	for _, s := range r.Skills {
		if s.Name != skill {
			continue
		}
		for _, a := range s.Agents {
			if a.Agent == agent {
				return a.State, true
			}
		}
	}
	return "", false
}

// InstructionState returns the instruction state for agent and whether it was found.
func (r *StatusReport) InstructionState(agent integrations.Agent) (InstructionState, bool) {
	for _, a := range r.Instructions.Agents {
		if a.Agent == agent {
			return a.State, true
		}
	}
	return "", false
}
