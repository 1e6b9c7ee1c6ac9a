package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/agentlink/agentlink/internal/integrations"
	"github.com/agentlink/agentlink/internal/linker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func sampleSync() *linker.SyncReport {
	return &linker.SyncReport{
		SkillsLinked:        []linker.SkillAgent{{Skill: "alpha", Agent: integrations.Claude}},
		SkillsCollected:     []linker.SkillAgent{{Skill: "gamma", Agent: integrations.Pi}},
		InstructionsLinked:  []integrations.Agent{integrations.Claude},
		InstructionsSkipped: []integrations.Agent{integrations.Codex},
		Cleaned:             []string{"/p/.claude/skills/old"},
		Warnings:            []linker.Warning{linker.FileConflict("beta", integrations.OpenCode)},
	}
}

func sampleStatus() *linker.StatusReport {
	return &linker.StatusReport{
		Skills: []linker.SkillStatus{{
			Name: "alpha",
			Agents: []linker.AgentSkillState{
				{Agent: integrations.Claude, State: linker.SkillSynced},
				{Agent: integrations.Pi, State: linker.SkillBrokenSymlink},
			},
		}},
		Instructions: linker.InstructionStatus{
			Source: "AGENTS.md",
			Agents: []linker.AgentInstructionState{
				{Agent: integrations.Claude, State: linker.InstructionRealFile},
				{Agent: integrations.Codex, State: linker.InstructionDirectRead},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSyncText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText, true).Sync(sampleSync(), true))

	out := buf.String()
	assert.Contains(t, out, "Dry run: nothing was written.")
	assert.Contains(t, out, "[<-] gamma (from pi)")
	assert.Contains(t, out, "[OK] alpha")
	assert.Contains(t, out, "-> claude")
	assert.Contains(t, out, "[--] /p/.claude/skills/old")
	assert.Contains(t, out, "[!!] conflict: beta (opencode) is a real file or directory; use --force to overwrite")
	assert.NotContains(t, out, "\x1b[", "no-color output contains escape codes")
}

func TestSyncTextNothingToDo(t *testing.T) {
	var buf bytes.Buffer
	empty := &linker.SyncReport{InstructionsSkipped: []integrations.Agent{integrations.Codex}}
	require.NoError(t, New(&buf, FormatText, true).Sync(empty, false))

	assert.Equal(t, "Everything is in sync.\n", buf.String())
}

func TestSyncJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatJSON, false).Sync(sampleSync(), true))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, true, got["dry_run"])
	assert.Len(t, got["skills_linked"], 1)
	warnings := got["warnings"].([]any)
	assert.Equal(t, "file_conflict", warnings[0].(map[string]any)["kind"])
}

func TestStatusYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatYAML, false).Status(sampleStatus()))

	var got linker.StatusReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleStatus(), got)
}

func TestSyncYAMLInlinesReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatYAML, false).Sync(sampleSync(), false))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, false, got["dry_run"])
	assert.Contains(t, got, "skills_collected")
}

func TestStatusText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText, true).Status(sampleStatus()))

	out := buf.String()
	assert.Contains(t, out, "alpha  [OK] claude  [xx] pi (broken)")
	assert.Contains(t, out, "[xx] source missing")
	assert.Contains(t, out, "[!!] real file (conflict)")
	assert.Contains(t, out, "[OK] reads source directly")
}

func TestStatusTextNoSkills(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText, true).Status(&linker.StatusReport{}))

	assert.Contains(t, buf.String(), "(none)")
}
