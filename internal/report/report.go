package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/agentlink/agentlink/internal/linker"
	"github.com/fatih/color"
	"go.yaml.in/yaml/v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted values of --output.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat converts a --output value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want one of %s)", s, strings.Join(Formats(), ", "))
	}
}

// Printer writes reports in one format.
type Printer struct {
	w      io.Writer
	format Format

	ok   *color.Color
	warn *color.Color
	bad  *color.Color
	dim  *color.Color
	head *color.Color
}

// New returns a Printer writing to w. noColor strips ANSI codes from text
// output; it has no effect on JSON and YAML.
func New(w io.Writer, format Format, noColor bool) *Printer {
	p := &Printer{
		w:      w,
		format: format,
		ok:     color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
		bad:    color.New(color.FgRed),
		dim:    color.New(color.FgHiBlack),
		head:   color.New(color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{p.ok, p.warn, p.bad, p.dim, p.head} {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) encode(v any) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", p.format)
	}
}

// syncEnvelope adds the dry-run flag to machine-readable sync output.
type syncEnvelope struct {
	DryRun            bool `json:"dry_run" yaml:"dry_run"`
	linker.SyncReport `yaml:",inline"`
}

// Sync renders the outcome of a sync run.
func (p *Printer) Sync(r *linker.SyncReport, dryRun bool) error {
	if p.format != FormatText {
		return p.encode(syncEnvelope{DryRun: dryRun, SyncReport: *r})
	}

	var b strings.Builder
	if dryRun {
		fmt.Fprintln(&b, p.dim.Sprint("Dry run: nothing was written."))
	}

	if len(r.SkillsCollected) > 0 {
		fmt.Fprintln(&b, p.head.Sprint("Skills collected:"))
		for _, c := range r.SkillsCollected {
			fmt.Fprintf(&b, "  [%s] %s (from %s)\n", p.ok.Sprint("<-"), c.Skill, c.Agent)
		}
	}
	if len(r.SkillsLinked) > 0 {
		fmt.Fprintln(&b, p.head.Sprint("Skills linked:"))
		for _, l := range r.SkillsLinked {
			fmt.Fprintf(&b, "  [%s] %-24s -> %s\n", p.ok.Sprint("OK"), l.Skill, l.Agent)
		}
	}
	if len(r.InstructionsLinked) > 0 {
		fmt.Fprintln(&b, p.head.Sprint("Instructions linked:"))
		for _, a := range r.InstructionsLinked {
			fmt.Fprintf(&b, "  [%s] %s\n", p.ok.Sprint("OK"), a)
		}
	}
	if len(r.Cleaned) > 0 {
		fmt.Fprintln(&b, p.head.Sprint("Broken links removed:"))
		for _, path := range r.Cleaned {
			fmt.Fprintf(&b, "  [%s] %s\n", p.dim.Sprint("--"), path)
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintln(&b, p.head.Sprint("Warnings:"))
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  [%s] %s\n", p.warn.Sprint("!!"), w)
		}
	}

	if !r.Changed() && len(r.Warnings) == 0 {
		fmt.Fprintln(&b, p.ok.Sprint("Everything is in sync."))
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

// Status renders a status report.
func (p *Printer) Status(r *linker.StatusReport) error {
	if p.format != FormatText {
		return p.encode(r)
	}

	var b strings.Builder

	fmt.Fprintln(&b, p.head.Sprint("Skills:"))
	if len(r.Skills) == 0 {
		fmt.Fprintln(&b, p.dim.Sprint("  (none)"))
	}
	width := 0
	for _, s := range r.Skills {
		width = max(width, len(s.Name))
	}
	for _, s := range r.Skills {
		cells := make([]string, len(s.Agents))
		for i, a := range s.Agents {
			cells[i] = p.skillCell(a)
		}
		fmt.Fprintf(&b, "  %-*s  %s\n", width, s.Name, strings.Join(cells, "  "))
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, p.head.Sprint("Instructions:"))
	if r.Instructions.SourceExists {
		fmt.Fprintf(&b, "  %-12s [%s] source\n", r.Instructions.Source, p.ok.Sprint("OK"))
	} else {
		fmt.Fprintf(&b, "  %-12s [%s] source missing\n", r.Instructions.Source, p.bad.Sprint("xx"))
	}
	for _, a := range r.Instructions.Agents {
		fmt.Fprintf(&b, "  %-12s %s\n", a.Agent, p.instructionCell(a.State))
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Printer) skillCell(a linker.AgentSkillState) string {
	switch a.State {
	case linker.SkillSynced:
		return fmt.Sprintf("[%s] %s", p.ok.Sprint("OK"), a.Agent)
	case linker.SkillRealDir:
		return fmt.Sprintf("[%s] %s (real)", p.warn.Sprint("!!"), a.Agent)
	case linker.SkillBrokenSymlink:
		return fmt.Sprintf("[%s] %s (broken)", p.bad.Sprint("xx"), a.Agent)
	case linker.SkillWrongTarget:
		return fmt.Sprintf("[%s] %s (other target)", p.warn.Sprint("!!"), a.Agent)
	case linker.SkillDisabled:
		return fmt.Sprintf("[%s] %s (disabled)", p.dim.Sprint(".."), a.Agent)
	default:
		return fmt.Sprintf("[%s] %s", p.dim.Sprint("--"), a.Agent)
	}
}

func (p *Printer) instructionCell(s linker.InstructionState) string {
	switch s {
	case linker.InstructionSynced:
		return fmt.Sprintf("[%s] linked", p.ok.Sprint("OK"))
	case linker.InstructionDirectRead:
		return fmt.Sprintf("[%s] reads source directly", p.ok.Sprint("OK"))
	case linker.InstructionRealFile:
		return fmt.Sprintf("[%s] real file (conflict)", p.warn.Sprint("!!"))
	case linker.InstructionDisabled:
		return fmt.Sprintf("[%s] disabled", p.dim.Sprint(".."))
	default:
		return fmt.Sprintf("[%s] missing", p.dim.Sprint("--"))
	}
}
