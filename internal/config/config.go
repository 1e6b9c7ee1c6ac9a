package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/agentlink/agentlink/internal/branding"
	"github.com/agentlink/agentlink/internal/integrations"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	fileType = "toml"

	DefaultSkillsSource       = ".agents/skills"
	DefaultInstructionsSource = "AGENTS.md"
)

// Target holds the per-agent enable flags.
type Target struct {
	Skills       bool
	Instructions bool
}

// Config is the resolved synchronization configuration.
type Config struct {
	// SkillsSource is the canonical skill root, relative to the base directory.
	SkillsSource string
	// SkillsIgnore lists doublestar patterns for skill names that are never
	// adopted or linked.
	SkillsIgnore []string
	// InstructionsSource is the canonical instruction file, relative to the
	// base directory.
	InstructionsSource string
	// Requires is an optional semver constraint on the running version.
	Requires string
	Targets  map[integrations.Agent]Target
}

// Default returns the configuration used when no keys are set: default
// sources and every agent fully enabled.
func Default() *Config {
	cfg := &Config{
		SkillsSource:       DefaultSkillsSource,
		InstructionsSource: DefaultInstructionsSource,
		Targets:            make(map[integrations.Agent]Target, len(integrations.AllAgents())),
	}
	for _, agent := range integrations.AllAgents() {
		cfg.Targets[agent] = Target{Skills: true, Instructions: true}
	}
	return cfg
}

// Target returns the flags for agent. Agents absent from the table are fully enabled.
func (c *Config) Target(agent integrations.Agent) Target {
	if t, ok := c.Targets[agent]; ok {
		return t
	}
	return Target{Skills: true, Instructions: true}
}

// SkillsEnabled reports whether skills are mirrored for agent.
func (c *Config) SkillsEnabled(agent integrations.Agent) bool {
	return c.Target(agent).Skills
}

// InstructionsEnabled reports whether instructions are mirrored for agent.
func (c *Config) InstructionsEnabled(agent integrations.Agent) bool {
	return c.Target(agent).Instructions
}

// Ignored reports whether a skill name matches one of the ignore patterns.
func (c *Config) Ignored(name string) bool {
	for _, pattern := range c.SkillsIgnore {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Load reads and parses the configuration file at path from fsys.
// A missing file yields an error wrapping fs.ErrNotExist.
func Load(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML configuration data, validates it against the embedded
// schema and applies defaults and AGENTLINK_* environment overrides.
func Parse(data []byte) (*Config, error) {
	// Validate the file content alone; env overrides arrive as strings and
	// would trip the schema's type checks.
	raw := viper.New()
	raw.SetConfigType(fileType)
	if err := raw.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	if err := validate(raw.AllSettings()); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("skills.source", DefaultSkillsSource)
	v.SetDefault("skills.ignore", []string{})
	v.SetDefault("instructions.source", DefaultInstructionsSource)
	v.SetDefault("requires", "")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	cfg := &Config{
		SkillsSource:       v.GetString("skills.source"),
		SkillsIgnore:       v.GetStringSlice("skills.ignore"),
		InstructionsSource: v.GetString("instructions.source"),
		Requires:           v.GetString("requires"),
		Targets:            make(map[integrations.Agent]Target, len(integrations.AllAgents())),
	}

	for _, agent := range integrations.AllAgents() {
		t := Target{Skills: true, Instructions: true}
		prefix := "targets." + agent.String() + "."
		if v.IsSet(prefix + "skills") {
			t.Skills = v.GetBool(prefix + "skills")
		}
		if v.IsSet(prefix + "instructions") {
			t.Instructions = v.GetBool(prefix + "instructions")
		}
		cfg.Targets[agent] = t
	}

	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// check validates values that the schema cannot express.
func (c *Config) check() error {
	var issues []ValidationIssue
	if strings.TrimSpace(c.SkillsSource) == "" {
		issues = append(issues, ValidationIssue{Path: "/skills/source", Message: "must not be empty", Keyword: "minLength"})
	}
	if strings.TrimSpace(c.InstructionsSource) == "" {
		issues = append(issues, ValidationIssue{Path: "/instructions/source", Message: "must not be empty", Keyword: "minLength"})
	}
	for i, pattern := range c.SkillsIgnore {
		if !doublestar.ValidatePattern(pattern) {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("/skills/ignore/%d", i),
				Message: fmt.Sprintf("invalid glob pattern %q", pattern),
				Keyword: "pattern",
			})
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
