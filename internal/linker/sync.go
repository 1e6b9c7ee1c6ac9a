package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/agentlink/agentlink/internal/config"
	"github.com/agentlink/agentlink/internal/integrations"
	"github.com/agentlink/agentlink/internal/logging"
	"github.com/agentlink/agentlink/internal/platform"
	"github.com/rs/zerolog"
)

// SyncOptions controls a Sync run.
type SyncOptions struct {
	Mode integrations.Mode
	// Force replaces real files and directories that occupy link paths.
	Force bool
	// DryRun computes the full report without writing to the filesystem.
	DryRun bool
	// Logger receives debug-level decision logs. Defaults to logging.Logger.
	Logger *zerolog.Logger
}

// adoptCandidate is a real skill directory found in an agent's skill directory.
type adoptCandidate struct {
	agent integrations.Agent
	path  string
}

type engine struct {
	cfg    *config.Config
	base   string
	opts   SyncOptions
	fs     mutator
	log    zerolog.Logger
	report *SyncReport

	// adopted maps each skill collected in this run to its originating agent.
	adopted map[string]integrations.Agent
	// planned holds canonical paths created by adoption; in a dry run they
	// do not exist on disk but must be treated as if they did.
	planned map[string]bool

	// root and source are the canonical skill root and instruction file with
	// symlinks resolved. Nothing at or beneath them is ever replaced.
	root   string
	source string
}

func newEngine(cfg *config.Config, baseDir string, opts SyncOptions) *engine {
	log := logging.Logger
	if opts.Logger != nil {
		log = *opts.Logger
	}
	log = log.With().Str("mode", opts.Mode.String()).Bool("dry_run", opts.DryRun).Logger()

	var fs mutator = osMutator{}
	if opts.DryRun {
		fs = dryRunMutator{log: log}
	}

	return &engine{
		cfg:     cfg,
		base:    baseDir,
		opts:    opts,
		fs:      fs,
		log:     log,
		report:  newSyncReport(),
		adopted: make(map[string]integrations.Agent),
		planned: make(map[string]bool),
		root:    resolvePath(filepath.Join(baseDir, cfg.SkillsSource)),
		source:  resolvePath(filepath.Join(baseDir, cfg.InstructionsSource)),
	}
}

// Sync reconciles every enabled agent target with the canonical skills and
// instructions under baseDir. baseDir should be absolute: link targets are
// built from it and compared as text.
//
// Sync never fails as a whole. Per-item problems are collected as warnings
// and the run continues.
func Sync(cfg *config.Config, baseDir string, opts SyncOptions) *SyncReport {
	e := newEngine(cfg, baseDir, opts)
	e.run()
	return e.report
}

func (e *engine) run() {
	e.syncSkills()
	e.syncInstructions()
}

func (e *engine) warn(w Warning) {
	e.log.Debug().Str("kind", string(w.Kind)).Msg(w.String())
	e.report.Warnings = append(e.report.Warnings, w)
}

// enabledSkillTargets returns the skill targets whose agent has skills enabled.
func (e *engine) enabledSkillTargets() []integrations.SkillTarget {
	var targets []integrations.SkillTarget
	for _, t := range skillTargets(e.cfg, e.base, e.opts.Mode) {
		if e.cfg.SkillsEnabled(t.Agent) {
			targets = append(targets, t)
		}
	}
	return targets
}

func (e *engine) syncSkills() {
	sourceDir := filepath.Join(e.base, e.cfg.SkillsSource)
	if !platform.IsDir(sourceDir) {
		e.log.Debug().Str("path", sourceDir).Msg("skill source missing, skipping skills")
		return
	}

	targets := e.enabledSkillTargets()

	// Pass 1: adopt agent-local skills that have no canonical counterpart.
	e.adopt(sourceDir, targets)

	// Pass 2: link every canonical skill into every enabled agent.
	names, err := canonicalSkills(e.cfg, sourceDir)
	if err != nil {
		e.warn(IOFailure("read skill source", err.Error()))
		return
	}
	if e.opts.DryRun {
		names = mergeNames(names, e.adopted)
	}

	for _, t := range targets {
		agentDir := filepath.Join(e.base, t.Dir)
		relinked := make(map[string]bool)

		for _, name := range names {
			if e.opts.DryRun && e.adopted[name] == t.Agent {
				// Adoption leaves a correct link here in a real run.
				continue
			}
			canonical := filepath.Join(sourceDir, name)
			link := filepath.Join(agentDir, name)
			if e.ensureLink(canonical, link, t.Agent, FileConflict(name, t.Agent)) {
				e.report.SkillsLinked = append(e.report.SkillsLinked, SkillAgent{Skill: name, Agent: t.Agent})
				relinked[link] = true
			}
		}

		e.cleanup(agentDir, relinked)
	}
}

// adopt moves agent-local real skill directories into the canonical store.
// A name found in more than one agent is a conflict and nothing moves.
func (e *engine) adopt(sourceDir string, targets []integrations.SkillTarget) {
	candidates := make(map[string][]adoptCandidate)

	for _, t := range targets {
		agentDir := filepath.Join(e.base, t.Dir)
		entries, err := os.ReadDir(agentDir)
		if err != nil {
			if !os.IsNotExist(err) {
				e.warn(IOFailure("read skills of "+t.Agent.String(), err.Error()))
			}
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if e.cfg.Ignored(name) {
				continue
			}
			// DirEntry types come from Lstat, so links are never directories here.
			if !entry.IsDir() {
				continue
			}
			if platform.Exists(filepath.Join(sourceDir, name)) {
				continue
			}
			candidates[name] = append(candidates[name], adoptCandidate{
				agent: t.Agent,
				path:  filepath.Join(agentDir, name),
			})
		}
	}

	names := make([]string, 0, len(candidates))
	for name := range candidates {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		found := candidates[name]
		if len(found) > 1 {
			agents := make([]integrations.Agent, len(found))
			for i, c := range found {
				agents[i] = c.agent
			}
			e.warn(NameConflict(name, agents))
			continue
		}
		e.adoptOne(sourceDir, name, found[0])
	}
}

// adoptOne moves one skill into the canonical store and links it back.
// If the link cannot be created the move is undone, so the skill is never
// left relocated without a link behind it unless the undo also fails.
func (e *engine) adoptOne(sourceDir, name string, c adoptCandidate) {
	dest := filepath.Join(sourceDir, name)
	log := e.log.With().Str("skill", name).Str("agent", c.agent.String()).Logger()

	if err := e.fs.Rename(c.path, dest); err != nil {
		e.warn(IOFailure("collect skill", fmt.Sprintf("%s (%s): %v", name, c.agent, err)))
		return
	}
	if err := e.fs.Symlink(dest, c.path); err != nil {
		e.warn(IOFailure("link collected skill", fmt.Sprintf("%s (%s): %v", name, c.agent, err)))
		if rerr := e.fs.Rename(dest, c.path); rerr != nil {
			e.warn(IOFailure("restore collected skill", fmt.Sprintf("%s (%s): %v", name, c.agent, rerr)))
		}
		return
	}

	log.Debug().Str("path", dest).Msg("collected skill")
	e.adopted[name] = c.agent
	e.planned[dest] = true
	e.report.SkillsCollected = append(e.report.SkillsCollected, SkillAgent{Skill: name, Agent: c.agent})
}

// ensureLink makes link a symlink to target. It returns true when a link was
// (or in a dry run would be) created, false for a no-op or a recorded warning.
func (e *engine) ensureLink(target, link string, agent integrations.Agent, conflict Warning) bool {
	entry := platform.Probe(link)
	log := e.log.With().Str("agent", agent.String()).Str("path", link).Logger()

	if linkCorrect(entry, target) {
		return false
	}
	if e.protected(link) {
		e.warn(IOFailure("link "+link, "path resolves into the canonical store"))
		return false
	}

	switch {
	case entry.IsReal():
		if !e.opts.Force {
			e.warn(conflict)
			return false
		}
		log.Debug().Msg("removing real entry (force)")
		if err := e.fs.RemoveAll(link); err != nil {
			e.warn(IOFailure("remove "+link, err.Error()))
			return false
		}
	case entry.IsLink():
		log.Debug().Str("old_target", entry.Target).Msg("replacing stale link")
		if err := e.fs.Remove(link); err != nil {
			e.warn(IOFailure("remove link "+link, err.Error()))
			return false
		}
	}

	if err := e.fs.MkdirAll(filepath.Dir(link)); err != nil {
		e.warn(IOFailure("create directory "+filepath.Dir(link), err.Error()))
		return false
	}
	if err := e.fs.Symlink(target, link); err != nil {
		e.warn(IOFailure("create link "+link, err.Error()))
		return false
	}

	log.Debug().Str("target", target).Msg("linked")
	return true
}

// cleanup removes links in agentDir whose target no longer exists.
func (e *engine) cleanup(agentDir string, relinked map[string]bool) {
	entries, err := os.ReadDir(agentDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		path := filepath.Join(agentDir, entry.Name())
		if relinked[path] || e.cfg.Ignored(entry.Name()) {
			continue
		}
		if entry.Type()&os.ModeSymlink == 0 {
			continue
		}

		probe := platform.Probe(path)
		if !probe.Dangling || e.isPlanned(agentDir, probe.Target) {
			continue
		}

		if err := e.fs.Remove(path); err != nil {
			e.warn(IOFailure("remove broken link "+path, err.Error()))
			continue
		}
		e.log.Debug().Str("path", path).Str("target", probe.Target).Msg("removed broken link")
		e.report.Cleaned = append(e.report.Cleaned, path)
	}
}

// protected reports whether writing at link would touch the canonical skill
// root or the instruction source through a symlinked parent directory.
func (e *engine) protected(link string) bool {
	path := resolveParent(link)
	return withinDir(path, e.root) || path == e.source
}

// isPlanned reports whether a link target read from a link in dir points at
// or into a skill adopted during this run.
func (e *engine) isPlanned(dir, target string) bool {
	if len(e.planned) == 0 {
		return false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	target = filepath.Clean(target)
	for p := range e.planned {
		if withinDir(target, p) {
			return true
		}
	}
	return false
}

func (e *engine) syncInstructions() {
	source := filepath.Join(e.base, e.cfg.InstructionsSource)
	if !platform.Exists(source) {
		e.log.Debug().Str("path", source).Msg("instruction source missing, skipping instructions")
		return
	}

	for _, t := range integrations.InstructionTargets(e.opts.Mode) {
		if !e.cfg.InstructionsEnabled(t.Agent) {
			continue
		}
		if t.DirectRead() {
			e.report.InstructionsSkipped = append(e.report.InstructionsSkipped, t.Agent)
			continue
		}

		link := filepath.Join(e.base, t.File)
		if resolveParent(link) == e.source {
			e.report.InstructionsSkipped = append(e.report.InstructionsSkipped, t.Agent)
			continue
		}

		if e.ensureLink(source, link, t.Agent, InstructionConflict(t.File, t.Agent)) {
			e.report.InstructionsLinked = append(e.report.InstructionsLinked, t.Agent)
		}
	}
}

// mergeNames adds adopted names to the sorted canonical list.
func mergeNames(names []string, adopted map[string]integrations.Agent) []string {
	if len(adopted) == 0 {
		return names
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for n := range adopted {
		if !seen[n] {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
