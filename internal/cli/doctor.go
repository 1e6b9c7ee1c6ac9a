package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/agentlink/agentlink/internal/linker"
	"github.com/agentlink/agentlink/internal/platform"
	"github.com/agentlink/agentlink/internal/workspace"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var errDoctorFailed = errors.New("one or more checks failed")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment and link health",
	Long: `Run diagnostic checks: symlink support, configuration, version requirement,
canonical sources and the state of every agent link.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := &doctor{out: cmd.OutOrStdout()}
		d.run()
		if d.failed {
			return errDoctorFailed
		}
		return nil
	},
}

type doctor struct {
	out    io.Writer
	failed bool
}

func (d *doctor) ok(format string, args ...any) {
	fmt.Fprintf(d.out, "[%s] %s\n", color.GreenString("OK"), fmt.Sprintf(format, args...))
}

func (d *doctor) warn(format string, args ...any) {
	fmt.Fprintf(d.out, "[%s] %s\n", color.YellowString("WARN"), fmt.Sprintf(format, args...))
}

func (d *doctor) fail(format string, args ...any) {
	d.failed = true
	fmt.Fprintf(d.out, "[%s] %s\n", color.RedString("FAIL"), fmt.Sprintf(format, args...))
}

func (d *doctor) run() {
	if platform.IsSymlinkSupported() {
		d.ok("symbolic links supported")
	} else {
		d.fail("symbolic links not supported: %v", errNoSymlinks)
	}

	cfg, root, err := loadWorkspace()
	if err != nil {
		d.fail("%v", err)
		return
	}
	d.ok("configuration %s", workspace.DisplayConfigPath(currentMode()))

	if platform.IsDir(filepath.Join(root, cfg.SkillsSource)) {
		d.ok("skill source %s", cfg.SkillsSource)
	} else {
		d.warn("skill source %s does not exist; skills are not synced", cfg.SkillsSource)
	}
	if platform.Exists(filepath.Join(root, cfg.InstructionsSource)) {
		d.ok("instruction source %s", cfg.InstructionsSource)
	} else {
		d.warn("instruction source %s does not exist; instructions are not synced", cfg.InstructionsSource)
	}

	status := linker.Status(cfg, root, linker.StatusOptions{Mode: currentMode(), ShowDisabled: true})
	counts := make(map[linker.SkillState]int)
	for _, s := range status.Skills {
		for _, a := range s.Agents {
			counts[a.State]++
		}
	}
	if n := counts[linker.SkillBrokenSymlink] + counts[linker.SkillWrongTarget] + counts[linker.SkillMissing]; n > 0 {
		d.warn("%d skill link(s) missing or stale; run '%s sync%s'", n, rootCmd.Name(), globalSuffix())
	}
	if n := counts[linker.SkillRealDir]; n > 0 {
		d.warn("%d skill link path(s) hold real files; see '%s status'", n, rootCmd.Name())
	}
	for _, a := range status.Instructions.Agents {
		if a.State == linker.InstructionRealFile {
			d.warn("%s instruction file is a real file, not a link", a.Agent)
		}
	}
	if counts[linker.SkillSynced] > 0 {
		d.ok("%d skill link(s) in sync", counts[linker.SkillSynced])
	}
}
