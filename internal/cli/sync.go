package cli

import (
	"errors"

	"github.com/agentlink/agentlink/internal/linker"
	"github.com/agentlink/agentlink/internal/logging"
	"github.com/agentlink/agentlink/internal/platform"
	"github.com/agentlink/agentlink/internal/report"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	syncForce  bool
	syncDryRun bool
	syncOutput string
)

func init() {
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "Replace real files and directories that occupy link paths")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Report what would change without touching the filesystem")
	syncCmd.Flags().StringVarP(&syncOutput, "output", "o", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(syncCmd)
}

var errNoSymlinks = errors.New("this system does not allow creating symbolic links (on Windows enable Developer Mode or run as administrator)")

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Link skills and instructions into every agent",
	Long: `Collect agent-local skills into the canonical skill directory, link every
canonical skill into each enabled agent, remove broken links and link the
instruction file where an agent expects its own copy.

Problems with individual items are reported as warnings; they never change
the exit status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(syncOutput)
		if err != nil {
			return err
		}
		cfg, root, err := loadWorkspace()
		if err != nil {
			return err
		}
		if !syncDryRun && !platform.IsSymlinkSupported() {
			return errNoSymlinks
		}

		log := logging.Logger
		r := linker.Sync(cfg, root, linker.SyncOptions{
			Mode:   currentMode(),
			Force:  syncForce,
			DryRun: syncDryRun,
			Logger: &log,
		})

		return report.New(cmd.OutOrStdout(), format, color.NoColor).Sync(r, syncDryRun)
	},
}
