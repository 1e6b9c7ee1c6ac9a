package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agentlink/agentlink/internal/linker"
	"github.com/agentlink/agentlink/internal/logging"
	"github.com/agentlink/agentlink/internal/platform"
	"github.com/agentlink/agentlink/internal/report"
	"github.com/agentlink/agentlink/internal/watch"
	"github.com/agentlink/agentlink/internal/workspace"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	watchForce    bool
	watchDebounce time.Duration
)

func init() {
	watchCmd.Flags().BoolVar(&watchForce, "force", false, "Replace real files and directories that occupy link paths")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period after the last change before syncing")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync on every change to skills, instructions or config",
	Long: `Run a sync, then keep watching the canonical skill directory, each enabled
agent's skill directory, the instruction file and the config file. Every burst
of changes triggers one more sync. Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, root, err := loadWorkspace()
		if err != nil {
			return err
		}
		if !platform.IsSymlinkSupported() {
			return errNoSymlinks
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		mode := currentMode()
		out := cmd.OutOrStdout()
		printer := report.New(out, report.FormatText, color.NoColor)

		runOnce := func(_ context.Context, runID string) error {
			// Pick up config edits between runs.
			current, _, err := loadWorkspace()
			if err != nil {
				return err
			}
			log := logging.Logger.With().Str("run_id", runID).Logger()
			r := linker.Sync(current, root, linker.SyncOptions{Mode: mode, Force: watchForce, Logger: &log})
			if !r.Changed() && len(r.Warnings) == 0 {
				return nil
			}
			return printer.Sync(r, false)
		}

		if err := runOnce(ctx, watch.NewRunID()); err != nil {
			return err
		}

		wcfg := watch.Targets(cfg, root, mode, workspace.ConfigPath(root))
		wcfg.Debounce = watchDebounce
		w, err := watch.New(wcfg, runOnce)
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}

		fmt.Fprintln(out, "Watching for changes (Ctrl+C to stop)...")
		return w.Run(ctx)
	},
}
