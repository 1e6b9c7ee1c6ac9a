package cli

import (
	"fmt"
	"os"

	"github.com/agentlink/agentlink/internal/branding"
	"github.com/agentlink/agentlink/internal/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagGlobal  bool
	flagVerbose bool
	flagNoColor bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagGlobal, "global", false, "Operate on the home directory (~/"+branding.ConfigDir()+") instead of the current project")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every decision at debug level")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps one canonical set of skills and one instruction file
mirrored, through symbolic links, into the directories each AI coding agent reads
(Claude Code, Codex, Pi, OpenCode).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			color.NoColor = true
		}

		cfg := logging.DefaultConfig()
		cfg.Output = cmd.ErrOrStderr()
		cfg.NoColor = color.NoColor
		if flagVerbose {
			cfg.Level = logging.DebugLevel
		} else if v := os.Getenv(branding.EnvVar("LOG_LEVEL")); v != "" {
			cfg.Level = logging.ParseLevel(v)
		}
		logging.Init(cfg)
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}
