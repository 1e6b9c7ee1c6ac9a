package cli

import (
	"github.com/agentlink/agentlink/internal/linker"
	"github.com/agentlink/agentlink/internal/report"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	statusShowDisabled bool
	statusOutput       string
)

func init() {
	statusCmd.Flags().BoolVar(&statusShowDisabled, "show-disabled", false, "Mark agents with skills turned off as disabled instead of missing")
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how each agent sees the canonical skills and instructions",
	Long:  `Classify every canonical skill and the instruction file for each agent without changing anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(statusOutput)
		if err != nil {
			return err
		}
		cfg, root, err := loadWorkspace()
		if err != nil {
			return err
		}

		r := linker.Status(cfg, root, linker.StatusOptions{
			Mode:         currentMode(),
			ShowDisabled: statusShowDisabled,
		})
		return report.New(cmd.OutOrStdout(), format, color.NoColor).Status(r)
	},
}
