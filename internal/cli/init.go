package cli

import (
	"errors"
	"fmt"

	"github.com/agentlink/agentlink/internal/config"
	"github.com/agentlink/agentlink/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	initForce  bool
	initDryRun bool
)

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	initCmd.Flags().BoolVar(&initDryRun, "dry-run", false, "Print the template without writing it")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file",
	Long: `Write a commented configuration template to .agents/agentlink.toml in the
current project, or to ~/.agents/agentlink.toml with --global.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := currentMode()
		root, err := workspace.Root(mode)
		if err != nil {
			return err
		}
		path := workspace.ConfigPath(root)
		out := cmd.OutOrStdout()

		if initDryRun {
			fmt.Fprintf(out, "Would write %s:\n\n%s", workspace.DisplayConfigPath(mode), config.DefaultTemplate)
			return nil
		}

		if err := config.WriteTemplate(appFs, path, initForce); err != nil {
			if errors.Is(err, config.ErrExists) {
				return fmt.Errorf("%s already exists; use --force to overwrite", workspace.DisplayConfigPath(mode))
			}
			return err
		}

		fmt.Fprintf(out, "Created %s\n", workspace.DisplayConfigPath(mode))
		fmt.Fprintf(out, "Run '%s sync%s' to link skills and instructions.\n", rootCmd.Name(), globalSuffix())
		return nil
	},
}

func globalSuffix() string {
	if flagGlobal {
		return " --global"
	}
	return ""
}
