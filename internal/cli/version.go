package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/agentlink/agentlink/internal/branding"
	"github.com/agentlink/agentlink/internal/platform"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build info as JSON")
	versionCmd.MarkFlagsMutuallyExclusive("short", "json")
	rootCmd.AddCommand(versionCmd)
}

// buildInfo describes the running binary and whether it can link on this host.
type buildInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
	Symlinks bool   `json:"symlinks"`
}

func currentBuildInfo() buildInfo {
	return buildInfo{
		Version:  buildVersion,
		Commit:   buildCommit,
		Date:     buildDate,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Symlinks: platform.IsSymlinkSupported(),
	}
}

func (b buildInfo) writeText(w io.Writer) {
	support := "supported"
	if !b.Symlinks {
		support = "unavailable"
	}
	fmt.Fprintf(w, "%s %s\n", branding.CLIName(), b.Version)
	fmt.Fprintf(w, "  commit:   %s\n", b.Commit)
	fmt.Fprintf(w, "  built:    %s\n", b.Date)
	fmt.Fprintf(w, "  go:       %s (%s)\n", b.Go, b.Platform)
	fmt.Fprintf(w, "  symlinks: %s\n", support)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		info := currentBuildInfo()

		switch {
		case versionShort:
			fmt.Fprintln(out, info.Version)
		case versionJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(info); err != nil {
				return fmt.Errorf("encoding build info: %w", err)
			}
		default:
			info.writeText(out)
		}
		return nil
	},
}
