package commands

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/irahardianto/codereview/internal/engine/llm"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Long:  "Print the codereview version, default model, Go version, and build information.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "codereview %s\n", version)
		fmt.Fprintf(out, "  model:  %s (default)\n", llm.DefaultModel)
		fmt.Fprintf(out, "  go:     %s\n", runtime.Version())
		fmt.Fprintf(out, "  os:     %s/%s\n", runtime.GOOS, runtime.GOARCH)

		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					fmt.Fprintf(out, "  commit: %s\n", setting.Value)
				case "vcs.time":
					fmt.Fprintf(out, "  built:  %s\n", setting.Value)
				}
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
