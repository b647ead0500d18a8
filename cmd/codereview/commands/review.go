package commands

import (
	"github.com/spf13/cobra"
)

var flagStaged bool

var reviewCmd = &cobra.Command{
	Use:   "review [file|-]",
	Short: "Review a file, stdin or the staged git diff",
	Long: `Review one snippet and print the report. The snippet is read from the named
file, from stdin when no file or "-" is given, or from the staged git diff
with --staged. Exit 0 on success, exit 1 if the review could not be produced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := Source{Staged: flagStaged}
		if len(args) == 1 {
			src.Path = args[0]
		}
		return newApp(cmd).Review(cmd.Context(), options(), src)
	},
}

func init() {
	reviewCmd.Flags().BoolVar(&flagStaged, "staged", false, "Review the staged git diff")
	rootCmd.AddCommand(reviewCmd)
}
