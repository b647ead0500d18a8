package commands

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the Gemini API key and model",
	Long: `Validate the configured API key and send a one-word probe to the model.
Exit 0 when the model is ready, exit 1 otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return newApp(cmd).Check(cmd.Context(), options())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
