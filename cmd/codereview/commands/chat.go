package commands

import (
	"github.com/spf13/cobra"
)

// newApp builds the App for a command; a variable for testability.
var newApp = func(cmd *cobra.Command) *App {
	return defaultApp(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive review session",
	Long: `Start an interactive session. Paste code, then type /send on its own line to
get a review. /clear discards the pending code, /help lists commands and
/quit ends the session. Pending code is sent automatically at end of input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return newApp(cmd).Chat(cmd.Context(), options())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
