package commands

import (
	"github.com/spf13/cobra"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve code reviews over HTTP",
	Long: `Expose the review pipeline over HTTP:

  GET  /healthz   readiness of the Gemini model
  POST /review    {"code": "..."} returns the review as JSON

The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return newApp(cmd).Serve(cmd.Context(), options(), flagAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}
