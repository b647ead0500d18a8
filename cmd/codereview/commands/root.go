// Package commands implements the CLI commands for codereview.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/irahardianto/codereview/internal/platform/logger"
	"github.com/spf13/cobra"
)

// Global flag values accessible to all commands.
var (
	flagJSON       bool
	flagVerbose    bool
	flagNoColor    bool
	flagConfigPath string
	flagEnvFile    string
)

// rootCmd is the base command for the codereview CLI.
var rootCmd = &cobra.Command{
	Use:   "codereview",
	Short: "AI code review agent backed by Gemini",
	Long: `Codereview sends a code snippet to a Gemini model and returns a structured
markdown review: summary, best practices, issues, security and a quality rating.

Use "codereview chat" for an interactive session, "codereview review" for a
one-shot review of a file, stdin or the staged git diff, and "codereview serve"
to expose the same pipeline over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		l := logger.New(cmd.ErrOrStderr(), flagVerbose, flagJSON)
		ctx := logger.WithContext(cmd.Context(), l)
		cmd.SetContext(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output results as JSON to stdout")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable rendered markdown and colors")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Config file path (default ~/.config/codereview/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Dotenv file to read (empty to skip)")
}

// options collects the global flags.
func options() Options {
	return Options{
		JSON:       flagJSON,
		Verbose:    flagVerbose,
		NoColor:    flagNoColor,
		ConfigPath: flagConfigPath,
		EnvFile:    flagEnvFile,
	}
}

// Execute runs the root command until it finishes or the process is interrupted.
// Errors already shown to the user are not printed again.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, ErrReported) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}
