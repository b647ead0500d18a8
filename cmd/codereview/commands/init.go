package commands

import (
	"github.com/irahardianto/codereview/internal/platform/logger"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a commented ~/.config/codereview/config.yaml (or the --config path)
if no config file exists yet. An existing file is never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		log.Info("init started")

		if err := newApp(cmd).Init(ctx, options()); err != nil {
			return err
		}

		log.Info("init completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
