package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalnine/compactsim/internal/config"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Check a config file",
		Long:  "Load a config file, apply environment overrides and report the first problem found. Defaults to --config.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d cylinders, locale %s, max count %d)\n",
				path, len(cfg.Cylinders), cfg.Locale, cfg.MaxCount)
			return nil
		},
	}
}
