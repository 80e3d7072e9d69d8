package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/signalnine/compactsim/internal/config"
	"github.com/signalnine/compactsim/internal/i18n"
	"github.com/signalnine/compactsim/internal/logging"
)

var (
	cfgFile      string
	flagLogLevel string
	flagLocale   string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "compactsim",
		Short:        "Simulate soil-compaction trial results for a cylinder",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (error, warn, info, debug, trace)")
	root.PersistentFlags().StringVar(&flagLocale, "locale", "", "output locale ("+strings.Join(i18n.Supported(), ", ")+")")
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// runtime bundles what every command needs after flags are parsed.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	printer *message.Printer
}

// loadRuntime reads the config (strictly when --config was given), then lets
// --log-level and --locale override it.
func loadRuntime(cmd *cobra.Command) (*runtime, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadOrDefault(cfgFile)
	}
	if err != nil {
		return nil, err
	}

	if flagLogLevel != "" {
		if !logging.ValidLevel(flagLogLevel) {
			return nil, fmt.Errorf("invalid --log-level %q", flagLogLevel)
		}
		cfg.LogLevel = flagLogLevel
	}
	if flagLocale != "" {
		cfg.Locale = flagLocale
	}

	p, err := i18n.NewPrinter(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("loading messages: %w", err)
	}
	return &runtime{
		cfg:     cfg,
		logger:  logging.NewLogger(cfg.LogLevel, cmd.ErrOrStderr()),
		printer: p,
	}, nil
}
