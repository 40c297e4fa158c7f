// Package cmd is the portfolio command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hybridzdynamics/portfolio/internal/config"
	"github.com/hybridzdynamics/portfolio/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	v         = config.New()
	appConfig config.Config
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Hybridz Dynamics portfolio site",
	Long: `Serves the Hybridz Dynamics portfolio, or exports it as a static site.
Contact form submissions are forwarded to the configured form endpoint and never stored.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		appConfig = cfg
		logger = logging.New(cfg.LogLevel, cfg.LogFormat, cfg.GinMode, os.Stderr)
		return nil
	},
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./portfolio.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	_ = v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}
