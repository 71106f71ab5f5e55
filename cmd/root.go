package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/kyber/internal/config"
)

var (
	cfgFile string
	verbose bool
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:          "kyber",
	Short:        "kyber - script-driven refactorings for text editors",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per-request evaluation timeout (overrides the configuration)")

	rootCmd.AddCommand(rpcCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
}

// loadConfig reads the configuration file. A missing file is only an error
// when --config was given explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if cmd.Flags().Changed("config") {
		return config.Load(cfgFile)
	}
	return config.LoadOrDefault(cfgFile)
}
