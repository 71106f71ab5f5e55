package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/kyber/formatter"
	"github.com/gnolang/kyber/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every loaded refactoring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			logger.Error("Failed to load configuration", zap.String("path", cfgFile), zap.Error(err))
			return err
		}

		reg, err := registry.Load(logger, cfg)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRefactorings(reg.All()))
		return nil
	},
}
