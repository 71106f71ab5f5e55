package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/kyber/internal/registry"
	"github.com/gnolang/kyber/rpc"
)

// rpcCmd: kyber rpc suggest|perform
var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Answer a single editor request read from stdin",
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "List the refactorings that apply to the editor context",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newHandler(cmd)
		if err != nil {
			return err
		}
		if err := h.ServeSuggest(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			logger.Error("Suggest failed", zap.Error(err))
			return err
		}
		return nil
	},
}

var performCmd = &cobra.Command{
	Use:   "perform",
	Short: "Run a refactoring and print the edits it produces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newHandler(cmd)
		if err != nil {
			return err
		}
		if err := h.ServePerform(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			logger.Error("Perform failed", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	rpcCmd.AddCommand(suggestCmd)
	rpcCmd.AddCommand(performCmd)
}

func newHandler(cmd *cobra.Command) (*rpc.Handler, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		logger.Error("Failed to load configuration", zap.String("path", cfgFile), zap.Error(err))
		return nil, err
	}

	reg, err := registry.Load(logger, cfg)
	if err != nil {
		return nil, err
	}

	d := cfg.Timeout
	if cmd.Flags().Changed("timeout") {
		d = timeout
	}
	return rpc.NewHandler(reg, logger, d), nil
}
