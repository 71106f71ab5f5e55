package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/kyber/formatter"
	"github.com/gnolang/kyber/internal/registry"
	"github.com/gnolang/kyber/scanner"
)

// checkCmd: kyber check [paths...]
var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Parse refactoring scripts and report load errors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := collectScripts(args)
		if err != nil {
			logger.Error("Error collecting scripts", zap.Error(err))
			return err
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range files {
			r, err := registry.LoadFile(path)
			if err != nil {
				failed++
				logger.Debug("Script failed to load", zap.String("file", path), zap.Error(err))
				fmt.Fprint(out, formatter.FormatLoadError(err))
				continue
			}
			fmt.Fprintf(out, "ok  %s (%s)\n", path, r.ID())
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d scripts failed to load", failed, len(files))
		}
		return nil
	},
}

// collectScripts expands directories into the script files below them.
func collectScripts(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		found, err := scanner.New(path).Scan()
		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", path, err)
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
	}
	return files, nil
}
