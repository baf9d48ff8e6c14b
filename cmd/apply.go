package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oxlift/oxlift/assist"
	"github.com/oxlift/oxlift/internal/fixer"
	tt "github.com/oxlift/oxlift/internal/types"
)

var (
	dryRun     bool
	onlyAssist string
)

var applyCmd = &cobra.Command{
	Use:   "apply [paths...]",
	Short: "Apply assists to the given files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := assist.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize assist engine", zap.Error(err))
		}

		runAutoApply(ctx, logger, engine, args, dryRun, onlyAssist)
	},
}

func init() {
	applyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the rewrites without applying them")
	applyCmd.Flags().StringVar(&onlyAssist, "only", "", "Apply only the assist with this ID")
}

func runAutoApply(ctx context.Context, logger *zap.Logger, engine assist.AssistEngine, paths []string, dryRun bool, only string) {
	fix := fixer.New(dryRun)

	for _, path := range paths {
		found, err := assist.ProcessPath(ctx, logger, engine, path, assist.ProcessFile)
		if err != nil {
			logger.Error("error processing path", zap.String("path", path), zap.Error(err))
			continue
		}

		// a scan may span many files, but edits are applied per file
		byFile := make(map[string][]tt.Assist)
		for _, a := range found {
			if only != "" && a.ID != only {
				continue
			}
			byFile[a.Filename] = append(byFile[a.Filename], a)
		}

		for filename, fileAssists := range byFile {
			if err := fix.Fix(filename, fileAssists); err != nil {
				logger.Error("error applying assists", zap.String("file", filename), zap.Error(err))
			}
		}
	}
}
