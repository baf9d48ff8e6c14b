package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oxlift/oxlift/assist"
	"github.com/oxlift/oxlift/formatter"
	"github.com/oxlift/oxlift/internal"
	tt "github.com/oxlift/oxlift/internal/types"
)

var (
	ignoreAssists  string
	ignorePaths    string
	scanJsonOutput bool
	outPath        string
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Scan files for applicable assists",
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

		if ignoreAssists != "" {
			ids := strings.Split(ignoreAssists, ",")
			for _, id := range ids {
				engine.IgnoreProvider(strings.TrimSpace(id))
			}
		}

		if ignorePaths != "" {
			paths := strings.Split(ignorePaths, ",")
			for _, path := range paths {
				engine.IgnorePath(strings.TrimSpace(path))
			}
		}

		runScanProcess(ctx, logger, engine, args, scanJsonOutput, outPath)
	},
}

func init() {
	scanCmd.Flags().StringVar(&ignoreAssists, "ignore", "", "Comma-separated list of assists to ignore")
	scanCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	scanCmd.Flags().BoolVar(&scanJsonOutput, "json", false, "Output assists in JSON format")
	scanCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

func runScanProcess(ctx context.Context, logger *zap.Logger, engine assist.AssistEngine, paths []string, isJson bool, jsonOutput string) {
	found, err := assist.ProcessFiles(ctx, logger, engine, paths, assist.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	printAssists(logger, found, isJson, jsonOutput)
}

func printAssists(logger *zap.Logger, found []tt.Assist, isJson bool, jsonOutput string) {
	assistsByFile := make(map[string][]tt.Assist)
	for _, a := range found {
		assistsByFile[a.Filename] = append(assistsByFile[a.Filename], a)
	}

	sortedFiles := make([]string, 0, len(assistsByFile))
	for filename := range assistsByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJson {
		// text output
		for _, filename := range sortedFiles {
			fileAssists := assistsByFile[filename]
			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
			output := formatter.GenerateFormattedAssists(fileAssists, sourceCode)
			fmt.Println(output)
		}
	} else {
		// JSON output
		d, err := json.Marshal(assistsByFile)
		if err != nil {
			logger.Error("Error marshalling assists to JSON", zap.Error(err))
			return
		}
		if jsonOutput == "" {
			fmt.Println(string(d))
		} else {
			f, err := os.Create(jsonOutput)
			if err != nil {
				logger.Error("Error creating JSON output file", zap.Error(err))
				return
			}
			defer f.Close()
			_, err = f.Write(d)
			if err != nil {
				logger.Error("Error writing JSON output file", zap.Error(err))
				return
			}
		}
	}
}
