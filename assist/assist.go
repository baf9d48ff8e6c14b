package assist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/oxlift/oxlift/internal"
	tt "github.com/oxlift/oxlift/internal/types"
)

const maxShowRecentFiles = 25

// AssistEngine is the part of the engine the command layer and the server
// depend on.
type AssistEngine interface {
	At(ctx context.Context, filename string, offset uint32) ([]tt.Assist, error)
	AtSource(ctx context.Context, source []byte, offset uint32) ([]tt.Assist, error)
	ScanFile(ctx context.Context, filename string) ([]tt.Assist, error)
	ScanSource(ctx context.Context, source []byte) ([]tt.Assist, error)
	IgnoreProvider(id string)
	IgnorePath(path string)
	IsIgnoredPath(path string) bool
}

// New builds an engine from the configuration file at configurationPath.
// An empty path gives an engine with every assist enabled.
func New(configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}

	return internal.NewEngine(config.Assists)
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine AssistEngine,
	sources [][]byte,
	processor func(context.Context, AssistEngine, []byte) ([]tt.Assist, error),
) ([]tt.Assist, error) {
	var all []tt.Assist
	for i, source := range sources {
		found, err := processor(ctx, engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, found...)
	}

	return all, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine AssistEngine,
	paths []string,
	processor func(context.Context, AssistEngine, string) ([]tt.Assist, error),
) ([]tt.Assist, error) {
	var all []tt.Assist
	for _, path := range paths {
		found, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, found...)
	}

	return all, nil
}

type fileResult struct {
	found []tt.Assist
	err   error
}

func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine AssistEngine,
	path string,
	processor func(context.Context, AssistEngine, string) ([]tt.Assist, error),
) ([]tt.Assist, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	var all []tt.Assist
	if info.IsDir() {
		var files []string
		err := filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fileInfo.IsDir() {
				if engine.IsIgnoredPath(filePath) {
					return filepath.SkipDir
				}
				return nil
			}
			if hasDesiredExtension(filePath) && !engine.IsIgnoredPath(filePath) {
				files = append(files, filePath)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}

		// mutex for recent files
		var recentFilesMutex sync.Mutex
		recentFiles := make([]string, maxShowRecentFiles)

		// make space for recent files
		for range maxShowRecentFiles + 1 {
			fmt.Println()
		}
		fmt.Printf("\033[%dA", maxShowRecentFiles+1)

		results := make(chan fileResult, len(files))

		// limit the number of workers
		maxWorkers := runtime.NumCPU()
		sem := make(chan struct{}, maxWorkers)

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription(path),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))

		// update recent files
		updateRecentFiles := func(filename string) {
			recentFilesMutex.Lock()
			defer recentFilesMutex.Unlock()

			// update the list
			for j := maxShowRecentFiles - 1; j > 0; j-- {
				recentFiles[j] = recentFiles[j-1]
			}
			recentFiles[0] = filename

			// move the cursor up
			fmt.Printf("\033[%dA", maxShowRecentFiles)

			// print the list
			for j := range recentFiles {
				if recentFiles[j] != "" {
					// \033[2K: clear the line
					// \r: move the cursor to the beginning of the line
					fmt.Printf("\033[2K\r%s\n", recentFiles[j])
				} else {
					fmt.Printf("\033[2K\r\n")
				}
			}
		}

		// for each file, run a goroutine
		for _, filePath := range files {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
				sem <- struct{}{}
				go func(fp string) {
					defer func() { <-sem }()

					// show the start of file processing
					updateRecentFiles(filepath.Base(fp))

					found, err := processor(ctx, engine, fp)
					if err != nil && logger != nil {
						logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
					}
					results <- fileResult{found: found, err: err}
					bar.Add(1)
				}(filePath)
			}
		}

		// collect all results, skipping files whose processor failed
		for range files {
			res := <-results
			if res.err != nil {
				continue
			}
			all = append(all, res.found...)
		}

		fmt.Println()
		return all, nil
	} else if hasDesiredExtension(path) {
		found, err := processor(ctx, engine, path)
		if err != nil {
			return nil, err
		}
		all = append(all, found...)
	}

	return all, nil
}

func ProcessFile(ctx context.Context, engine AssistEngine, filePath string) ([]tt.Assist, error) {
	return engine.ScanFile(ctx, filePath)
}

func ProcessSource(ctx context.Context, engine AssistEngine, source []byte) ([]tt.Assist, error) {
	return engine.ScanSource(ctx, source)
}

var desiredExtensions = map[string]bool{
	".rs": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}

// Config represents the overall configuration with a name and the per-assist
// settings.
type Config struct {
	Name    string                     `yaml:"name"`
	Assists map[string]tt.ConfigAssist `yaml:"assists"`
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	// Read the configuration file
	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	// Parse the configuration file
	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
