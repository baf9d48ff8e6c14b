package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oxlift/oxlift/assist"
	"github.com/oxlift/oxlift/formatter"
	"github.com/oxlift/oxlift/internal"
)

var (
	atOffset   uint32
	atPosition string
	assistJson bool
	debugDump  bool
)

var assistCmd = &cobra.Command{
	Use:   "assist [file]",
	Short: "List assists applicable at a cursor position",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := assist.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize assist engine", zap.Error(err))
		}

		offset := atOffset
		if atPosition != "" {
			src, err := os.ReadFile(filename)
			if err != nil {
				logger.Fatal("Failed to read file", zap.String("file", filename), zap.Error(err))
			}
			offset, err = offsetFor(src, atPosition)
			if err != nil {
				logger.Fatal("Invalid position", zap.String("at", atPosition), zap.Error(err))
			}
		}

		found, err := engine.At(ctx, filename, offset)
		if err != nil {
			logger.Fatal("Failed to collect assists", zap.Error(err))
		}

		if debugDump {
			spew.Dump(found)
			if sourceCode, err := internal.ReadSourceCode(filename); err == nil {
				for _, a := range found {
					fmt.Printf("target of %s:\n%s\n", a.ID, formatter.TargetSnippet(a, sourceCode))
				}
			}
			return
		}

		if assistJson {
			d, err := json.Marshal(found)
			if err != nil {
				logger.Fatal("Error marshalling assists to JSON", zap.Error(err))
			}
			fmt.Println(string(d))
			return
		}

		if len(found) == 0 {
			fmt.Printf("no assists available at offset %d\n", offset)
			return
		}

		sourceCode, err := internal.ReadSourceCode(filename)
		if err != nil {
			logger.Fatal("Error reading source file", zap.String("file", filename), zap.Error(err))
		}
		fmt.Println(formatter.GenerateFormattedAssists(found, sourceCode))
	},
}

func init() {
	assistCmd.Flags().Uint32Var(&atOffset, "offset", 0, "Byte offset of the cursor")
	assistCmd.Flags().StringVar(&atPosition, "at", "", "Cursor position as line:column (1-based)")
	assistCmd.Flags().BoolVar(&assistJson, "json", false, "Output assists in JSON format")
	assistCmd.Flags().BoolVar(&debugDump, "debug", false, "Dump the raw assist structures")
}

// offsetFor converts a 1-based line:column position into a byte offset.
func offsetFor(src []byte, position string) (uint32, error) {
	part := strings.SplitN(position, ":", 2)
	if len(part) != 2 {
		return 0, fmt.Errorf("position %q is not line:column", position)
	}
	line, err := strconv.Atoi(part[0])
	if err != nil || line < 1 {
		return 0, fmt.Errorf("bad line in position %q", position)
	}
	column, err := strconv.Atoi(part[1])
	if err != nil || column < 1 {
		return 0, fmt.Errorf("bad column in position %q", position)
	}

	offset := 0
	for skip := line; skip > 1; skip-- {
		nl := bytes.IndexByte(src[offset:], '\n')
		if nl < 0 {
			return 0, fmt.Errorf("line %d is past the end of the file", line)
		}
		offset += nl + 1
	}
	offset += column - 1
	if offset > len(src) {
		return 0, fmt.Errorf("position %s is past the end of the file", position)
	}
	return uint32(offset), nil
}
