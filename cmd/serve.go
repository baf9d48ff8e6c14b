package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oxlift/oxlift/assist"
	"github.com/oxlift/oxlift/internal/fixer"
	"github.com/oxlift/oxlift/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve assists over a websocket endpoint",
	Run: func(cmd *cobra.Command, args []string) {
		// a missing .env file is fine, the defaults below apply
		_ = godotenv.Load()

		if !cmd.Flags().Changed("addr") {
			if v := os.Getenv("OXLIFT_ADDR"); v != "" {
				serveAddr = v
			}
		}

		engine, err := assist.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize assist engine", zap.Error(err))
		}

		srv := server.New(engine, fixer.New(false), logger)
		if err := srv.ListenAndServe(serveAddr); err != nil {
			logger.Fatal("Server stopped", zap.Error(err))
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8089", "Address to listen on")
}
