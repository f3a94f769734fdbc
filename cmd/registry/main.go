// Command registry runs the athlete and medical-supply registry: the HTTP
// API with its MCP tool endpoint, schema migrations, and a one-shot
// assistant client.
package main

import (
	"fmt"
	"os"

	"github.com/deppfellow/registry/internal/config"
	"github.com/deppfellow/registry/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// configPath is an optional YAML file layered under the environment.
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "registry",
	Short: "Athlete and medical-supply registry with a tool-using assistant",
	Long: `registry serves CRUD and search endpoints for athletes and medical
supplies, exposes the same operations as MCP tools at /mcp, and answers
free-text questions at /chat through a language model that calls those tools.

Configuration comes from built-in defaults, an optional YAML file (--config)
and REGISTRY_ environment variables, in that order.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (optional)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the root logger. The caller
// must Shutdown the returned service to flush APM data.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)
	return cfg, &log, loggerService, nil
}
