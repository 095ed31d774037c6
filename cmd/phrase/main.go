// Package main provides the phrase command line tool.
package main

import (
	"context"
	"fmt"
	"os"

	"phraseapp/cmd/phrase/commands"
	"phraseapp/internal/config"
	"phraseapp/internal/observability"
)

func main() {
	ctx := context.Background()

	if os.Getenv("PHRASE_CONFIG_FILE") == "" {
		defaultPaths := []string{
			"config.yaml",
			"../config.yaml",
			"../../config.yaml",
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := os.Setenv("PHRASE_CONFIG_FILE", path); err != nil {
					fmt.Fprintf(os.Stderr, "Failed to set PHRASE_CONFIG_FILE environment variable: %v\n", err)
					os.Exit(1)
				}
				break
			}
		}
	}

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Only errors reach the terminal; stdout belongs to the sentences
	cfg.Server.LogLevel = "error"
	cfg.OpenTelemetry.EnableTracing = false
	cfg.OpenTelemetry.EnableMetrics = false
	cfg.OpenTelemetry.EnableLogging = false

	_, _, logger, err := observability.SetupObservability(&cfg.OpenTelemetry, "phrase-cli", cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	env := commands.NewEnv(cfg, logger)
	rootCmd := commands.NewRootCommand(env)

	err = rootCmd.ExecuteContext(ctx)
	if closeErr := env.Close(ctx); closeErr != nil {
		logger.Warn(ctx, "Failed to shut down services", map[string]interface{}{"error": closeErr.Error()})
	}
	if err != nil {
		_ = logger.Sync()
		os.Exit(1)
	}
}
