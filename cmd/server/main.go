// The server command runs the recipe MCP server over stdio.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/mealpilot/recipe-mcp/config"
	"github.com/mealpilot/recipe-mcp/internal/server"
)

func main() {
	// Stdout belongs to the stdio transport; all logging goes to stderr.
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Warn().Err(err).Msg("configuration validation failed, continuing with default settings")
	} else {
		logger.Info().
			Str("openai_model", cfg.OpenAIModel).
			Bool("logmeal_configured", cfg.LogMealAPIKey != "").
			Msg("configuration validated")
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.RunStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("server failed")
	}
	logger.Info().Msg("server stopped")
}
