// Package server wires configuration, services and the MCP tool surface
// into a runnable server with stdio and HTTP transports.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/mealpilot/recipe-mcp/config"
	"github.com/mealpilot/recipe-mcp/internal/imageinput"
	"github.com/mealpilot/recipe-mcp/internal/logmeal"
	"github.com/mealpilot/recipe-mcp/internal/service"
	"github.com/mealpilot/recipe-mcp/internal/storage"
	"github.com/mealpilot/recipe-mcp/internal/tools"
)

// instructions is surfaced to connecting MCP clients so they route image
// inputs correctly.
const instructions = `CRITICAL SYSTEM INSTRUCTIONS FOR IMAGE HANDLING:

1. IMAGE UPLOADS FROM CHAT:
   - DO NOT use the URL if it is a private link (e.g. github.com/user-attachments). The server CANNOT access these.
   - Instead, ask the user for the local file path of the image.
   - OR, if you can extract the image as base64, pass that to analyze_food_image.

2. STORAGE-BASED WORKFLOW:
   - For public URLs: use analyze_food_image_url
   - For file paths: use analyze_food_image

3. IMAGE MANAGEMENT:
   - List saved images: list_saved_images`

// Server hosts the MCP recipe server over a chosen transport.
type Server struct {
	cfg        *config.Config
	mcpServer  *mcp.Server
	logger     zerolog.Logger
	httpServer *http.Server
}

// New builds the full component graph: store, normalizer, backend
// clients, services and the registered tool surface.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	store, err := storage.New(cfg.ImageStorageDir, logger.With().Str("component", "storage").Logger())
	if err != nil {
		return nil, err
	}

	normalizer := imageinput.NewNormalizer(store, logger.With().Str("component", "imageinput").Logger())
	lmClient := logmeal.NewClient(cfg.LogMealAPIKey, cfg.LogMealAPIURL, logger.With().Str("component", "logmeal").Logger())
	recipes := service.NewRecipeService(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger.With().Str("component", "recipes").Logger())
	analysis := service.NewAnalysisService(store, normalizer, lmClient, logger.With().Str("component", "analysis").Logger())

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "recipe-mcp",
		Version: "1.0.0",
	}, &mcp.ServerOptions{Instructions: instructions})

	tools.Register(mcpServer, &tools.Deps{
		Recipes:  recipes,
		Analysis: analysis,
		Logger:   logger.With().Str("component", "tools").Logger(),
	})

	return &Server{cfg: cfg, mcpServer: mcpServer, logger: logger}, nil
}

// RunStdio serves MCP over stdin/stdout until the context is canceled or
// the client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	s.logger.Info().Msg("starting recipe server on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over SSE on the configured bind address.
func (s *Server) RunHTTP() error {
	gin.SetMode(gin.ReleaseMode)

	sseHandler := mcp.NewSSEHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Any("/mcp", gin.WrapH(sseHandler))

	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE streams stay open
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().Str("addr", s.cfg.Addr()).Msg("starting recipe server on HTTP")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server when one is running.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
