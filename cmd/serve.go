package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"sitegen_server/config"
	"sitegen_server/internal/ai"
	"sitegen_server/internal/api"
	"sitegen_server/internal/sitegen"
	"sitegen_server/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer() error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	// --- Dependency Initialization ---
	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	log.Printf("SQLite database ready at %s", cfg.DatabasePath)

	orphans, err := sitegen.ParseOrphanPolicy(cfg.OrphanPagePolicy)
	if err != nil {
		return err
	}

	generator := ai.NewGenerator(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	pipeline := sitegen.NewPipeline(generator, sitegen.WithPageConcurrency(cfg.PageConcurrency))
	builder := sitegen.NewBuilder(pipeline, db,
		sitegen.WithOrphanPolicy(orphans),
		sitegen.WithUploadLimit(cfg.MaxUploadImages),
	)
	apiHandler := api.NewAPIHandler(builder, db, cfg.MaxUploadImages)

	// --- Start API Server ---
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in Gin Debug Mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	api.RegisterRoutes(router, apiHandler)

	server := &http.Server{
		Addr:        cfg.ServerAddress,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// A generation pass makes one model call per page.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting API server on %s (model=%s, orphans=%s, page concurrency=%d)", cfg.ServerAddress, generator.Model(), orphans, cfg.PageConcurrency)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Printf("Received signal: %s. Shutting down server...", sig)
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("API server listen error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server forced shutdown error: %v", err)
	} else {
		log.Println("API server gracefully stopped.")
	}

	log.Println("Application exiting.")
	return nil
}
