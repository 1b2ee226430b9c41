// Package main provides the entry point for the YouTube media gateway.
// @title YouTube Media Gateway API
// @version 1.0
// @description A thin HTTP gateway that serves YouTube video metadata, muxed downloads and search results.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

package main

import (
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	_ "github.com/ytgate/ytgate/docs" // Import for swagger docs
	"github.com/ytgate/ytgate/internal/api/handlers"
	"github.com/ytgate/ytgate/internal/api/router"
	"github.com/ytgate/ytgate/internal/config"
	"github.com/ytgate/ytgate/internal/services/filecache"
	"github.com/ytgate/ytgate/internal/services/metadata"
	"github.com/ytgate/ytgate/internal/services/muxer"
	"github.com/ytgate/ytgate/internal/services/search"
	"github.com/ytgate/ytgate/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting YouTube media gateway")

	if _, err := exec.LookPath(cfg.Download.FFmpegPath); err != nil {
		logger.Warnf("ffmpeg not found at %q; downloads will fail until it is installed", cfg.Download.FFmpegPath)
	}

	// Initialize file cache (optional tier)
	var files *filecache.Store
	var stopSweeper func()
	if cfg.FileCache.Enabled {
		files, err = filecache.New(cfg.FileCache.Dir, cfg.FileCache.MaxAge)
		if err != nil {
			logger.Fatalf("Failed to initialize file cache: %v", err)
		}
		stopSweeper = files.StartSweeper(cfg.FileCache.SweepInterval)
	}

	// Initialize services
	metadataCache := metadata.NewCache(metadata.NewExtractor(), cfg.Metadata.FallbackTTL)
	invoker := muxer.NewInvoker(cfg.Download.FFmpegPath)
	searchService := search.NewService(cfg.Search.SessionTTL, cfg.Search.DefaultLimit)

	// Initialize handlers
	mediaHandler := handlers.NewMediaHandler(metadataCache, invoker, files, &cfg.Download)
	searchHandler := handlers.NewSearchHandler(searchService)

	fileCacheDir := ""
	if cfg.FileCache.Enabled {
		fileCacheDir = cfg.FileCache.Dir
	}
	healthHandler := handlers.NewHealthHandler(cfg.Download.FFmpegPath, fileCacheDir)

	// Initialize router
	r := router.NewRouter(cfg, mediaHandler, searchHandler, healthHandler)

	// Start server
	go func() {
		logger.Infof("Starting server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := r.Start(); err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if stopSweeper != nil {
		stopSweeper()
	}

	logger.Info("Server shutdown complete")
}
