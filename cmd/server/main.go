package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "rentcar-backend/internal/api/http"
	"rentcar-backend/internal/app"
	"rentcar-backend/internal/config"
	"rentcar-backend/internal/logger"
	"rentcar-backend/internal/security"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	hashPassword := flag.String("hash-password", "", "Print the bcrypt hash of a password for the admins table and exit")
	migrate := flag.Bool("migrate", true, "Apply database migrations on startup (postgres only)")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := security.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting rental back office...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "database_driver", cfg.Database.Driver,
		"storage", cfg.Storage.Type, "timezone", cfg.Rental.Timezone, "late_fee_per_day", cfg.Rental.LateFeePerDay)

	ctx := context.Background()
	backend, err := app.OpenBackend(ctx, cfg, *migrate)
	if err != nil {
		logger.Error("Failed to open backend", "error", err)
		log.Fatalf("Failed to open backend: %v", err)
	}
	defer backend.Close()

	images, err := backend.Images(cfg)
	if err != nil {
		logger.Error("Failed to initialize image storage", "error", err)
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	svc := app.NewServices(cfg, backend.Store, images)
	router := httpapi.NewRouter(httpapi.Services{
		Auth:      svc.Auth,
		Dashboard: svc.Dashboard,
		Customers: svc.Customers,
		Cars:      svc.Cars,
		Rentals:   svc.Rentals,
	}, svc.Tokens, images, httpapi.Options{
		MaxUploadBytes:    int64(cfg.Storage.MaxFileSizeMB) << 20,
		AllowedImageTypes: cfg.Storage.AllowedTypes,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped")
}
