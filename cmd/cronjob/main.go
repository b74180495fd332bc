package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rentcar-backend/internal/app"
	"rentcar-backend/internal/config"
	"rentcar-backend/internal/jobs"
	"rentcar-backend/internal/logger"
	"rentcar-backend/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run one job by name (or \"all\") and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting rental cronjob runner...", "log_level", cfg.Log.Level, "timezone", cfg.Rental.Timezone)

	backend, err := app.OpenBackend(context.Background(), cfg, false)
	if err != nil {
		logger.Error("Failed to open backend", "error", err)
		log.Fatalf("Failed to open backend: %v", err)
	}
	defer backend.Close()

	// Jobs never upload images.
	svc := app.NewServices(cfg, backend.Store, nil)
	jobRunner := jobs.NewJobRunner(&jobs.Services{
		Rental:    svc.Rentals,
		Dashboard: svc.Dashboard,
	}, cfg)

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if err := jobRunner.RunByName(*runOnce); err != nil {
			logger.Error("Cannot run job", "job", *runOnce, "error", err)
			fmt.Fprintln(os.Stderr, "Available jobs:")
			for _, job := range jobRunner.Jobs() {
				fmt.Fprintf(os.Stderr, "  - %s (%s)\n", job.Name, job.Spec)
			}
			fmt.Fprintln(os.Stderr, "  - all")
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		logger.Error("Failed to create scheduler", "error", err)
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped")
}
