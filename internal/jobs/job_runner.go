package jobs

import (
	"context"
	"fmt"
	"time"

	"rentcar-backend/internal/config"
	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/logger"
	"rentcar-backend/internal/service"
)

// jobTimeout bounds a single job run.
const jobTimeout = 2 * time.Minute

// OverdueLister lists ongoing rentals that are past their return date.
type OverdueLister interface {
	ListOverdue(ctx context.Context) ([]service.OverdueRental, error)
}

// StatsProvider reports the dashboard counters.
type StatsProvider interface {
	GetStats(ctx context.Context) (*domain.DashboardStats, error)
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Rental    OverdueLister
	Dashboard StatsProvider
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	logger.Info("Starting job", "job", jobName)
	if err := jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err, "duration", time.Since(start))
		return
	}
	logger.Info("Job completed", "job", jobName, "duration", time.Since(start))
}

// Job is a named job and the cron spec it runs on.
type Job struct {
	Name string
	Spec string
	Run  func()
}

// Jobs lists every job in the order they are registered.
func (jr *JobRunner) Jobs() []Job {
	cfg := jr.config.Scheduler
	return []Job{
		{Name: "report-overdue-rentals", Spec: cfg.ReportOverdueRentals, Run: jr.ReportOverdueRentals},
		{Name: "log-dashboard-snapshot", Spec: cfg.LogDashboardSnapshot, Run: jr.LogDashboardSnapshot},
	}
}

// RunByName runs a single job once, or every job for "all".
func (jr *JobRunner) RunByName(name string) error {
	if name == "all" {
		jr.RunAll()
		return nil
	}
	for _, job := range jr.Jobs() {
		if job.Name == name {
			job.Run()
			return nil
		}
	}
	return fmt.Errorf("unknown job %q", name)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	for _, job := range jr.Jobs() {
		job.Run()
	}
}
