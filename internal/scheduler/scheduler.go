package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"rentcar-backend/internal/jobs"
	"rentcar-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler running in the business timezone with
// seconds precision.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(jobRunner.Config().Location()),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs adds every job of the runner on its configured spec.
func (s *Scheduler) registerJobs() error {
	for _, job := range s.jobs.Jobs() {
		id, err := s.cron.AddFunc(job.Spec, job.Run)
		if err != nil {
			return fmt.Errorf("failed to register job %s (%q): %w", job.Name, job.Spec, err)
		}
		logger.Debug("Registered cron job", "job", job.Name, "spec", job.Spec, "entry", id)
	}

	logger.Info("All cron jobs registered successfully", "jobs", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has jobs registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
