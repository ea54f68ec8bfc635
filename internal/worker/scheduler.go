package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one unit of periodic maintenance work.
type Job struct {
	Name string
	Run  func(ctx context.Context)
}

// JobScheduler runs a list of jobs on a fixed schedule.
type JobScheduler struct {
	Name   string
	Ticker *time.Ticker
	jobs   []Job
	mu     sync.RWMutex
}

func NewJobScheduler(name string, interval time.Duration) *JobScheduler {
	return &JobScheduler{
		Name:   name,
		Ticker: time.NewTicker(interval),
		jobs:   make([]Job, 0),
	}
}

func (s *JobScheduler) AddJob(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
}

func (s *JobScheduler) Run(ctx context.Context) {
	slog.Info("scheduler running", "scheduler", s.Name)
	defer s.Ticker.Stop()

	for {
		select {
		case <-s.Ticker.C:
			s.runJobs(ctx)

		case <-ctx.Done():
			slog.Info("scheduler shutting down", "scheduler", s.Name)
			return
		}
	}
}

func (s *JobScheduler) runJobs(ctx context.Context) {
	s.mu.RLock()
	jobsToRun := make([]Job, len(s.jobs))
	copy(jobsToRun, s.jobs)
	s.mu.RUnlock()

	for _, job := range jobsToRun {
		jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		job.Run(jobCtx)
		cancel()
	}
}
