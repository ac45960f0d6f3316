package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// JobFunc is one unit of scheduled work
type JobFunc func(ctx context.Context) error

type job struct {
	name    string
	expr    string
	fn      JobFunc
	entryID cron.EntryID
}

// Scheduler runs named jobs on cron expressions in UTC
type Scheduler struct {
	cron       *cron.Cron
	logger     *logrus.Entry
	jobTimeout time.Duration

	mu        sync.RWMutex
	isRunning bool
	jobs      map[string]*job
}

// NewScheduler creates a new scheduler. Each run gets jobTimeout to finish.
func NewScheduler(jobTimeout time.Duration, logger *logrus.Logger) *Scheduler {
	if jobTimeout <= 0 {
		jobTimeout = 10 * time.Minute
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		logger:     logger.WithField("component", "scheduler"),
		jobTimeout: jobTimeout,
		jobs:       make(map[string]*job),
	}
}

// Schedule registers fn under name. An empty expression is ignored.
func (s *Scheduler) Schedule(name, expr string, fn JobFunc) error {
	if expr == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already scheduled", name)
	}

	j := &job{name: name, expr: expr, fn: fn}
	entryID, err := s.cron.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()
		s.run(ctx, j)
	})
	if err != nil {
		return fmt.Errorf("failed to add job %q: %w", name, err)
	}
	j.entryID = entryID
	s.jobs[name] = j

	s.logger.WithFields(logrus.Fields{"job": name, "cron": expr}).Info("Scheduled job")
	return nil
}

// RunNow runs a registered job immediately on the caller's goroutine
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.RLock()
	j, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	return s.run(ctx, j)
}

func (s *Scheduler) run(ctx context.Context, j *job) error {
	start := time.Now()
	err := j.fn(ctx)
	entry := s.logger.WithFields(logrus.Fields{
		"job":      j.name,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Error("Scheduled job failed")
		return err
	}
	entry.Info("Scheduled job completed")
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobs)).Info("Scheduler started")
	return nil
}

// Stop waits for running jobs and stops the scheduler
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Jobs returns the registered job names in order
func (s *Scheduler) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextRun returns the earliest upcoming run, zero when stopped
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	var next time.Time
	for _, j := range s.jobs {
		entry := s.cron.Entry(j.entryID)
		if !entry.Valid() {
			continue
		}
		if next.IsZero() || entry.Next.Before(next) {
			next = entry.Next
		}
	}
	return next
}
