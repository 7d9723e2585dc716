package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"adlens/shared/monitoring"

	"github.com/robfig/cron/v3"
)

// Agent is anything the scheduler can run repeatedly; the analysis
// pipeline implements it.
type Agent interface {
	Name() string
	Initialize() error
	// RunOnce executes a full run and returns a human-readable summary.
	RunOnce(ctx context.Context) (string, error)
}

// Scheduler runs an agent on a cron expression, with health endpoints
// for long-lived deployments.
type Scheduler struct {
	cronExpr   string
	healthPort string
	monitor    *monitoring.Monitor
	agent      Agent
	cron       *cron.Cron
}

func New(cronExpr, healthPort string, agent Agent) *Scheduler {
	return &Scheduler{
		cronExpr:   cronExpr,
		healthPort: healthPort,
		monitor:    monitoring.NewMonitor(),
		agent:      agent,
		// Prevent overlapping runs
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.agent.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize agent: %w", err)
	}

	healthServer := monitoring.NewHealthServer(s.monitor, s.healthPort)
	healthServer.Start()

	_, err := s.cron.AddFunc(s.cronExpr, func() {
		if err := s.RunOnce(ctx); err != nil {
			log.Printf("Error running scheduled job for %s: %v", s.agent.Name(), err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	log.Printf("Scheduler started for %s with schedule: %s", s.agent.Name(), s.cronExpr)
	s.cron.Start()

	<-ctx.Done()
	log.Printf("Scheduler stopped for %s", s.agent.Name())
	s.cron.Stop()
	return ctx.Err()
}

func (s *Scheduler) RunOnce(ctx context.Context) error {
	startTime := time.Now()
	agentName := s.agent.Name()

	log.Printf("Starting %s run...", agentName)

	summary, err := s.agent.RunOnce(ctx)
	duration := time.Since(startTime)
	if err != nil {
		s.monitor.RecordCriticalFailure(fmt.Errorf("%s failed: %w", agentName, err), duration)
		return fmt.Errorf("%s run failed: %w", agentName, err)
	}

	s.monitor.RecordSuccess(summary, duration)
	return nil
}
