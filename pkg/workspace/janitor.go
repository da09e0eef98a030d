package workspace

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor periodically evicts idle workspaces so the per-user map does not
// outlive the sessions that created it.
type Janitor struct {
	cron    *cron.Cron
	manager *Manager
	idle    time.Duration
	spec    string // cron spec, e.g. "@every 10m0s"
	logger  *slog.Logger
}

func NewJanitor(manager *Manager, every, idle time.Duration, logger *slog.Logger) *Janitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Janitor{
		cron:    cron.New(),
		manager: manager,
		idle:    idle,
		spec:    "@every " + every.String(),
		logger:  logger,
	}
}

// Start registers the sweep and starts the scheduler.
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.sweep); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	j.cron.Start()
	j.logger.Info("workspace janitor started", "spec", j.spec, "idle", j.idle)
	return nil
}

// Stop halts the scheduler and waits for a running sweep.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

func (j *Janitor) sweep() {
	if n := j.manager.Evict(j.idle); n > 0 {
		j.logger.Info("idle workspaces evicted", "evicted", n, "active", j.manager.Len())
	}
}
