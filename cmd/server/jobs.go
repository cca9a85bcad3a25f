package main

import (
	"context"

	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/scheduler"
	"go.uber.org/zap"
)

// jobRunner owns the worker pool and the interval trigger feeding it
type jobRunner struct {
	pool    *scheduler.Scheduler
	trigger *scheduler.IntervalTrigger
	logger  *zap.Logger
}

// crmSchedules maps the CRM jobs to their configured intervals
func crmSchedules(cfg config.SchedulerConfig, jobs *crm.Jobs) []scheduler.Schedule {
	return []scheduler.Schedule{
		{Name: "heartbeat", Interval: cfg.HeartbeatInterval, Run: jobs.Heartbeat, RunOnStart: true},
		{Name: "report", Interval: cfg.ReportInterval, Run: jobs.Report},
		{Name: "order_reminders", Interval: cfg.ReminderInterval, Run: jobs.OrderReminders},
		{Name: "replenish_low_stock", Interval: cfg.ReplenishInterval, Run: jobs.ReplenishLowStock},
	}
}

func startJobs(ctx context.Context, cfg config.SchedulerConfig, jobs *crm.Jobs, log *zap.Logger) (*jobRunner, error) {
	pool := scheduler.NewScheduler(scheduler.Config{
		MaxConcurrentJobs: cfg.MaxConcurrentJobs,
		JobTimeout:        cfg.JobTimeout,
		RetryAttempts:     cfg.RetryAttempts,
		RetryDelay:        cfg.RetryDelay,
	}, log)

	trigger, err := scheduler.NewIntervalTrigger(pool, log, crmSchedules(cfg, jobs)...)
	if err != nil {
		return nil, err
	}
	if err := pool.Start(ctx); err != nil {
		return nil, err
	}
	if err := trigger.Start(ctx); err != nil {
		_ = pool.Stop(ctx)
		return nil, err
	}

	log.Info("Background jobs started", zap.Strings("schedules", trigger.Names()))
	return &jobRunner{pool: pool, trigger: trigger, logger: log}, nil
}

// stop halts the trigger first so nothing is submitted to a stopping pool
func (r *jobRunner) stop(ctx context.Context) {
	if err := r.trigger.Stop(ctx); err != nil {
		r.logger.Warn("Error stopping job trigger", zap.Error(err))
	}
	if err := r.pool.Stop(ctx); err != nil {
		r.logger.Warn("Error stopping scheduler", zap.Error(err))
	}
}
