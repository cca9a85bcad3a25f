package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Schedule is a named job that fires every Interval
type Schedule struct {
	Name     string
	Interval time.Duration
	Run      JobFunc
	// RunOnStart submits the job once immediately when the trigger starts
	RunOnStart bool
}

// Submitter accepts jobs; *Scheduler implements it
type Submitter interface {
	Submit(name string, fn JobFunc) error
}

// IntervalTrigger submits each registered schedule to the worker pool on its
// own ticker.
type IntervalTrigger struct {
	submitter Submitter
	logger    *zap.Logger

	schedules map[string]Schedule
	order     []string
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewIntervalTrigger creates a trigger for the given schedules. Schedules with
// a non-positive interval are skipped.
func NewIntervalTrigger(submitter Submitter, logger *zap.Logger, schedules ...Schedule) (*IntervalTrigger, error) {
	t := &IntervalTrigger{
		submitter: submitter,
		logger:    logger,
		schedules: make(map[string]Schedule, len(schedules)),
	}
	for _, s := range schedules {
		if s.Name == "" || s.Run == nil {
			return nil, ErrInvalidConfig
		}
		if s.Interval <= 0 {
			logger.Info("Schedule disabled", zap.String("job", s.Name))
			continue
		}
		t.schedules[s.Name] = s
		t.order = append(t.order, s.Name)
	}
	return t, nil
}

// Start launches one ticker loop per schedule
func (t *IntervalTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	for _, name := range t.order {
		s := t.schedules[name]
		if s.RunOnStart {
			t.fire(s)
		}
		t.wg.Add(1)
		go t.runLoop(ctx, s)
		t.logger.Info("Schedule registered",
			zap.String("job", s.Name),
			zap.Duration("interval", s.Interval),
		)
	}
	return nil
}

// Stop stops all ticker loops
func (t *IntervalTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Interval trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TriggerNow submits a registered schedule immediately
func (t *IntervalTrigger) TriggerNow(name string) error {
	s, ok := t.schedules[name]
	if !ok {
		return ErrUnknownSchedule
	}
	return t.submitter.Submit(s.Name, s.Run)
}

// Names returns the active schedule names in registration order
func (t *IntervalTrigger) Names() []string {
	return append([]string(nil), t.order...)
}

func (t *IntervalTrigger) runLoop(ctx context.Context, s Schedule) {
	defer t.wg.Done()

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.fire(s)
		}
	}
}

func (t *IntervalTrigger) fire(s Schedule) {
	if err := t.submitter.Submit(s.Name, s.Run); err != nil {
		t.logger.Warn("Failed to submit scheduled job",
			zap.String("job", s.Name),
			zap.Error(err),
		)
	}
}
