package scheduler

import "errors"

// Submission and configuration failures.
var (
	ErrSchedulerNotRunning = errors.New("scheduler: not running")
	ErrJobQueueFull        = errors.New("scheduler: queue full")
	ErrUnknownSchedule     = errors.New("scheduler: unknown schedule")
	ErrInvalidConfig       = errors.New("scheduler: invalid configuration")
)
