package background_tasks

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Trigger decides when a task runs again.
type Trigger interface {
	// Next returns the start time of the run following one that ended at
	// finished.
	Next(finished time.Time) time.Time
}

// PeriodicTrigger waits a fixed interval between the end of one run and the
// start of the next.
type PeriodicTrigger struct {
	Interval time.Duration
}

func (t *PeriodicTrigger) Next(finished time.Time) time.Time {
	return finished.Add(t.Interval)
}

// CronTrigger runs at the activation times of a standard cron expression,
// which also accepts descriptors such as "@every 2s".
type CronTrigger struct {
	Expr     string
	schedule cron.Schedule
}

// NewCronTrigger parses expr.
func NewCronTrigger(expr string) (*CronTrigger, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return &CronTrigger{Expr: expr, schedule: schedule}, nil
}

func (t *CronTrigger) Next(finished time.Time) time.Time {
	return t.schedule.Next(finished)
}

// NewTrigger returns a CronTrigger when expr is set and a PeriodicTrigger
// otherwise. A periodic trigger needs a positive interval, or the task would
// run back to back.
func NewTrigger(interval time.Duration, expr string) (Trigger, error) {
	if expr != "" {
		return NewCronTrigger(expr)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("invalid interval %s: must be positive", interval)
	}
	return &PeriodicTrigger{Interval: interval}, nil
}
