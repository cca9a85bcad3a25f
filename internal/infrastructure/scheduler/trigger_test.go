package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type recordingSubmitter struct {
	mu    sync.Mutex
	names []string
}

func (r *recordingSubmitter) Submit(name string, fn JobFunc) error {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
	return fn(context.Background())
}

func (r *recordingSubmitter) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.names {
		if got == name {
			n++
		}
	}
	return n
}

func noopJob(context.Context) error { return nil }

func TestNewIntervalTrigger(t *testing.T) {
	t.Run("skips disabled schedules", func(t *testing.T) {
		trigger, err := NewIntervalTrigger(&recordingSubmitter{}, zaptest.NewLogger(t),
			Schedule{Name: "heartbeat", Interval: time.Minute, Run: noopJob},
			Schedule{Name: "report", Interval: 0, Run: noopJob},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"heartbeat"}, trigger.Names())
	})

	t.Run("rejects schedule without func", func(t *testing.T) {
		_, err := NewIntervalTrigger(&recordingSubmitter{}, zaptest.NewLogger(t),
			Schedule{Name: "heartbeat", Interval: time.Minute},
		)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestIntervalTrigger_FiresOnTick(t *testing.T) {
	sub := &recordingSubmitter{}
	trigger, err := NewIntervalTrigger(sub, zaptest.NewLogger(t),
		Schedule{Name: "heartbeat", Interval: 10 * time.Millisecond, Run: noopJob},
		Schedule{Name: "report", Interval: time.Hour, Run: noopJob, RunOnStart: true},
	)
	require.NoError(t, err)
	require.NoError(t, trigger.Start(context.Background()))

	assert.Eventually(t, func() bool { return sub.count("heartbeat") >= 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, trigger.Stop(context.Background()))

	assert.Equal(t, 1, sub.count("report"))
}

func TestIntervalTrigger_TriggerNow(t *testing.T) {
	sub := &recordingSubmitter{}
	trigger, err := NewIntervalTrigger(sub, zaptest.NewLogger(t),
		Schedule{Name: "order_reminders", Interval: time.Hour, Run: noopJob},
	)
	require.NoError(t, err)

	require.NoError(t, trigger.TriggerNow("order_reminders"))
	assert.Equal(t, 1, sub.count("order_reminders"))
	assert.ErrorIs(t, trigger.TriggerNow("missing"), ErrUnknownSchedule)
}
