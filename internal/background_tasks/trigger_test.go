package background_tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodicTrigger(t *testing.T) {
	trigger := PeriodicTrigger{Interval: time.Second}
	finished := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, finished.Add(time.Second), trigger.Next(finished))
}

func TestCronTrigger(t *testing.T) {
	trigger, err := NewCronTrigger("@every 2s")
	require.NoError(t, err)

	finished := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, finished.Add(2*time.Second), trigger.Next(finished))

	minutely, err := NewCronTrigger("* * * * *")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 1, 0, 0, time.UTC), minutely.Next(finished.Add(10*time.Second)))
}

func TestCronTriggerInvalidExpression(t *testing.T) {
	_, err := NewCronTrigger("thewrongcron expression")
	assert.ErrorContains(t, err, "invalid cron expression")
}

func TestNewTrigger(t *testing.T) {
	trigger, err := NewTrigger(time.Second, "")
	require.NoError(t, err)
	assert.IsType(t, &PeriodicTrigger{}, trigger)

	trigger, err = NewTrigger(time.Second, "@every 5s")
	require.NoError(t, err)
	assert.IsType(t, &CronTrigger{}, trigger)

	_, err = NewTrigger(time.Second, "nope")
	assert.Error(t, err)

	_, err = NewTrigger(0, "")
	assert.ErrorContains(t, err, "must be positive")

	_, err = NewTrigger(-time.Second, "")
	assert.Error(t, err)

	trigger, err = NewTrigger(0, "@every 1s")
	require.NoError(t, err, "a schedule ignores the interval")
	assert.IsType(t, &CronTrigger{}, trigger)
}
