package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type countingRunner struct {
	calls int32
	err   error
}

func (r *countingRunner) Run(ctx context.Context) error {
	atomic.AddInt32(&r.calls, 1)
	return r.err
}

func TestSchedulerInvalidSpec(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewScheduler(context.Background(), "not a schedule", &countingRunner{}, logger)

	assert.Error(t, s.Start())
}

func TestSchedulerRunsAndLogsFailures(t *testing.T) {
	logger, hook := test.NewNullLogger()
	runner := &countingRunner{err: errors.New("fetch: transport error")}

	s := NewScheduler(context.Background(), "@every 1s", runner, logger)
	assert.NoError(t, s.Start())

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runner.calls) >= 1
	}, 5*time.Second, 50*time.Millisecond)
	s.Stop()

	var logged bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "Scheduled weather run failed" {
			logged = true
		}
	}
	assert.True(t, logged)
}
