package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_AddJob(t *testing.T) {
	s := NewScheduler(0)

	s.AddJob("a", time.Minute, func(ctx context.Context) error { return nil })
	s.AddJob("disabled", 0, func(ctx context.Context) error { return nil })

	assert.Equal(t, []string{"a"}, s.Jobs())
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(time.Second)
	var ran atomic.Int32
	s.AddJob("ok", time.Hour, func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		ran.Add(1)
		return nil
	})
	s.AddJob("fails", time.Hour, func(ctx context.Context) error {
		ran.Add(1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(2), ran.Load())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(0)
	var ran atomic.Int32
	s.AddJob("tick", 5*time.Millisecond, func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})

	s.Start()
	s.Start()
	assert.Eventually(t, func() bool { return ran.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := ran.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, ran.Load())
}
