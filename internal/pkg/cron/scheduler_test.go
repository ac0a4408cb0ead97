package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerFiresImmediatelyAndOnInterval(t *testing.T) {
	fired := make(chan struct{}, 8)

	s := NewScheduler()
	s.AddJob("tick", 20*time.Millisecond, func(context.Context) error {
		select {
		case fired <- struct{}{}:
		default:
		}
		return nil
	})
	s.Start()
	defer s.Stop()

	// One run on start plus at least one tick.
	for i := 0; i < 2; i++ {
		select {
		case <-fired:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not fire")
		}
	}
}

func TestSchedulerStopWaitsForRunningJobs(t *testing.T) {
	var done atomic.Bool

	s := NewScheduler()
	s.AddJob("slow", time.Hour, func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		done.Store(true)
		return errors.New("logged, not fatal")
	})
	s.Start()
	s.Stop()

	if !done.Load() {
		t.Fatal("Stop returned before the in-flight run finished")
	}
}
