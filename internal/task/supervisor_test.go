package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestSupervisorStartStop(t *testing.T) {
	sup := NewSupervisor()

	var ran atomic.Bool
	sup.Add("worker", func(ctx context.Context) {
		ran.Store(true)
		<-ctx.Done()
	})

	if err := sup.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Give the goroutine a moment to run.
	time.Sleep(20 * time.Millisecond)
	if !ran.Load() {
		t.Error("task body did not run")
	}

	if stuck := sup.Stop(time.Second); stuck != 0 {
		t.Errorf("Stop() = %d stuck tasks, want 0", stuck)
	}
}

func TestSupervisorDoubleStart(t *testing.T) {
	sup := NewSupervisor()
	sup.Add("worker", func(ctx context.Context) { <-ctx.Done() })

	if err := sup.Start(context.Background()); err != nil {
		t.Fatalf("first Start() error = %v", err)
	}
	defer sup.Stop(time.Second)

	if err := sup.Start(context.Background()); err == nil {
		t.Error("second Start() = nil, want error")
	}
}

func TestSupervisorStuckTask(t *testing.T) {
	sup := NewSupervisor()

	release := make(chan struct{})
	sup.Add("stuck", func(_ context.Context) {
		// Ignores cancellation until released.
		<-release
	})

	if err := sup.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if stuck := sup.Stop(50 * time.Millisecond); stuck != 1 {
		t.Errorf("Stop() = %d stuck tasks, want 1", stuck)
	}
	close(release)
}

func TestSupervisorRecoversPanic(t *testing.T) {
	sup := NewSupervisor()
	sup.Add("panicky", func(_ context.Context) {
		panic("boom")
	})

	if err := sup.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// A panicking task must still count as stopped.
	if stuck := sup.Stop(time.Second); stuck != 0 {
		t.Errorf("Stop() = %d stuck tasks, want 0", stuck)
	}

	stats := sup.Stats()
	if len(stats) != 1 || stats[0].Status != StatusFinished {
		t.Errorf("Stats() = %+v, want one finished task", stats)
	}
}

func TestRunTicker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var ticks atomic.Int32
	done := make(chan struct{})
	go func() {
		RunTicker(ctx, 10*time.Millisecond, func(time.Time) {
			ticks.Add(1)
		})
		close(done)
	}()

	time.Sleep(55 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunTicker did not return after cancellation")
	}

	if ticks.Load() < 2 {
		t.Errorf("ticks = %d, want at least 2", ticks.Load())
	}
}
