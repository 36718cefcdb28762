package task

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Status represents the current state of a managed task.
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusRunning  Status = "running"
	StatusFinished Status = "finished"
)

// Logger defines the logging interface for the supervisor.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Fn is a long-running task body. It must return promptly once ctx is
// cancelled; the context is the task's only stop signal.
type Fn func(ctx context.Context)

// task is one named goroutine under supervision.
type task struct {
	name      string
	fn        Fn
	done      chan struct{}
	status    Status
	startTime time.Time
}

// Supervisor runs a set of named, long-lived goroutine tasks with a shared
// cancellation context and a bounded-wait shutdown.
//
// Each sensor, actuator engine, and the aggregator runs as one task that
// owns its state exclusively; cross-task communication happens only through
// the message bus, so tasks need no shared locks.
//
// Thread Safety: Add must not be called after Start. Other methods are safe
// for concurrent use.
type Supervisor struct {
	logger Logger

	mu      sync.RWMutex
	tasks   []*task
	cancel  context.CancelFunc
	started bool
}

// NewSupervisor creates an empty supervisor.
func NewSupervisor() *Supervisor {
	return &Supervisor{logger: noopLogger{}}
}

// SetLogger sets the logger for the supervisor.
func (s *Supervisor) SetLogger(logger Logger) {
	s.logger = logger
}

// Add registers a named task. Tasks start in registration order.
func (s *Supervisor) Add(name string, fn Fn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, &task{
		name:   name,
		fn:     fn,
		done:   make(chan struct{}),
		status: StatusStopped,
	})
}

// Start launches every registered task in its own goroutine.
//
// The supervisor derives its own context from ctx so that Stop can cancel
// tasks independently of the parent.
//
// Returns an error if the supervisor was already started.
func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("supervisor already started")
	}
	s.started = true

	var runCtx context.Context
	runCtx, s.cancel = context.WithCancel(ctx)
	tasks := s.tasks
	s.mu.Unlock()

	for _, t := range tasks {
		t.status = StatusRunning
		t.startTime = time.Now()
		s.logger.Info("task started", "name", t.name)

		go func(t *task) {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("task panic recovered", "name", t.name, "panic", r)
				}
				s.mu.Lock()
				t.status = StatusFinished
				s.mu.Unlock()
				close(t.done)
			}()
			t.fn(runCtx)
		}(t)
	}

	return nil
}

// Stop cancels all tasks and waits up to timeout for each to exit.
//
// Shutdown is cooperative: tasks observe context cancellation at their
// defined suspension points (ticker fires, channel receives). A task that
// does not exit within the timeout is logged and abandoned, since
// goroutines cannot be force-terminated.
//
// Returns the number of tasks that failed to stop in time.
func (s *Supervisor) Stop(timeout time.Duration) int {
	s.mu.Lock()
	cancel := s.cancel
	tasks := s.tasks
	s.mu.Unlock()

	if cancel == nil {
		return 0
	}
	cancel()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	stuck := 0
	for _, t := range tasks {
		select {
		case <-t.done:
			s.logger.Info("task stopped", "name", t.name)
		case <-deadline.C:
			// Deadline expired: account for every task still running
			// without waiting further.
			for _, rest := range tasks[indexOf(tasks, t):] {
				select {
				case <-rest.done:
				default:
					s.logger.Warn("task did not stop in time", "name", rest.name)
					stuck++
				}
			}
			return stuck
		}
	}
	return stuck
}

// indexOf returns the position of t in tasks.
func indexOf(tasks []*task, t *task) int {
	for i, candidate := range tasks {
		if candidate == t {
			return i
		}
	}
	return 0
}

// Stats describes one supervised task.
type Stats struct {
	Name   string        `json:"name"`
	Status Status        `json:"status"`
	Uptime time.Duration `json:"uptime,omitempty"`
}

// Stats returns current statistics for all tasks.
func (s *Supervisor) Stats() []Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make([]Stats, 0, len(s.tasks))
	for _, t := range s.tasks {
		st := Stats{Name: t.name, Status: t.status}
		if t.status == StatusRunning {
			st.Uptime = time.Since(t.startTime)
		}
		stats = append(stats, st)
	}
	return stats
}

// RunTicker runs fn at the given interval until ctx is cancelled.
//
// This is the scheduling primitive for sensor and actuator loops: an
// explicit ticker with cancellation checked at the suspension point, in
// place of sleep-based polling. fn receives the tick time.
func RunTicker(ctx context.Context, interval time.Duration, fn func(now time.Time)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			fn(now)
		}
	}
}
