package schedule

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultQueueSize is the task buffer of a Loop.
const DefaultQueueSize = 256

// Loop is a single execution timeline. Every task posted to it runs on the
// goroutine that called Run, one at a time, in post order. Timer callbacks
// created through AfterFunc are posted onto the same timeline.
type Loop struct {
	logger  *slog.Logger
	tasks   chan func()
	stopped chan struct{}
	started atomic.Bool
}

// NewLoop creates a loop. Call Run to start processing tasks.
func NewLoop(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		logger:  logger,
		tasks:   make(chan func(), DefaultQueueSize),
		stopped: make(chan struct{}),
	}
}

// Run processes tasks until ctx is cancelled. It may be called once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrLoopStarted
	}
	defer close(l.stopped)

	l.logger.Debug("loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("loop stopped")
			return ctx.Err()
		case task := <-l.tasks:
			l.run(task)
		}
	}
}

func (l *Loop) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop task panicked", "panic", r)
		}
	}()
	task()
}

// Post queues f to run on the loop. It returns false once the loop stopped.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.stopped:
		return false
	default:
	}
	select {
	case l.tasks <- f:
		return true
	case <-l.stopped:
		return false
	}
}

// Do runs f on the loop and waits for it to finish. It must not be called
// from a task already running on the loop.
func (l *Loop) Do(f func()) bool {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		f()
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-l.stopped:
		return false
	}
}

// Now returns the wall clock time.
func (l *Loop) Now() time.Time { return time.Now() }

// AfterFunc runs f on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if !t.state.CompareAndSwap(timerPending, timerFired) {
				return
			}
			f()
		})
	})
	return t
}

const (
	timerPending int32 = iota
	timerFired
	timerStopped
)

type loopTimer struct {
	timer *time.Timer
	state atomic.Int32
}

func (t *loopTimer) Stop() bool {
	if !t.state.CompareAndSwap(timerPending, timerStopped) {
		return false
	}
	t.timer.Stop()
	return true
}
