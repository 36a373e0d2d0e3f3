package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestManual_RunsDueCallbacksInOrder(t *testing.T) {
	m := NewManual(epoch)
	var order []string

	m.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(99 * time.Millisecond)
	assert.Empty(t, order)

	m.Advance(time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, m.Pending())

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, epoch.Add(1100*time.Millisecond), m.Now())
}

func TestManual_CallbackSeesItsDeadline(t *testing.T) {
	m := NewManual(epoch)
	var seen time.Time
	m.AfterFunc(250*time.Millisecond, func() { seen = m.Now() })

	m.Advance(time.Second)
	assert.Equal(t, epoch.Add(250*time.Millisecond), seen)
}

func TestManual_NestedScheduling(t *testing.T) {
	m := NewManual(epoch)
	fired := 0
	m.AfterFunc(100*time.Millisecond, func() {
		m.AfterFunc(100*time.Millisecond, func() { fired++ })
	})

	m.Advance(150 * time.Millisecond)
	assert.Equal(t, 0, fired)
	assert.Equal(t, []time.Duration{50 * time.Millisecond}, m.PendingDelays())

	m.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, fired)
}

func TestManual_Stop(t *testing.T) {
	m := NewManual(epoch)
	fired := false
	timer := m.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop reports nothing to cancel")
	m.Advance(2 * time.Second)
	assert.False(t, fired)
	assert.Equal(t, 0, m.Pending())
}

func TestManual_StopAfterFire(t *testing.T) {
	m := NewManual(epoch)
	timer := m.AfterFunc(0, func() {})
	m.Advance(0)
	assert.False(t, timer.Stop())
}

func TestLoop_DoRunsOnLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop(nil)
	go func() { _ = l.Run(ctx) }()

	var n int
	for i := 0; i < 10; i++ {
		require.True(t, l.Do(func() { n++ }))
	}
	assert.Equal(t, 10, n)
}

func TestLoop_AfterFuncPostsOntoLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop(nil)
	go func() { _ = l.Run(ctx) }()

	done := make(chan struct{})
	l.AfterFunc(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer callback did not run")
	}
}

func TestLoop_StoppedTimerDoesNotRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop(nil)
	go func() { _ = l.Run(ctx) }()

	var fired atomic.Bool
	timer := l.AfterFunc(20*time.Millisecond, func() { fired.Store(true) })
	assert.True(t, timer.Stop())

	time.Sleep(60 * time.Millisecond)
	require.True(t, l.Do(func() {}))
	assert.False(t, fired.Load())
}

func TestLoop_PanicIsContained(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop(nil)
	go func() { _ = l.Run(ctx) }()

	l.Post(func() { panic("boom") })
	assert.True(t, l.Do(func() {}), "loop keeps running after a task panics")
}

func TestLoop_PostAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(nil)
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()
	require.True(t, l.Do(func() {}))

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.False(t, l.Post(func() {}))
	assert.False(t, l.Do(func() {}))
	assert.ErrorIs(t, l.Run(context.Background()), ErrLoopStarted)
}
