// Package schedule provides the deferred-callback primitives the widget runs
// on: a Scheduler that can tell the time and run a function after a delay,
// a Loop that serializes all work onto one goroutine for real hosts, and a
// Manual clock for deterministic tests.
package schedule

import "time"

// Timer is a pending deferred callback.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// ran or was already stopped.
	Stop() bool
}

// Scheduler tells the time and schedules deferred callbacks.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}
