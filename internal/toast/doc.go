// Package toast implements transient on-page notifications.
//
// A Notifier owns one page context: it injects the shared stylesheet once,
// keeps one stacking container per screen position and drives each toast
// through its lifecycle:
//
//	Mounted ⇄ Paused → Closing → Removed
//
// Toasts with a positive duration dismiss themselves when their timer fires;
// hovering pauses the timer and freezes the progress bar, leaving resumes it
// with whatever time was left. Closing plays the exit animation and the
// toast is removed from its container once it finishes.
//
// A Notifier is not safe for concurrent use. All calls, and the callbacks
// its Scheduler runs, must happen on a single timeline such as a
// schedule.Loop.
package toast
