package schedule

import "errors"

// ErrLoopStarted is returned when Run is called on a loop that already ran.
var ErrLoopStarted = errors.New("loop already started")
