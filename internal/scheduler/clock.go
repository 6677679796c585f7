package scheduler

import "time"

// Timer is a cancellable delayed call.
type Timer interface {
	// Stop prevents the call from running. It returns false if the call
	// has already started or been stopped.
	Stop() bool
}

// Clock schedules delayed calls. Calls run on their own goroutine and may
// race with Stop issued from another goroutine.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
func (realClock) Now() time.Time { return time.Now() }
