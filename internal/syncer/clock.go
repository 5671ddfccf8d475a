package syncer

import "time"

// Timer is a one-shot timer that can be rearmed or stopped. It matches
// the relevant surface of *time.Timer so the reconciler's debounce window
// can be driven by a fake clock in tests.
type Timer interface {
	Reset(d time.Duration) bool
	Stop() bool
}

// Clock creates timers and reports the current time.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Now() time.Time
}

type realClock struct{}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock { return realClock{} }

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func (realClock) Now() time.Time { return time.Now() }
