package notify

import "time"

// Timer is the controllable half of a scheduled callback.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed callbacks. The real implementation delegates to
// time.AfterFunc; tests substitute a manual clock so dismissal windows and
// delayed expiries can be driven deterministically.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns a Clock backed by the runtime timers.
func RealClock() Clock { return realClock{} }
