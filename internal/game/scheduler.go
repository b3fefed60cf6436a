package game

import "time"

// Timer is a deferred action that can be cancelled
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d has elapsed
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
