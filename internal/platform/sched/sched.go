// Package sched runs timer callbacks on a single logical thread.
//
// Every activity state machine and the ambient sound engine mutate their
// state only from scheduler callbacks or from functions passed to Call, so
// none of them needs a lock. Cancellation is cooperative: a stopped Timer
// never runs its callback, even when its deadline has already passed.
package sched

import "time"

type Timer interface {
	// Stop cancels the timer. It reports whether the call stopped a live
	// timer; stopping twice is harmless.
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
	// Call runs fn on the scheduler thread and waits for it to return. It
	// must not be called from inside a scheduler callback.
	Call(fn func())
	Now() time.Time
}
