package sched

import (
	"sync"
	"sync/atomic"
	"time"
)

// Loop is the production Scheduler: one goroutine drains a task queue and
// runs callbacks strictly one after another.
type Loop struct {
	tasks chan func()
	quit  chan struct{}
	done  chan struct{}

	mu     sync.Mutex
	timers map[*loopTimer]struct{}
	closed bool
	once   sync.Once
}

func NewLoop() *Loop {
	l := &Loop{
		tasks:  make(chan func(), 64),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		timers: make(map[*loopTimer]struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.quit:
			return
		}
	}
}

func (l *Loop) post(fn func()) bool {
	select {
	case l.tasks <- fn:
		return true
	case <-l.quit:
		return false
	}
}

func (l *Loop) Now() time.Time { return time.Now() }

func (l *Loop) Call(fn func()) {
	finished := make(chan struct{})
	if !l.post(func() {
		defer close(finished)
		fn()
	}) {
		return
	}
	select {
	case <-finished:
	case <-l.quit:
	}
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	return l.schedule(d, 0, fn)
}

func (l *Loop) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	return l.schedule(d, d, fn)
}

func (l *Loop) schedule(d, period time.Duration, fn func()) Timer {
	lt := &loopTimer{loop: l, period: period, fn: fn}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		lt.stopped.Store(true)
		return lt
	}
	l.timers[lt] = struct{}{}
	lt.mu.Lock()
	lt.t = time.AfterFunc(d, lt.fire)
	lt.mu.Unlock()
	l.mu.Unlock()
	return lt
}

func (l *Loop) forget(lt *loopTimer) {
	l.mu.Lock()
	delete(l.timers, lt)
	l.mu.Unlock()
}

// Pending reports how many timers are still armed.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Close stops every armed timer and the loop goroutine. Queued callbacks
// that have not started are dropped.
func (l *Loop) Close() {
	l.once.Do(func() {
		l.mu.Lock()
		l.closed = true
		live := make([]*loopTimer, 0, len(l.timers))
		for lt := range l.timers {
			live = append(live, lt)
		}
		l.mu.Unlock()
		for _, lt := range live {
			lt.Stop()
		}
		close(l.quit)
		<-l.done
	})
}

type loopTimer struct {
	loop    *Loop
	period  time.Duration
	fn      func()
	stopped atomic.Bool

	mu sync.Mutex
	t  *time.Timer
}

func (lt *loopTimer) Stop() bool {
	if lt.stopped.Swap(true) {
		return false
	}
	lt.mu.Lock()
	if lt.t != nil {
		lt.t.Stop()
	}
	lt.mu.Unlock()
	lt.loop.forget(lt)
	return true
}

// fire runs on the runtime timer goroutine and hands the callback to the
// loop. The stopped flag is checked again on the loop thread.
func (lt *loopTimer) fire() {
	if lt.stopped.Load() {
		return
	}
	if lt.period > 0 {
		lt.mu.Lock()
		if !lt.stopped.Load() {
			lt.t.Reset(lt.period)
		}
		lt.mu.Unlock()
	}
	lt.loop.post(func() {
		if lt.stopped.Load() {
			return
		}
		if lt.period == 0 {
			lt.stopped.Store(true)
			lt.loop.forget(lt)
		}
		lt.fn()
	})
}
