package sched

import "time"

// Fake is a virtual-time Scheduler for tests. Nothing happens until Advance
// is called; it is not safe for concurrent use.
type Fake struct {
	now    time.Time
	seq    uint64
	timers []*fakeTimer
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time { return f.now }

func (f *Fake) Call(fn func()) { fn() }

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	return f.add(d, 0, fn)
}

func (f *Fake) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	return f.add(d, d, fn)
}

func (f *Fake) add(d, period time.Duration, fn func()) *fakeTimer {
	if d < 0 {
		d = 0
	}
	f.seq++
	t := &fakeTimer{fake: f, due: f.now.Add(d), period: period, fn: fn, seq: f.seq}
	f.timers = append(f.timers, t)
	return t
}

// Advance moves virtual time forward by d, firing every callback that falls
// due on the way in deadline order. Callbacks scheduled by callbacks fire in
// the same call when their deadline is inside the window.
func (f *Fake) Advance(d time.Duration) {
	end := f.now.Add(d)
	for {
		next := f.earliest(end)
		if next == nil {
			break
		}
		f.now = next.due
		if next.period > 0 {
			f.seq++
			next.due = next.due.Add(next.period)
			next.seq = f.seq
		} else {
			next.stopped = true
			f.remove(next)
		}
		next.fn()
	}
	f.now = end
}

// Pending reports the number of live timers.
func (f *Fake) Pending() int { return len(f.timers) }

func (f *Fake) earliest(limit time.Time) *fakeTimer {
	var best *fakeTimer
	for _, t := range f.timers {
		if t.due.After(limit) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (f *Fake) remove(target *fakeTimer) {
	for i, t := range f.timers {
		if t == target {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return
		}
	}
}

type fakeTimer struct {
	fake    *Fake
	due     time.Time
	period  time.Duration
	fn      func()
	seq     uint64
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.fake.remove(t)
	return true
}
