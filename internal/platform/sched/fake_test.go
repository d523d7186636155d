package sched_test

import (
	"reflect"
	"testing"
	"time"

	"innertone/internal/platform/sched"
)

func TestFakeFiresInDeadlineOrder(t *testing.T) {
	t.Parallel()
	f := sched.NewFake(time.Unix(0, 0))
	var got []string
	f.AfterFunc(3*time.Second, func() { got = append(got, "c") })
	f.AfterFunc(time.Second, func() { got = append(got, "a") })
	f.AfterFunc(time.Second, func() { got = append(got, "b") })
	f.Advance(2 * time.Second)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected order after 2s: %v", got)
	}
	f.Advance(time.Second)
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected order after 3s: %v", got)
	}
	if f.Pending() != 0 {
		t.Fatalf("one-shot timers should be released, pending=%d", f.Pending())
	}
}

func TestFakeEveryAndStop(t *testing.T) {
	t.Parallel()
	f := sched.NewFake(time.Unix(0, 0))
	ticks := 0
	tm := f.Every(time.Second, func() { ticks++ })
	f.Advance(3500 * time.Millisecond)
	if ticks != 3 {
		t.Fatalf("expected 3 ticks, got %d", ticks)
	}
	if !tm.Stop() {
		t.Fatalf("first stop should report a live timer")
	}
	if tm.Stop() {
		t.Fatalf("second stop should be a no-op")
	}
	f.Advance(5 * time.Second)
	if ticks != 3 {
		t.Fatalf("stopped timer fired: %d", ticks)
	}
}

func TestFakeCallbackCanCancelSibling(t *testing.T) {
	t.Parallel()
	f := sched.NewFake(time.Unix(0, 0))
	fired := false
	var victim sched.Timer
	f.AfterFunc(time.Second, func() { victim.Stop() })
	victim = f.AfterFunc(time.Second, func() { fired = true })
	f.Advance(time.Second)
	if fired {
		t.Fatalf("timer stopped by an earlier callback at the same instant must not fire")
	}
}

func TestFakeNestedSchedulingInsideWindow(t *testing.T) {
	t.Parallel()
	start := time.Unix(0, 0)
	f := sched.NewFake(start)
	var at []time.Duration
	f.AfterFunc(time.Second, func() {
		at = append(at, f.Now().Sub(start))
		f.AfterFunc(time.Second, func() { at = append(at, f.Now().Sub(start)) })
	})
	f.Advance(5 * time.Second)
	if !reflect.DeepEqual(at, []time.Duration{time.Second, 2 * time.Second}) {
		t.Fatalf("unexpected firing times %v", at)
	}
	if f.Now().Sub(start) != 5*time.Second {
		t.Fatalf("clock should land on window end, got %v", f.Now().Sub(start))
	}
}
