package service_test

import (
	"testing"
	"time"

	"innertone/internal/modules/activity/domain"
	"innertone/internal/modules/activity/service"
	"innertone/internal/platform/sched"
)

func TestBreathingCompletesOneCycleInFourteenSeconds(t *testing.T) {
	t.Parallel()
	clock := sched.NewFake(time.Unix(0, 0))
	var phases []domain.BreathPhase
	b := service.NewBreathing(clock, nil)
	b.Start()
	phases = append(phases, b.Phase())
	for _, step := range []time.Duration{4, 4, 4, 2} {
		clock.Advance(step * time.Second)
		phases = append(phases, b.Phase())
	}
	want := []domain.BreathPhase{domain.Inhale, domain.Hold, domain.Exhale, domain.Pause, domain.Inhale}
	for i := range want {
		if phases[i] != want[i] {
			t.Fatalf("phase %d = %s, want %s (all %v)", i, phases[i], want[i], phases)
		}
	}
	if b.Cycles() != 1 {
		t.Fatalf("expected 1 completed cycle at 14s, got %d", b.Cycles())
	}
	clock.Advance(14 * time.Second)
	if b.Cycles() != 2 {
		t.Fatalf("expected 2 cycles at 28s, got %d", b.Cycles())
	}
}

func TestBreathingStopResetsImmediately(t *testing.T) {
	t.Parallel()
	clock := sched.NewFake(time.Unix(0, 0))
	var events []domain.Event
	b := service.NewBreathing(clock, func(ev domain.Event) { events = append(events, ev) })
	b.Start()
	clock.Advance(15 * time.Second)
	if got := b.Stop(); got != 1 {
		t.Fatalf("stop should report 1 completed cycle, got %d", got)
	}
	if b.Active() || b.Phase() != domain.Idle || b.Cycles() != 0 || b.Phase().Prompt() != domain.IdlePrompt {
		t.Fatalf("machine not idle after stop: phase=%s cycles=%d", b.Phase(), b.Cycles())
	}
	if clock.Pending() != 0 {
		t.Fatalf("pending transition survived stop")
	}
	last := events[len(events)-1]
	if last.Kind != domain.Stopped || last.Message != domain.IdlePrompt {
		t.Fatalf("unexpected final event %+v", last)
	}
	seen := len(events)
	clock.Advance(time.Minute)
	if len(events) != seen || b.Phase() != domain.Idle {
		t.Fatalf("state changed after stop")
	}
	if b.Stop() != 0 {
		t.Fatalf("stopping an idle machine reports nothing")
	}
}

func TestBreathingRestartIgnoresStaleTransition(t *testing.T) {
	t.Parallel()
	clock := sched.NewFake(time.Unix(0, 0))
	b := service.NewBreathing(clock, nil)
	b.Start()
	clock.Advance(3 * time.Second)
	b.Stop()
	b.Start()
	clock.Advance(time.Second)
	if b.Phase() != domain.Inhale {
		t.Fatalf("old run's transition leaked into the new run: %s", b.Phase())
	}
	clock.Advance(3 * time.Second)
	if b.Phase() != domain.Hold {
		t.Fatalf("new run should reach hold after 4s, got %s", b.Phase())
	}
}
