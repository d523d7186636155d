package service_test

import (
	"errors"
	"testing"
	"time"

	"innertone/internal/modules/activity/domain"
	"innertone/internal/modules/activity/service"
	apperrors "innertone/internal/platform/errors"
	"innertone/internal/platform/sched"
)

func TestMeditationCountsDownAndCompletesOnce(t *testing.T) {
	t.Parallel()
	clock := sched.NewFake(time.Unix(0, 0))
	completions := 0
	m := service.NewMeditation(clock, func(ev domain.Event) {
		if ev.Kind == domain.Completed {
			completions++
		}
	})
	if err := m.Select(1); err != nil {
		t.Fatalf("select: %v", err)
	}
	if m.Remaining() != 60*time.Second || domain.FormatClock(m.Remaining()) != "01:00" {
		t.Fatalf("expected 60s remaining, got %v", m.Remaining())
	}
	if err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.Advance(59 * time.Second)
	if domain.FormatClock(m.Remaining()) != "00:01" || completions != 0 {
		t.Fatalf("unexpected state at 59s: %v completions=%d", m.Remaining(), completions)
	}
	clock.Advance(time.Second)
	if m.Remaining() != 0 || m.Running() || completions != 1 {
		t.Fatalf("expected completion at 60s: remaining=%v running=%v completions=%d", m.Remaining(), m.Running(), completions)
	}
	clock.Advance(time.Minute)
	if completions != 1 || clock.Pending() != 0 {
		t.Fatalf("completion must fire exactly once, got %d (pending %d)", completions, clock.Pending())
	}
}

func TestMeditationStartWithoutDurationFails(t *testing.T) {
	t.Parallel()
	clock := sched.NewFake(time.Unix(0, 0))
	m := service.NewMeditation(clock, nil)
	if err := m.Start(); !errors.Is(err, apperrors.ErrZeroDuration) {
		t.Fatalf("expected zero duration error, got %v", err)
	}
	if m.Running() || clock.Pending() != 0 {
		t.Fatalf("no interval may start without a duration")
	}
	if err := m.Select(7); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid preset error, got %v", err)
	}
}

func TestMeditationPauseResumeAndReset(t *testing.T) {
	t.Parallel()
	clock := sched.NewFake(time.Unix(0, 0))
	m := service.NewMeditation(clock, nil)
	if err := m.Select(5); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.Advance(10 * time.Second)
	m.Pause()
	if !m.Paused() || m.Running() || clock.Pending() != 0 {
		t.Fatalf("pause should clear the interval")
	}
	clock.Advance(30 * time.Second)
	if m.Remaining() != 290*time.Second {
		t.Fatalf("paused timer kept counting: %v", m.Remaining())
	}
	if err := m.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	clock.Advance(5 * time.Second)
	if m.Remaining() != 285*time.Second {
		t.Fatalf("expected 285s after resume, got %v", m.Remaining())
	}
	m.Reset()
	if m.Remaining() != 0 || m.Running() || m.Paused() || clock.Pending() != 0 {
		t.Fatalf("reset must zero and clear unconditionally")
	}
	m.Reset()
	if err := m.Start(); !errors.Is(err, apperrors.ErrZeroDuration) {
		t.Fatalf("start after reset should fail, got %v", err)
	}
}
