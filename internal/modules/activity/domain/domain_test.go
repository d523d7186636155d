package domain_test

import (
	"testing"
	"time"

	"innertone/internal/modules/activity/domain"
)

func TestBreathPhasesLoop(t *testing.T) {
	t.Parallel()
	p := domain.Inhale
	var total time.Duration
	for i := 0; i < 4; i++ {
		total += p.Duration()
		p = p.Next()
	}
	if p != domain.Inhale {
		t.Fatalf("expected to wrap to inhale, got %s", p)
	}
	if total != 14*time.Second || domain.CycleLength() != total {
		t.Fatalf("unexpected cycle length %v", total)
	}
	if domain.Idle.Prompt() != domain.IdlePrompt {
		t.Fatalf("idle prompt mismatch")
	}
}

func TestFormatClock(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{60 * time.Second, "01:00"},
		{20 * time.Minute, "20:00"},
		{59*time.Second + 1, "01:00"},
		{-5 * time.Second, "00:00"},
		{9*time.Minute + 5*time.Second, "09:05"},
	}
	for _, tc := range cases {
		if got := domain.FormatClock(tc.in); got != tc.want {
			t.Fatalf("FormatClock(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestPresets(t *testing.T) {
	t.Parallel()
	for _, m := range []int{1, 5, 10, 15, 20} {
		if !domain.ValidPreset(m) {
			t.Fatalf("%d should be a preset", m)
		}
	}
	if domain.ValidPreset(3) || domain.ValidPreset(0) {
		t.Fatalf("non-presets accepted")
	}
	if domain.StepCount() != 6 {
		t.Fatalf("expected six relaxation steps")
	}
}
