package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	activityout "innertone/internal/modules/activity/adapter/out"
	"innertone/internal/modules/activity/dto"
	activityin "innertone/internal/modules/activity/port/in"
	"innertone/internal/modules/activity/service"
	"innertone/internal/modules/activity/usecase"
	apperrors "innertone/internal/platform/errors"
	"innertone/internal/platform/sched"
)

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("practice-%d", s.n)
}

func setup(t *testing.T) (*sched.Fake, activityin.Usecase) {
	t.Helper()
	clock := sched.NewFake(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	root := filepath.Join(t.TempDir(), "practice")
	svc := service.NewActivityService(clock, clock, &seqID{}, activityout.NewVaultPracticeLog(root), nil)
	return clock, usecase.NewInteractor(svc, clock)
}

func TestCompletedActivitiesAreLogged(t *testing.T) {
	t.Parallel()
	clock, uc := setup(t)
	ctx := context.Background()

	if _, err := uc.SelectMeditation(ctx, 1); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := uc.StartMeditation(ctx); err != nil {
		t.Fatalf("start meditation: %v", err)
	}
	clock.Advance(time.Minute)

	uc.StartBreathing(ctx)
	clock.Advance(29 * time.Second)
	if view := uc.StopBreathing(ctx); view.Active || view.Cycles != 0 {
		t.Fatalf("stop should reset breathing view: %+v", view)
	}

	uc.StartRelaxation(ctx)
	clock.Advance(47 * time.Second)

	history, err := uc.History(ctx, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 practice notes, got %d: %+v", len(history), history)
	}
	if history[0].Kind != "relaxation" || history[1].Kind != "breathing" || history[2].Kind != "meditation" {
		t.Fatalf("unexpected order %+v", history)
	}
	if history[1].Cycles != 2 || history[2].Minutes != 1 || history[2].Duration != time.Minute {
		t.Fatalf("practice details lost: %+v", history)
	}
}

func TestStopAllLeavesMeditationRunning(t *testing.T) {
	t.Parallel()
	clock, uc := setup(t)
	ctx := context.Background()

	if _, err := uc.SelectMeditation(ctx, 5); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := uc.StartMeditation(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	uc.StartBreathing(ctx)
	uc.StartRelaxation(ctx)
	clock.Advance(3 * time.Second)

	snap := uc.StopAll(ctx)
	if snap.Breathing.Active || snap.Relaxation.Active || snap.Relaxation.Highlighted != -1 {
		t.Fatalf("guided activities should be stopped: %+v", snap)
	}
	if !snap.Meditation.Running || snap.Meditation.Display != "04:57" {
		t.Fatalf("meditation should keep counting: %+v", snap.Meditation)
	}
	if snap.Breathing.Prompt != "Select start to begin" {
		t.Fatalf("unexpected idle prompt %q", snap.Breathing.Prompt)
	}
}

func TestSubscribeReceivesEventsUntilCancelled(t *testing.T) {
	t.Parallel()
	clock, uc := setup(t)
	ctx := context.Background()

	var events []dto.Event
	cancel := uc.Subscribe(func(ev dto.Event) { events = append(events, ev) })
	uc.StartBreathing(ctx)
	clock.Advance(4 * time.Second)
	if len(events) != 2 || events[1].Message != "Hold..." {
		t.Fatalf("expected inhale and hold events, got %+v", events)
	}
	cancel()
	clock.Advance(4 * time.Second)
	if len(events) != 2 {
		t.Fatalf("cancelled listener still called")
	}
	if _, err := uc.StartMeditation(ctx); !errors.Is(err, apperrors.ErrZeroDuration) {
		t.Fatalf("expected zero duration error, got %v", err)
	}
}

func TestEarlyEndsAreLoggedAsIncomplete(t *testing.T) {
	t.Parallel()
	clock, uc := setup(t)
	ctx := context.Background()

	if _, err := uc.SelectMeditation(ctx, 10); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := uc.StartMeditation(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.Advance(30 * time.Second)
	if view := uc.ResetMeditation(ctx); view.Running || view.Remaining != 0 {
		t.Fatalf("reset should zero the countdown: %+v", view)
	}
	uc.ResetMeditation(ctx)
	if _, err := uc.SelectMeditation(ctx, 5); err != nil {
		t.Fatalf("select idle preset: %v", err)
	}

	clock.Advance(2 * time.Second)
	uc.StartRelaxation(ctx)
	clock.Advance(10 * time.Second)
	if view := uc.StopRelaxation(ctx); view.Active {
		t.Fatalf("relaxation should be stopped: %+v", view)
	}
	uc.StopRelaxation(ctx)

	history, err := uc.History(ctx, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 practice notes, got %d: %+v", len(history), history)
	}
	relax, med := history[0], history[1]
	if relax.Kind != "relaxation" || relax.Completed || relax.Duration != 10*time.Second {
		t.Fatalf("unexpected relaxation note %+v", relax)
	}
	if med.Kind != "meditation" || med.Completed || med.Minutes != 10 || med.Duration != 30*time.Second {
		t.Fatalf("unexpected meditation note %+v", med)
	}
}
