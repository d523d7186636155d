package usecase

import (
	"context"

	"innertone/internal/modules/activity/domain"
	"innertone/internal/modules/activity/dto"
	activityin "innertone/internal/modules/activity/port/in"
	"innertone/internal/modules/activity/service"
	"innertone/internal/platform/sched"
)

type Interactor struct {
	svc   *service.ActivityService
	sched sched.Scheduler
}

func NewInteractor(svc *service.ActivityService, s sched.Scheduler) activityin.Usecase {
	return &Interactor{svc: svc, sched: s}
}

func (i *Interactor) StartBreathing(context.Context) dto.BreathingView {
	var view dto.BreathingView
	i.sched.Call(func() {
		i.svc.StartBreathing()
		view = i.breathingView()
	})
	return view
}

func (i *Interactor) StopBreathing(context.Context) dto.BreathingView {
	var view dto.BreathingView
	i.sched.Call(func() {
		i.svc.StopBreathing()
		view = i.breathingView()
	})
	return view
}

func (i *Interactor) ToggleBreathing(context.Context) dto.BreathingView {
	var view dto.BreathingView
	i.sched.Call(func() {
		i.svc.ToggleBreathing()
		view = i.breathingView()
	})
	return view
}

func (i *Interactor) SelectMeditation(_ context.Context, minutes int) (dto.MeditationView, error) {
	var (
		view dto.MeditationView
		err  error
	)
	i.sched.Call(func() {
		err = i.svc.SelectMeditation(minutes)
		view = i.meditationView()
	})
	return view, err
}

func (i *Interactor) StartMeditation(context.Context) (dto.MeditationView, error) {
	var (
		view dto.MeditationView
		err  error
	)
	i.sched.Call(func() {
		err = i.svc.StartMeditation()
		view = i.meditationView()
	})
	return view, err
}

func (i *Interactor) PauseMeditation(context.Context) dto.MeditationView {
	var view dto.MeditationView
	i.sched.Call(func() {
		i.svc.Meditation().Pause()
		view = i.meditationView()
	})
	return view
}

func (i *Interactor) ResumeMeditation(context.Context) (dto.MeditationView, error) {
	var (
		view dto.MeditationView
		err  error
	)
	i.sched.Call(func() {
		err = i.svc.Meditation().Resume()
		view = i.meditationView()
	})
	return view, err
}

func (i *Interactor) ResetMeditation(context.Context) dto.MeditationView {
	var view dto.MeditationView
	i.sched.Call(func() {
		i.svc.ResetMeditation()
		view = i.meditationView()
	})
	return view
}

func (i *Interactor) StartRelaxation(context.Context) dto.RelaxationView {
	var view dto.RelaxationView
	i.sched.Call(func() {
		i.svc.StartRelaxation()
		view = i.relaxationView()
	})
	return view
}

func (i *Interactor) StopRelaxation(context.Context) dto.RelaxationView {
	var view dto.RelaxationView
	i.sched.Call(func() {
		i.svc.StopRelaxation()
		view = i.relaxationView()
	})
	return view
}

func (i *Interactor) Snapshot(context.Context) dto.Snapshot {
	var snap dto.Snapshot
	i.sched.Call(func() { snap = i.snapshot() })
	return snap
}

func (i *Interactor) StopAll(context.Context) dto.Snapshot {
	var snap dto.Snapshot
	i.sched.Call(func() {
		i.svc.StopGuided()
		snap = i.snapshot()
	})
	return snap
}

func (i *Interactor) Subscribe(fn func(dto.Event)) func() {
	var id int
	i.sched.Call(func() {
		id = i.svc.Subscribe(func(ev domain.Event) {
			fn(dto.Event{Activity: string(ev.Activity), Kind: string(ev.Kind), Message: ev.Message, Count: ev.Count})
		})
	})
	return func() {
		i.sched.Call(func() { i.svc.Unsubscribe(id) })
	}
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.PracticeOutput, error) {
	practices, err := i.svc.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PracticeOutput, 0, len(practices))
	for _, p := range practices {
		out = append(out, dto.PracticeOutput{
			ID:        p.ID,
			Kind:      string(p.Kind),
			StartedAt: p.StartedAt,
			Duration:  p.Duration(),
			Cycles:    p.Cycles,
			Minutes:   p.Minutes,
			Completed: p.Completed,
		})
	}
	return out, nil
}

func (i *Interactor) snapshot() dto.Snapshot {
	return dto.Snapshot{
		Breathing:  i.breathingView(),
		Meditation: i.meditationView(),
		Relaxation: i.relaxationView(),
	}
}

func (i *Interactor) breathingView() dto.BreathingView {
	b := i.svc.Breathing()
	return dto.BreathingView{
		Active: b.Active(),
		Phase:  b.Phase().String(),
		Prompt: b.Phase().Prompt(),
		Cycles: b.Cycles(),
	}
}

func (i *Interactor) meditationView() dto.MeditationView {
	m := i.svc.Meditation()
	return dto.MeditationView{
		Running:   m.Running(),
		Paused:    m.Paused(),
		Minutes:   m.Minutes(),
		Remaining: m.Remaining(),
		Display:   domain.FormatClock(m.Remaining()),
	}
}

func (i *Interactor) relaxationView() dto.RelaxationView {
	r := i.svc.Relaxation()
	steps := domain.Steps()
	view := dto.RelaxationView{Active: r.Active(), Highlighted: r.Highlighted(), Finishing: r.Finishing()}
	for _, step := range steps {
		view.Steps = append(view.Steps, step.Title)
	}
	if idx := r.Highlighted(); idx >= 0 {
		step := steps[idx]
		view.Title = step.Title
		view.Instruction = step.Instruction
	}
	if view.Finishing {
		view.Message = domain.FinishMessage
	}
	return view
}
