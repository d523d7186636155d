package usecase

import (
	"context"

	"innertone/internal/modules/ambient/domain"
	"innertone/internal/modules/ambient/dto"
	ambientin "innertone/internal/modules/ambient/port/in"
	"innertone/internal/modules/ambient/service"
	"innertone/internal/platform/sched"
)

// Interactor hands every engine call to the scheduler thread.
type Interactor struct {
	engine *service.Engine
	sched  sched.Scheduler
}

func NewInteractor(engine *service.Engine, s sched.Scheduler) ambientin.Usecase {
	return &Interactor{engine: engine, sched: s}
}

func (i *Interactor) Scenes(context.Context) []dto.SceneOutput {
	scenes := domain.Scenes()
	out := make([]dto.SceneOutput, 0, len(scenes))
	for _, s := range scenes {
		out = append(out, dto.SceneOutput{ID: string(s.ID), Label: s.Label, Description: s.Description})
	}
	return out
}

func (i *Interactor) Start(_ context.Context, sceneID string) (dto.StatusOutput, error) {
	var (
		status dto.StatusOutput
		err    error
	)
	i.sched.Call(func() {
		err = i.engine.Start(domain.SceneID(sceneID))
		status = i.status()
	})
	return status, err
}

func (i *Interactor) Stop(context.Context) dto.StatusOutput {
	var status dto.StatusOutput
	i.sched.Call(func() {
		i.engine.Stop()
		status = i.status()
	})
	return status
}

func (i *Interactor) Toggle(_ context.Context, sceneID string) (dto.StatusOutput, error) {
	var (
		status dto.StatusOutput
		err    error
	)
	i.sched.Call(func() {
		err = i.engine.Toggle(domain.SceneID(sceneID))
		status = i.status()
	})
	return status, err
}

func (i *Interactor) SetVolume(_ context.Context, percent int) dto.StatusOutput {
	var status dto.StatusOutput
	i.sched.Call(func() {
		i.engine.SetVolume(percent)
		status = i.status()
	})
	return status
}

func (i *Interactor) Status(context.Context) dto.StatusOutput {
	var status dto.StatusOutput
	i.sched.Call(func() { status = i.status() })
	return status
}

func (i *Interactor) status() dto.StatusOutput {
	id, playing := i.engine.Active()
	return dto.StatusOutput{
		Active:      string(id),
		Playing:     playing,
		Volume:      i.engine.Volume(),
		ActiveNodes: i.engine.ActiveNodes(),
		Timers:      i.engine.Timers(),
	}
}
