package service

import (
	"innertone/internal/modules/activity/domain"
	"innertone/internal/platform/sched"
)

// Relaxation walks through the fixed muscle groups, one held step at a time.
type Relaxation struct {
	sched  sched.Scheduler
	emit   func(domain.Event)
	active bool
	index  int
	gen    uint64
	timer  sched.Timer
}

func NewRelaxation(s sched.Scheduler, emit func(domain.Event)) *Relaxation {
	if emit == nil {
		emit = func(domain.Event) {}
	}
	return &Relaxation{sched: s, emit: emit}
}

func (r *Relaxation) Active() bool { return r.active }

// Highlighted returns the step on display, or -1 when none is.
func (r *Relaxation) Highlighted() int {
	if !r.active || r.index >= domain.StepCount() {
		return -1
	}
	return r.index
}

// Finishing reports the closing pause after the last step.
func (r *Relaxation) Finishing() bool {
	return r.active && r.index >= domain.StepCount()
}

// Start restarts the walkthrough from the first step.
func (r *Relaxation) Start() {
	r.cancel()
	r.active = true
	r.index = 0
	r.show(r.gen)
}

func (r *Relaxation) Stop() {
	if !r.active {
		return
	}
	r.cancel()
	r.active = false
	r.index = 0
	r.emit(domain.Event{Activity: domain.Relaxation, Kind: domain.Stopped})
}

func (r *Relaxation) cancel() {
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Relaxation) show(gen uint64) {
	step := domain.Steps()[r.index]
	r.emit(domain.Event{Activity: domain.Relaxation, Kind: domain.StepChanged, Message: step.Title, Count: r.index})
	r.timer = r.sched.AfterFunc(domain.StepHold, func() {
		if gen != r.gen || !r.active {
			return
		}
		r.index++
		if r.index < domain.StepCount() {
			r.show(gen)
			return
		}
		r.finishing(gen)
	})
}

func (r *Relaxation) finishing(gen uint64) {
	r.emit(domain.Event{Activity: domain.Relaxation, Kind: domain.Finishing, Message: domain.FinishMessage})
	r.timer = r.sched.AfterFunc(domain.FinishingHold, func() {
		if gen != r.gen || !r.active {
			return
		}
		r.timer = nil
		r.active = false
		r.index = 0
		r.emit(domain.Event{Activity: domain.Relaxation, Kind: domain.Completed, Message: domain.FinishMessage, Count: domain.StepCount()})
	})
}
