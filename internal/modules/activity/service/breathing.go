package service

import (
	"innertone/internal/modules/activity/domain"
	"innertone/internal/platform/sched"
)

// Breathing loops Inhale, Hold, Exhale, Pause until stopped. Every transition
// carries the generation it was scheduled under; a stale one is ignored.
type Breathing struct {
	sched  sched.Scheduler
	emit   func(domain.Event)
	phase  domain.BreathPhase
	cycles int
	gen    uint64
	timer  sched.Timer
}

func NewBreathing(s sched.Scheduler, emit func(domain.Event)) *Breathing {
	if emit == nil {
		emit = func(domain.Event) {}
	}
	return &Breathing{sched: s, emit: emit}
}

func (b *Breathing) Active() bool { return b.phase != domain.Idle }

func (b *Breathing) Phase() domain.BreathPhase { return b.phase }

// Cycles counts completed traversals of the current run.
func (b *Breathing) Cycles() int { return b.cycles }

// Start begins a run at Inhale. Starting a running machine does nothing.
func (b *Breathing) Start() {
	if b.Active() {
		return
	}
	b.gen++
	b.cycles = 0
	b.enter(domain.Inhale, b.gen)
}

// Stop resets the machine to idle at once and returns the completed cycles.
func (b *Breathing) Stop() int {
	if !b.Active() {
		return 0
	}
	done := b.cycles
	b.gen++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.phase = domain.Idle
	b.cycles = 0
	b.emit(domain.Event{Activity: domain.Breathing, Kind: domain.Stopped, Message: domain.IdlePrompt, Count: done})
	return done
}

func (b *Breathing) Toggle() {
	if b.Active() {
		b.Stop()
		return
	}
	b.Start()
}

func (b *Breathing) enter(phase domain.BreathPhase, gen uint64) {
	b.phase = phase
	b.emit(domain.Event{Activity: domain.Breathing, Kind: domain.PhaseChanged, Message: phase.Prompt(), Count: b.cycles})
	b.timer = b.sched.AfterFunc(phase.Duration(), func() {
		if gen != b.gen {
			return
		}
		b.advance(gen)
	})
}

func (b *Breathing) advance(gen uint64) {
	if b.phase == domain.Pause {
		b.cycles++
		b.emit(domain.Event{Activity: domain.Breathing, Kind: domain.CycleDone, Count: b.cycles})
	}
	b.enter(b.phase.Next(), gen)
}
