package service

import (
	"time"

	"innertone/internal/modules/activity/domain"
	apperrors "innertone/internal/platform/errors"
	"innertone/internal/platform/sched"
)

// Meditation counts a selected preset down once per second.
type Meditation struct {
	sched     sched.Scheduler
	emit      func(domain.Event)
	minutes   int
	remaining time.Duration
	running   bool
	paused    bool
	gen       uint64
	ticker    sched.Timer
}

func NewMeditation(s sched.Scheduler, emit func(domain.Event)) *Meditation {
	if emit == nil {
		emit = func(domain.Event) {}
	}
	return &Meditation{sched: s, emit: emit}
}

func (m *Meditation) Running() bool            { return m.running }
func (m *Meditation) Paused() bool             { return m.paused }
func (m *Meditation) Minutes() int             { return m.minutes }
func (m *Meditation) Remaining() time.Duration { return m.remaining }

// Select stops any countdown and loads a preset.
func (m *Meditation) Select(minutes int) error {
	if !domain.ValidPreset(minutes) {
		return apperrors.ErrInvalidInput
	}
	m.halt()
	m.paused = false
	m.minutes = minutes
	m.remaining = time.Duration(minutes) * time.Minute
	return nil
}

func (m *Meditation) Start() error {
	if m.running {
		return nil
	}
	if m.remaining <= 0 {
		return apperrors.ErrZeroDuration
	}
	m.paused = false
	m.running = true
	m.gen++
	gen := m.gen
	m.ticker = m.sched.Every(time.Second, func() {
		if gen != m.gen {
			return
		}
		m.tick()
	})
	return nil
}

func (m *Meditation) Pause() {
	if !m.running {
		return
	}
	m.halt()
	m.paused = true
}

func (m *Meditation) Resume() error {
	if !m.paused {
		return nil
	}
	return m.Start()
}

// Reset zeroes the countdown whatever state it is in.
func (m *Meditation) Reset() {
	m.halt()
	m.paused = false
	m.remaining = 0
}

func (m *Meditation) halt() {
	m.gen++
	if m.ticker != nil {
		m.ticker.Stop()
		m.ticker = nil
	}
	m.running = false
}

func (m *Meditation) tick() {
	m.remaining -= time.Second
	if m.remaining > 0 {
		m.emit(domain.Event{Activity: domain.Meditation, Kind: domain.Tick, Message: domain.FormatClock(m.remaining)})
		return
	}
	m.remaining = 0
	m.halt()
	m.emit(domain.Event{Activity: domain.Meditation, Kind: domain.Completed, Message: "Meditation complete", Count: m.minutes})
}
