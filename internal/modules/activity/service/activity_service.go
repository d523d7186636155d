package service

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"innertone/internal/modules/activity/domain"
	activityout "innertone/internal/modules/activity/port/out"
	"innertone/internal/platform/clock"
	apperrors "innertone/internal/platform/errors"
	"innertone/internal/platform/id"
	"innertone/internal/platform/sched"
)

// ActivityService owns the three guided activity machines, records finished
// runs in the practice log and fans machine events out to listeners. Like the
// machines it must only be used from the scheduler thread.
type ActivityService struct {
	clock      clock.Clock
	idGen      id.Generator
	store      activityout.PracticeLog
	log        hclog.Logger
	breathing  *Breathing
	meditation *Meditation
	relaxation *Relaxation
	started    map[domain.Kind]time.Time
	listeners  map[int]func(domain.Event)
	nextID     int
}

func NewActivityService(s sched.Scheduler, clock clock.Clock, idGen id.Generator, store activityout.PracticeLog, log hclog.Logger) *ActivityService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	svc := &ActivityService{
		clock:     clock,
		idGen:     idGen,
		store:     store,
		log:       log,
		started:   map[domain.Kind]time.Time{},
		listeners: map[int]func(domain.Event){},
	}
	svc.breathing = NewBreathing(s, svc.dispatch)
	svc.meditation = NewMeditation(s, svc.dispatch)
	svc.relaxation = NewRelaxation(s, svc.dispatch)
	return svc
}

func (s *ActivityService) Breathing() *Breathing   { return s.breathing }
func (s *ActivityService) Meditation() *Meditation { return s.meditation }
func (s *ActivityService) Relaxation() *Relaxation { return s.relaxation }

func (s *ActivityService) StartBreathing() {
	if !s.breathing.Active() {
		s.started[domain.Breathing] = s.clock.Now()
	}
	s.breathing.Start()
}

// StopBreathing ends the run and logs it when at least one cycle finished.
func (s *ActivityService) StopBreathing() {
	cycles := s.breathing.Stop()
	if cycles > 0 {
		s.record(domain.Practice{Kind: domain.Breathing, Cycles: cycles, Completed: true})
	}
}

func (s *ActivityService) ToggleBreathing() {
	if s.breathing.Active() {
		s.StopBreathing()
		return
	}
	s.StartBreathing()
}

func (s *ActivityService) StartMeditation() error {
	fresh := !s.meditation.Running() && !s.meditation.Paused()
	if err := s.meditation.Start(); err != nil {
		return err
	}
	if fresh {
		s.started[domain.Meditation] = s.clock.Now()
	}
	return nil
}

// SelectMeditation loads a preset. A countdown already under way is logged
// as ended early before it is replaced.
func (s *ActivityService) SelectMeditation(minutes int) error {
	if !domain.ValidPreset(minutes) {
		return apperrors.ErrInvalidInput
	}
	s.endMeditationEarly()
	return s.meditation.Select(minutes)
}

func (s *ActivityService) ResetMeditation() {
	s.endMeditationEarly()
	s.meditation.Reset()
}

func (s *ActivityService) endMeditationEarly() {
	if !s.meditation.Running() && !s.meditation.Paused() {
		return
	}
	s.record(domain.Practice{Kind: domain.Meditation, Minutes: s.meditation.Minutes()})
}

func (s *ActivityService) StartRelaxation() {
	s.started[domain.Relaxation] = s.clock.Now()
	s.relaxation.Start()
}

// StopRelaxation ends a walkthrough before its closing pause finishes and
// logs it as stopped.
func (s *ActivityService) StopRelaxation() {
	if !s.relaxation.Active() {
		return
	}
	s.relaxation.Stop()
	s.record(domain.Practice{Kind: domain.Relaxation})
}

// StopGuided stops the breathing and relaxation animations. The meditation
// countdown keeps running.
func (s *ActivityService) StopGuided() {
	s.StopBreathing()
	s.StopRelaxation()
}

func (s *ActivityService) Subscribe(fn func(domain.Event)) int {
	s.nextID++
	s.listeners[s.nextID] = fn
	return s.nextID
}

func (s *ActivityService) Unsubscribe(id int) {
	delete(s.listeners, id)
}

func (s *ActivityService) History(ctx context.Context, limit int) ([]domain.Practice, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.Recent(ctx, limit)
}

func (s *ActivityService) dispatch(ev domain.Event) {
	if ev.Kind == domain.Completed {
		switch ev.Activity {
		case domain.Meditation:
			s.record(domain.Practice{Kind: domain.Meditation, Minutes: ev.Count, Completed: true})
		case domain.Relaxation:
			s.record(domain.Practice{Kind: domain.Relaxation, Completed: true})
		}
	}
	for _, fn := range s.listeners {
		fn(ev)
	}
}

func (s *ActivityService) record(p domain.Practice) {
	now := s.clock.Now()
	p.EndedAt = now
	p.StartedAt = s.started[p.Kind]
	if p.StartedAt.IsZero() {
		p.StartedAt = now
	}
	delete(s.started, p.Kind)
	if s.store == nil {
		return
	}
	p.ID = s.idGen.New()
	path, err := s.store.Save(context.Background(), p)
	if err != nil {
		s.log.Warn("practice log write failed", "kind", p.Kind, "error", err)
		return
	}
	s.log.Info("practice recorded", "kind", p.Kind, "path", path)
}
