package domain

import "time"

const SchemaVersion = 1

type Kind string

const (
	Breathing  Kind = "breathing"
	Meditation Kind = "meditation"
	Relaxation Kind = "relaxation"
)

// Practice is one finished activity run as recorded in the practice log.
type Practice struct {
	ID        string
	Kind      Kind
	StartedAt time.Time
	EndedAt   time.Time
	Cycles    int
	Minutes   int
	Completed bool
}

func (p Practice) Duration() time.Duration {
	if p.EndedAt.Before(p.StartedAt) {
		return 0
	}
	return p.EndedAt.Sub(p.StartedAt)
}

type EventKind string

const (
	PhaseChanged EventKind = "phase"
	CycleDone    EventKind = "cycle"
	Tick         EventKind = "tick"
	StepChanged  EventKind = "step"
	Finishing    EventKind = "finishing"
	Completed    EventKind = "completed"
	Stopped      EventKind = "stopped"
)

// Event is emitted on the scheduler thread whenever a machine changes state.
type Event struct {
	Activity Kind
	Kind     EventKind
	Message  string
	Count    int
}
