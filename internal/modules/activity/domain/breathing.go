package domain

import "time"

type BreathPhase int

const (
	Idle BreathPhase = iota
	Inhale
	Hold
	Exhale
	Pause
)

const IdlePrompt = "Select start to begin"

func (p BreathPhase) String() string {
	switch p {
	case Inhale:
		return "inhale"
	case Hold:
		return "hold"
	case Exhale:
		return "exhale"
	case Pause:
		return "pause"
	default:
		return "idle"
	}
}

func (p BreathPhase) Duration() time.Duration {
	switch p {
	case Inhale, Hold, Exhale:
		return 4 * time.Second
	case Pause:
		return 2 * time.Second
	default:
		return 0
	}
}

func (p BreathPhase) Prompt() string {
	switch p {
	case Inhale:
		return "Breathe in..."
	case Hold:
		return "Hold..."
	case Exhale:
		return "Breathe out..."
	case Pause:
		return "Pause..."
	default:
		return IdlePrompt
	}
}

// Next returns the phase that follows p in a running cycle.
func (p BreathPhase) Next() BreathPhase {
	switch p {
	case Inhale:
		return Hold
	case Hold:
		return Exhale
	case Exhale:
		return Pause
	default:
		return Inhale
	}
}

// CycleLength is one full Inhale, Hold, Exhale, Pause traversal.
func CycleLength() time.Duration {
	return Inhale.Duration() + Hold.Duration() + Exhale.Duration() + Pause.Duration()
}
