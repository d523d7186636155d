package dto

import "time"

type BreathingView struct {
	Active bool
	Phase  string
	Prompt string
	Cycles int
}

type MeditationView struct {
	Running   bool
	Paused    bool
	Minutes   int
	Remaining time.Duration
	Display   string
}

type RelaxationView struct {
	Active      bool
	Highlighted int
	Title       string
	Instruction string
	Finishing   bool
	Message     string
	Steps       []string
}

type Snapshot struct {
	Breathing  BreathingView
	Meditation MeditationView
	Relaxation RelaxationView
}

type Event struct {
	Activity string
	Kind     string
	Message  string
	Count    int
}

type PracticeOutput struct {
	ID        string
	Kind      string
	StartedAt time.Time
	Duration  time.Duration
	Cycles    int
	Minutes   int
	Completed bool
	Path      string
}
