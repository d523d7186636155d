package domain

import "time"

const (
	StepHold      = 7 * time.Second
	FinishingHold = 5 * time.Second
	FinishMessage = "Well done. Notice how calm and loose your body feels."
)

type Step struct {
	Title       string
	Instruction string
}

var steps = []Step{
	{Title: "Feet", Instruction: "Curl your toes tightly for five seconds, then let them go."},
	{Title: "Legs", Instruction: "Tighten your calves and thighs, hold, then release."},
	{Title: "Abdomen", Instruction: "Draw your stomach in and hold the tension, then soften."},
	{Title: "Hands and arms", Instruction: "Make fists and tense your arms, then let them fall loose."},
	{Title: "Shoulders and neck", Instruction: "Lift your shoulders to your ears, hold, then drop them."},
	{Title: "Face", Instruction: "Scrunch your face, hold, then relax your jaw and forehead."},
}

func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

func StepCount() int { return len(steps) }
