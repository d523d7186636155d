package synth

import (
	"fmt"
	"math"
)

type Waveform int

const (
	Sine Waveform = iota
	Square
	Triangle
	Sawtooth
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	case Sawtooth:
		return "sawtooth"
	default:
		return fmt.Sprintf("waveform(%d)", int(w))
	}
}

func ParseWaveform(name string) (Waveform, error) {
	switch name {
	case "", "sine":
		return Sine, nil
	case "square":
		return Square, nil
	case "triangle":
		return Triangle, nil
	case "sawtooth", "saw":
		return Sawtooth, nil
	}
	return Sine, fmt.Errorf("unknown waveform %q", name)
}

// Oscillator is a periodic tone source. Phase is kept in cycles [0,1).
type Oscillator struct {
	ctx   *Context
	freq  float64
	gain  float64
	wave  Waveform
	phase float64
	done  bool
}

func (o *Oscillator) SetFrequency(freq float64) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	o.freq = freq
}

func (o *Oscillator) Frequency() float64 {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	return o.freq
}

func (o *Oscillator) Stop() {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	o.done = true
}

func (o *Oscillator) stopped() bool { return o.done }
func (o *Oscillator) weight() int   { return toneNodes }

func (o *Oscillator) sample() float64 {
	if o.done {
		return 0
	}
	v := wave(o.wave, o.phase) * o.gain
	o.phase += o.freq / o.ctx.rate
	o.phase -= math.Floor(o.phase)
	return v
}

func wave(w Waveform, phase float64) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		return 1 - 4*math.Abs(phase-0.5)
	case Sawtooth:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
