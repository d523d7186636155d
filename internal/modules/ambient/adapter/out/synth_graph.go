package out

import (
	"fmt"

	"innertone/internal/modules/ambient/domain"
	ambientout "innertone/internal/modules/ambient/port/out"
	"innertone/internal/platform/synth"
)

// SynthGraph builds scenes on a synth.Context. On its own nothing reads the
// context, so it doubles as the silent graph for muted and headless runs.
type SynthGraph struct {
	ctx *synth.Context
}

func NewSilentGraph(sampleRate int) *SynthGraph {
	return &SynthGraph{ctx: synth.NewContext(sampleRate)}
}

func (g *SynthGraph) Context() *synth.Context { return g.ctx }

func (g *SynthGraph) NewBus(level float64) (ambientout.Bus, error) {
	bus := g.ctx.NewBus()
	bus.SetLevel(level)
	return bus, nil
}

func (g *SynthGraph) StartTone(bus ambientout.Bus, tone domain.Tone) (ambientout.Voice, error) {
	b, err := g.own(bus)
	if err != nil {
		return nil, err
	}
	wave, err := synth.ParseWaveform(string(tone.Waveform))
	if err != nil {
		return nil, err
	}
	return b.AddOscillator(tone.Freq, wave, tone.Gain), nil
}

func (g *SynthGraph) StartNoise(bus ambientout.Bus, band domain.NoiseBand) (ambientout.Node, error) {
	b, err := g.own(bus)
	if err != nil {
		return nil, err
	}
	return b.AddNoise(band.Low, band.High, band.Gain), nil
}

func (g *SynthGraph) ActiveNodes() int { return g.ctx.ActiveNodes() }

func (g *SynthGraph) own(bus ambientout.Bus) (*synth.Bus, error) {
	b, ok := bus.(*synth.Bus)
	if !ok {
		return nil, fmt.Errorf("bus %T does not belong to this graph", bus)
	}
	return b, nil
}
