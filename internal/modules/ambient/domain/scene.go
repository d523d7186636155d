package domain

import (
	"fmt"
	"time"

	apperrors "innertone/internal/platform/errors"
)

type SceneID string

const (
	Forest SceneID = "forest"
	Ocean  SceneID = "ocean"
	Rain   SceneID = "rain"
	Birds  SceneID = "birds"
)

type Waveform string

const (
	Sine     Waveform = "sine"
	Square   Waveform = "square"
	Triangle Waveform = "triangle"
	Sawtooth Waveform = "sawtooth"
)

// Generator is a continuous sound source started with the scene and stopped
// with it.
type Generator interface {
	generator()
}

type Tone struct {
	Freq     float64
	Waveform Waveform
	Gain     float64
}

type NoiseBand struct {
	Low  float64
	High float64
	Gain float64
}

func (Tone) generator()      {}
func (NoiseBand) generator() {}

// Effect is what a periodic Event does when its probability check passes.
type Effect interface {
	effect()
}

// ToneBurst plays a short sine at a random frequency in [FreqMin, FreqMax).
// The duration is drawn from [DurMin, DurMax) when DurMax > DurMin.
type ToneBurst struct {
	FreqMin float64
	FreqMax float64
	Gain    float64
	DurMin  time.Duration
	DurMax  time.Duration
}

type NoiseBurst struct {
	Low  float64
	High float64
	Gain float64
	Dur  time.Duration
}

// Retune re-randomises the scene's continuous tones. Voices[i] applies to the
// i-th Tone generator in declaration order.
type Retune struct {
	Voices []VoiceRange
}

type VoiceRange struct {
	Min float64
	Max float64
}

func (ToneBurst) effect()  {}
func (NoiseBurst) effect() {}
func (Retune) effect()     {}

type Event struct {
	Period      time.Duration
	Probability float64
	Effect      Effect
}

type Scene struct {
	ID          SceneID
	Label       string
	Description string
	Generators  []Generator
	Events      []Event
}

var scenes = []Scene{
	{
		ID:          Forest,
		Label:       "Forest",
		Description: "Rustling leaves over a low hum, with the odd bird call",
		Generators: []Generator{
			NoiseBand{Low: 50, High: 200, Gain: 0.15},
			NoiseBand{Low: 500, High: 2000, Gain: 0.2},
			Tone{Freq: 80, Waveform: Sine, Gain: 0.1},
		},
		Events: []Event{{
			Period:      2 * time.Second,
			Probability: 0.3,
			Effect:      ToneBurst{FreqMin: 800, FreqMax: 1200, Gain: 0.15, DurMin: 300 * time.Millisecond, DurMax: 300 * time.Millisecond},
		}},
	},
	{
		ID:          Ocean,
		Label:       "Ocean",
		Description: "Deep swell with waves breaking every few seconds",
		Generators: []Generator{
			Tone{Freq: 40, Waveform: Sine, Gain: 0.3},
			NoiseBand{Low: 100, High: 800, Gain: 0.25},
			Tone{Freq: 60, Waveform: Sine, Gain: 0.2},
		},
		Events: []Event{{
			Period:      4 * time.Second,
			Probability: 1,
			Effect:      NoiseBurst{Low: 200, High: 3000, Gain: 0.4, Dur: 800 * time.Millisecond},
		}},
	},
	{
		ID:          Rain,
		Label:       "Rain",
		Description: "Steady rainfall in three layers",
		Generators: []Generator{
			NoiseBand{Low: 1000, High: 4000, Gain: 0.3},
			NoiseBand{Low: 2000, High: 8000, Gain: 0.2},
			NoiseBand{Low: 5000, High: 12000, Gain: 0.15},
		},
	},
	{
		ID:          Birds,
		Label:       "Birds",
		Description: "Three wandering songbird voices and occasional chirps",
		Generators: []Generator{
			Tone{Freq: 1200, Waveform: Sine, Gain: 0.2},
			Tone{Freq: 1500, Waveform: Sine, Gain: 0.15},
			Tone{Freq: 1800, Waveform: Sine, Gain: 0.18},
		},
		Events: []Event{
			{
				Period:      500 * time.Millisecond,
				Probability: 1,
				Effect: Retune{Voices: []VoiceRange{
					{Min: 1000, Max: 1600},
					{Min: 1300, Max: 1800},
					{Min: 1600, Max: 2000},
				}},
			},
			{
				Period:      1500 * time.Millisecond,
				Probability: 0.5,
				Effect:      ToneBurst{FreqMin: 2000, FreqMax: 3000, Gain: 0.25, DurMin: 200 * time.Millisecond, DurMax: 500 * time.Millisecond},
			},
		},
	},
}

// Scenes returns the built-in scenes in display order.
func Scenes() []Scene {
	out := make([]Scene, len(scenes))
	copy(out, scenes)
	return out
}

func Lookup(id SceneID) (Scene, error) {
	for _, s := range scenes {
		if s.ID == id {
			return s, nil
		}
	}
	return Scene{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownScene, id)
}

// ClampVolume bounds a volume percent to 0..100.
func ClampVolume(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

func Gain(percent int) float64 {
	return float64(ClampVolume(percent)) / 100
}
