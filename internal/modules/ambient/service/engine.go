package service

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"innertone/internal/modules/ambient/domain"
	ambientout "innertone/internal/modules/ambient/port/out"
	"innertone/internal/platform/sched"
)

// Engine owns the single active scene. It is not safe for concurrent use:
// every method and every timer callback runs on the scheduler thread.
type Engine struct {
	graph  ambientout.AudioGraph
	rnd    ambientout.Random
	sched  sched.Scheduler
	log    hclog.Logger
	volume int
	active *liveScene
}

func NewEngine(graph ambientout.AudioGraph, rnd ambientout.Random, s sched.Scheduler, log hclog.Logger, volume int) *Engine {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Engine{graph: graph, rnd: rnd, sched: s, log: log, volume: domain.ClampVolume(volume)}
}

type liveScene struct {
	id         domain.SceneID
	bus        ambientout.Bus
	nodes      []ambientout.Node
	voices     []ambientout.Voice
	periodic   []sched.Timer
	transients map[*transient]struct{}
}

type transient struct {
	node  ambientout.Node
	timer sched.Timer
}

func (l *liveScene) teardown() {
	for _, t := range l.periodic {
		t.Stop()
	}
	l.periodic = nil
	for tr := range l.transients {
		tr.timer.Stop()
		tr.node.Stop()
	}
	l.transients = map[*transient]struct{}{}
	for _, n := range l.nodes {
		n.Stop()
	}
	l.nodes = nil
	l.voices = nil
	l.bus.Disconnect()
}

// Start tears down the current scene and builds id on a fresh bus.
func (e *Engine) Start(id domain.SceneID) error {
	scene, err := domain.Lookup(id)
	if err != nil {
		return err
	}
	e.Stop()

	bus, err := e.graph.NewBus(domain.Gain(e.volume))
	if err != nil {
		return fmt.Errorf("open output bus: %w", err)
	}
	live := &liveScene{id: scene.ID, bus: bus, transients: map[*transient]struct{}{}}
	for _, g := range scene.Generators {
		switch g := g.(type) {
		case domain.Tone:
			v, err := e.graph.StartTone(bus, g)
			if err != nil {
				live.teardown()
				return fmt.Errorf("start %s tone: %w", scene.ID, err)
			}
			live.nodes = append(live.nodes, v)
			live.voices = append(live.voices, v)
		case domain.NoiseBand:
			n, err := e.graph.StartNoise(bus, g)
			if err != nil {
				live.teardown()
				return fmt.Errorf("start %s noise: %w", scene.ID, err)
			}
			live.nodes = append(live.nodes, n)
		}
	}
	for _, ev := range scene.Events {
		ev := ev
		live.periodic = append(live.periodic, e.sched.Every(ev.Period, func() { e.fire(live, ev) }))
	}
	e.active = live
	e.log.Debug("scene started", "scene", scene.ID, "volume", e.volume)
	return nil
}

// Stop silences the active scene. Calling it with nothing playing is a no-op.
func (e *Engine) Stop() {
	if e.active == nil {
		return
	}
	e.active.teardown()
	e.log.Debug("scene stopped", "scene", e.active.id)
	e.active = nil
}

// Toggle stops id when it is the active scene and starts it otherwise.
func (e *Engine) Toggle(id domain.SceneID) error {
	if e.active != nil && e.active.id == id {
		e.Stop()
		return nil
	}
	return e.Start(id)
}

func (e *Engine) SetVolume(percent int) {
	e.volume = domain.ClampVolume(percent)
	if e.active != nil {
		e.active.bus.SetLevel(domain.Gain(e.volume))
	}
}

func (e *Engine) Volume() int { return e.volume }

// Active reports the playing scene.
func (e *Engine) Active() (domain.SceneID, bool) {
	if e.active == nil {
		return "", false
	}
	return e.active.id, true
}

func (e *Engine) ActiveNodes() int { return e.graph.ActiveNodes() }

// Timers counts the periodic and transient-stop timers owned by the scene.
func (e *Engine) Timers() int {
	if e.active == nil {
		return 0
	}
	return len(e.active.periodic) + len(e.active.transients)
}

func (e *Engine) fire(live *liveScene, ev domain.Event) {
	if e.active != live {
		return
	}
	if e.rnd.Float64() >= ev.Probability {
		return
	}
	switch fx := ev.Effect.(type) {
	case domain.ToneBurst:
		freq := between(e.rnd, fx.FreqMin, fx.FreqMax)
		dur := fx.DurMin
		if fx.DurMax > fx.DurMin {
			dur += time.Duration(e.rnd.Float64() * float64(fx.DurMax-fx.DurMin))
		}
		v, err := e.graph.StartTone(live.bus, domain.Tone{Freq: freq, Waveform: domain.Sine, Gain: fx.Gain})
		if err != nil {
			e.log.Warn("tone burst failed", "scene", live.id, "error", err)
			return
		}
		e.hold(live, v, dur)
	case domain.NoiseBurst:
		n, err := e.graph.StartNoise(live.bus, domain.NoiseBand{Low: fx.Low, High: fx.High, Gain: fx.Gain})
		if err != nil {
			e.log.Warn("noise burst failed", "scene", live.id, "error", err)
			return
		}
		e.hold(live, n, fx.Dur)
	case domain.Retune:
		for i, r := range fx.Voices {
			if i >= len(live.voices) {
				break
			}
			live.voices[i].SetFrequency(between(e.rnd, r.Min, r.Max))
		}
	}
}

// hold keeps node playing for d and stops it afterwards unless the scene was
// torn down first.
func (e *Engine) hold(live *liveScene, node ambientout.Node, d time.Duration) {
	tr := &transient{node: node}
	live.transients[tr] = struct{}{}
	tr.timer = e.sched.AfterFunc(d, func() {
		if _, ok := live.transients[tr]; !ok {
			return
		}
		delete(live.transients, tr)
		node.Stop()
	})
}

func between(rnd ambientout.Random, lo, hi float64) float64 {
	return lo + rnd.Float64()*(hi-lo)
}
