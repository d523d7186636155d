package out_test

import (
	"testing"
	"time"

	ambientout "innertone/internal/modules/ambient/adapter/out"
	"innertone/internal/modules/ambient/domain"
	"innertone/internal/modules/ambient/service"
	"innertone/internal/platform/sched"
)

func TestSynthGraphCountsSceneNodes(t *testing.T) {
	t.Parallel()
	graph := ambientout.NewSilentGraph(8000)
	clock := sched.NewFake(time.Unix(0, 0))
	engine := service.NewEngine(graph, ambientout.MathRandom{}, clock, nil, 40)

	if err := engine.Start(domain.Forest); err != nil {
		t.Fatalf("start forest: %v", err)
	}
	// bus + two noise bands (3 nodes each) + one tone (2 nodes)
	if got := graph.ActiveNodes(); got != 9 {
		t.Fatalf("expected 9 live nodes, got %d", got)
	}
	samples := graph.Context().Render(2000)
	loud := false
	for _, s := range samples {
		if s != 0 {
			loud = true
			break
		}
	}
	if !loud {
		t.Fatalf("forest rendered silence")
	}
	engine.Stop()
	if got := graph.ActiveNodes(); got != 0 {
		t.Fatalf("expected no live nodes after stop, got %d", got)
	}
}

func TestSynthGraphRejectsForeignBus(t *testing.T) {
	t.Parallel()
	graph := ambientout.NewSilentGraph(8000)
	if _, err := graph.StartTone(foreignBus{}, domain.Tone{Freq: 440, Waveform: domain.Sine, Gain: 0.1}); err == nil {
		t.Fatalf("expected error for a foreign bus type")
	}
	bus, err := graph.NewBus(1)
	if err != nil {
		t.Fatalf("new bus: %v", err)
	}
	if _, err := graph.StartTone(bus, domain.Tone{Freq: 440, Waveform: "organ", Gain: 0.1}); err == nil {
		t.Fatalf("expected error for an unknown waveform")
	}
}

type foreignBus struct{}

func (foreignBus) SetLevel(float64) {}
func (foreignBus) Disconnect()      {}
