package out

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/oto/v2"

	ambientout "innertone/internal/modules/ambient/port/out"
)

const channelCount = 2

// OtoGraph plays the synth graph on the default sound card. The device is
// opened on the first bus so commands that never play a scene never touch
// the audio stack.
type OtoGraph struct {
	*SynthGraph

	mu     sync.Mutex
	otoCtx *oto.Context
	player oto.Player
}

func NewOtoGraph(sampleRate int) *OtoGraph {
	return &OtoGraph{SynthGraph: NewSilentGraph(sampleRate)}
}

func (g *OtoGraph) NewBus(level float64) (ambientout.Bus, error) {
	if err := g.open(); err != nil {
		return nil, err
	}
	return g.SynthGraph.NewBus(level)
}

func (g *OtoGraph) open() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.player != nil {
		return nil
	}
	if g.otoCtx == nil {
		ctx, ready, err := oto.NewContext(g.ctx.SampleRate(), channelCount, oto.FormatFloat32LE)
		if err != nil {
			return fmt.Errorf("open audio device: %w", err)
		}
		<-ready
		g.otoCtx = ctx
	}
	g.player = g.otoCtx.NewPlayer(g.ctx)
	g.player.SetVolume(1)
	g.player.Play()
	return nil
}

// Close releases the player. The oto context itself lives for the process.
func (g *OtoGraph) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.player == nil {
		return nil
	}
	err := g.player.Close()
	g.player = nil
	return err
}
