// Package synth is a small procedural audio graph. A Context owns buses,
// each bus owns oscillators and filtered noise sources, and the Context
// renders the mix as interleaved float32 little-endian stereo frames so it
// can feed an oto player directly.
package synth

import (
	"io"
	"math"
	"sync"
)

const frameBytes = 8

// Per-node weights reported by ActiveNodes. A tone is an oscillator plus its
// gain stage; a noise band is a buffer source, a band-pass filter and a gain.
const (
	busNodes   = 1
	toneNodes  = 2
	noiseNodes = 3
)

type source interface {
	sample() float64
	stopped() bool
	weight() int
}

type Context struct {
	mu    sync.Mutex
	rate  float64
	seed  uint64
	buses []*Bus
}

var _ io.Reader = (*Context)(nil)

func NewContext(sampleRate int) *Context {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &Context{rate: float64(sampleRate), seed: 0x9e3779b97f4a7c15}
}

func (c *Context) SampleRate() int { return int(c.rate) }

// NewBus returns a connected bus at unity level.
func (c *Context) NewBus() *Bus {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := &Bus{ctx: c, level: 1, connected: true}
	c.buses = append(c.buses, b)
	return b
}

// ActiveNodes counts the live graph nodes across connected buses.
func (c *Context) ActiveNodes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, b := range c.buses {
		if !b.connected {
			continue
		}
		n += busNodes
		for _, s := range b.sources {
			if !s.stopped() {
				n += s.weight()
			}
		}
	}
	return n
}

// Read renders len(p)/8 stereo frames. It never returns io.EOF; an empty
// graph renders silence.
func (c *Context) Read(p []byte) (int, error) {
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune()
	for i := 0; i < frames; i++ {
		putStereoF32(p, i, c.next())
	}
	return frames * frameBytes, nil
}

// Render returns the next n mono samples of the mix.
func (c *Context) Render(n int) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune()
	out := make([]float64, n)
	for i := range out {
		out[i] = c.next()
	}
	return out
}

func (c *Context) next() float64 {
	mix := 0.0
	for _, b := range c.buses {
		if b.level == 0 {
			// keep oscillator phase moving so a muted bus resumes in place
			for _, s := range b.sources {
				s.sample()
			}
			continue
		}
		sum := 0.0
		for _, s := range b.sources {
			sum += s.sample()
		}
		mix += sum * b.level
	}
	return softSat(mix)
}

func (c *Context) prune() {
	live := c.buses[:0]
	for _, b := range c.buses {
		if !b.connected {
			continue
		}
		kept := b.sources[:0]
		for _, s := range b.sources {
			if !s.stopped() {
				kept = append(kept, s)
			}
		}
		b.sources = kept
		live = append(live, b)
	}
	for i := len(live); i < len(c.buses); i++ {
		c.buses[i] = nil
	}
	c.buses = live
}

func (c *Context) nextSeed() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seed = c.seed*6364136223846793005 + 1442695040888963407
	return c.seed
}

// Bus is a gain stage feeding the Context output.
type Bus struct {
	ctx       *Context
	level     float64
	connected bool
	sources   []source
}

func (b *Bus) SetLevel(level float64) {
	b.ctx.mu.Lock()
	defer b.ctx.mu.Unlock()
	b.level = clamp(level, 0, 1)
}

func (b *Bus) Level() float64 {
	b.ctx.mu.Lock()
	defer b.ctx.mu.Unlock()
	return b.level
}

// Disconnect detaches the bus and stops every source on it.
func (b *Bus) Disconnect() {
	b.ctx.mu.Lock()
	defer b.ctx.mu.Unlock()
	b.connected = false
	for _, s := range b.sources {
		switch v := s.(type) {
		case *Oscillator:
			v.done = true
		case *Noise:
			v.done = true
		}
	}
}

func (b *Bus) AddOscillator(freq float64, wave Waveform, gain float64) *Oscillator {
	b.ctx.mu.Lock()
	defer b.ctx.mu.Unlock()
	o := &Oscillator{ctx: b.ctx, freq: freq, wave: wave, gain: gain}
	if !b.connected {
		o.done = true
		return o
	}
	b.sources = append(b.sources, o)
	return o
}

// AddNoise fills the loop buffer before taking the graph lock so a render
// in progress is never held up by it.
func (b *Bus) AddNoise(low, high, gain float64) *Noise {
	n := newNoise(b.ctx, b.ctx.nextSeed(), low, high, gain)
	b.ctx.mu.Lock()
	defer b.ctx.mu.Unlock()
	if !b.connected {
		n.done = true
		return n
	}
	b.sources = append(b.sources, n)
	return n
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat bends peaks toward ±1 instead of clipping. The cubic reaches ±2/3
// at |x| = 1 and the tails continue from there.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 1.0/(3.0*x)
	}
	if x < -1.0 {
		return -1.0 + 1.0/(3.0*(-x))
	}
	return x - x*x*x/3.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
