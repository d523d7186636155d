package synth

import "math"

const noiseSeconds = 2

// Noise loops a white-noise buffer through a band-pass filter centred on the
// middle of its band.
type Noise struct {
	ctx    *Context
	buf    []float64
	pos    int
	gain   float64
	filter biquad
	done   bool
}

// newNoise reads only the immutable sample rate of c and may run without
// holding c.mu.
func newNoise(c *Context, seed uint64, low, high, gain float64) *Noise {
	buf := make([]float64, int(c.rate)*noiseSeconds)
	for i := range buf {
		buf[i] = lcg(&seed)
	}
	return &Noise{
		ctx:    c,
		buf:    buf,
		gain:   gain,
		filter: bandPass(c.rate, (low+high)/2, 1),
	}
}

func (n *Noise) Stop() {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	n.done = true
}

func (n *Noise) stopped() bool { return n.done }
func (n *Noise) weight() int   { return noiseNodes }

func (n *Noise) sample() float64 {
	if n.done {
		return 0
	}
	x := n.buf[n.pos]
	n.pos++
	if n.pos == len(n.buf) {
		n.pos = 0
	}
	return n.filter.process(x) * n.gain
}

// lcg advances seed and returns a sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// biquad is a direct form I second-order section with normalised
// coefficients.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	x1, x2     float64
	y1, y2     float64
}

// bandPass builds a constant 0 dB peak gain band-pass section.
func bandPass(rate, centre, q float64) biquad {
	nyquist := rate / 2
	if centre <= 0 {
		centre = 1
	}
	if centre >= nyquist {
		centre = nyquist * 0.99
	}
	w0 := 2 * math.Pi * centre / rate
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha
	return biquad{
		b0: alpha / a0,
		b1: 0,
		b2: -alpha / a0,
		a1: -2 * math.Cos(w0) / a0,
		a2: (1 - alpha) / a0,
	}
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}
