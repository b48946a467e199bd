package ntsc

import (
	"github.com/cwbudde/algo-ntsc/internal/rng"
	"github.com/cwbudde/algo-ntsc/ntsc/filter"
)

// Encode-side bandlimiting cutoffs in Hz.
const (
	cutoffY = 4200000
	cutoffI = 1500000
	cutoffQ = 550000
)

// CRT emulates the full composite signal path: one instance owns the analog
// field buffer, the color-burst accumulator, and the sync flywheel. A CRT is
// not safe for concurrent use; callers serialize frames.
type CRT struct {
	cfg Config
	t   Timing
	src FieldSource

	analog []int8
	noisy  []int8

	// Color-burst accumulator, one row per vertical-period slot. The only
	// chroma state carried across frames.
	ccf  [][subSamples]int
	vper int

	hsync int
	vsync int
	field int // encode field parity
	frame int
	dpar  int // decoded field parity, recovered from the vsync interval

	rnd rng.LCG
	jit rng.XorWow

	out []byte

	lowY, lowI, lowQ filter.LowPass
	eqY, eqI, eqQ    filter.Equalizer

	lineY, lineI, lineQ []int

	prevE int // filtered beam energy for bloom
	abJit int // per-field aberration jitter
}

// New constructs a CRT from options applied to DefaultConfig. The output
// buffer must still be registered with SetOutput before processing.
func New(opts ...Option) *CRT {
	c := &CRT{}
	c.cfg = ApplyOptions(opts...)
	c.src = StandardSource{}
	c.reconfigure()
	c.Reset()
	return c
}

// SetOutput registers the buffer decoded frames are written into. It must
// hold at least Width*Height*BytesPerPixel(OutFormat) bytes.
func (c *CRT) SetOutput(buf []byte) {
	c.out = buf
}

// SetSource replaces the modulation strategy. The accumulator is resized
// when the source's vertical period differs.
func (c *CRT) SetSource(src FieldSource) {
	if src == nil {
		return
	}
	c.src = src
	if vp := src.VerticalPeriod(); vp != c.vper {
		c.vper = vp
		c.ccf = make([][subSamples]int, vp)
	}
}

// Config returns a copy of the active configuration.
func (c *CRT) Config() Config {
	return c.cfg
}

// Timing returns the active timing table.
func (c *CRT) Timing() Timing {
	return c.t
}

// Line returns the samples of scan line n of the most recently modulated
// field. The slice aliases internal storage; treat it as read-only.
func (c *CRT) Line(n int) []int8 {
	spl := c.t.SamplesPerLine
	n = posmod(n, c.t.Lines)
	return c.analog[n*spl : (n+1)*spl]
}

// FieldSamples returns the whole analog field buffer, line-major. The slice
// aliases internal storage; treat it as read-only.
func (c *CRT) FieldSamples() []int8 {
	return c.analog
}

// Update applies options to the current configuration and rebuilds
// timing-derived state where needed. Call only between frames.
func (c *CRT) Update(opts ...Option) {
	prev := c.cfg
	for _, opt := range opts {
		if opt != nil {
			opt(&c.cfg)
		}
	}
	if c.cfg.NoiseSeed != prev.NoiseSeed {
		c.rnd.Seed(c.cfg.NoiseSeed)
		c.jit = rng.NewXorWow(c.cfg.NoiseSeed)
	}
	if c.cfg.Pattern != prev.Pattern {
		c.reconfigure()
		return
	}
	if c.cfg.EqKind != prev.EqKind {
		c.buildEqualizers()
	}
	c.initFilters()
}

// Reset restores the power-on state: accumulator cleared, sync flywheel at
// its nominal position, parities zeroed, noise streams reseeded. The
// configuration is untouched.
func (c *CRT) Reset() {
	for i := range c.ccf {
		c.ccf[i] = [subSamples]int{}
	}
	c.hsync = 0
	c.vsync = vsyncLineBase
	c.field = 0
	c.frame = 0
	c.dpar = 0
	c.prevE = 0
	c.abJit = 0
	c.rnd.Seed(c.cfg.NoiseSeed)
	c.jit = rng.NewXorWow(c.cfg.NoiseSeed)
	c.initFilters()
}

// reconfigure derives the timing table and reallocates every buffer sized
// by it. Runs synchronously; never during a frame.
func (c *CRT) reconfigure() {
	c.t = TimingFor(c.cfg.Pattern)
	n := c.t.Lines * c.t.SamplesPerLine
	c.analog = make([]int8, n)
	c.noisy = make([]int8, n)
	if c.src == nil {
		c.src = StandardSource{}
	}
	c.vper = c.src.VerticalPeriod()
	c.ccf = make([][subSamples]int, c.vper)
	c.lineY = make([]int, c.t.AVLen)
	c.lineI = make([]int, c.t.AVLen)
	c.lineQ = make([]int, c.t.AVLen)
	c.buildEqualizers()
	c.initFilters()
}

func (c *CRT) buildEqualizers() {
	c.eqY = filter.NewEqualizer(c.cfg.EqKind)
	c.eqI = filter.NewEqualizer(c.cfg.EqKind)
	c.eqQ = filter.NewEqualizer(c.cfg.EqKind)
	c.initFilters()
}

func (c *CRT) initFilters() {
	spl := c.t.SamplesPerLine
	rate := c.t.SampleHz
	c.lowY.Init(rate, cutoffY)
	c.lowI.Init(rate, cutoffI)
	c.lowQ.Init(rate, cutoffQ)
	// Luma keeps its full low band but sheds most of the subcarrier ripple;
	// chroma passes the demodulated baseband only. The chroma high edge must
	// stay well below a quarter of the line rate, where the luma-times-wave
	// product ripple sits.
	c.eqY.Init(16, 265, spl, filter.Unity, 8192, 4096)
	c.eqI.Init(50, 100, spl, filter.Unity, 8192, 0)
	c.eqQ.Init(50, 100, spl, filter.Unity, 8192, 0)
}

// ProcessFrame modulates and demodulates one frame: a single pass in
// progressive mode, an interlaced field pair otherwise. The decoded frame
// lands in the buffer registered with SetOutput.
func (c *CRT) ProcessFrame(input []byte) error {
	if !c.cfg.InFormat.valid() || !c.cfg.OutFormat.valid() {
		return ErrUnsupportedFormat
	}
	if input == nil || c.out == nil || c.cfg.Width <= 0 || c.cfg.Height <= 0 {
		return ErrNotReady
	}
	if len(c.out) < c.cfg.Width*c.cfg.Height*c.cfg.OutFormat.BytesPerPixel() {
		return ErrNotReady
	}
	passes := 2
	if c.cfg.Progressive {
		passes = 1
		c.field = 0
	}
	for p := 0; p < passes; p++ {
		if err := c.ModulateField(input); err != nil {
			return err
		}
		c.demodulateField()
		if !c.cfg.Progressive {
			c.field ^= 1
		}
	}
	c.frame ^= 1
	return nil
}

// ModulateField encodes one field of the input frame into the analog
// buffer without decoding it. ProcessFrame uses it internally; tools use it
// to inspect the raw waveform.
func (c *CRT) ModulateField(input []byte) error {
	if !c.cfg.InFormat.valid() {
		return ErrUnsupportedFormat
	}
	if input == nil {
		return ErrNotReady
	}
	return c.src.Modulate(c, input)
}

// shr is an arithmetic right shift with round-to-nearest. The truncating
// shift maps equal positive and negative amplitudes to different magnitudes,
// which would put a standing offset on any table built from it.
func shr(v, n int) int {
	return (v + 1<<(n-1)) >> n
}

func posmod(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

func clampSample(v int) int8 {
	if v < sampleMin {
		return sampleMin
	}
	if v > sampleMax {
		return sampleMax
	}
	return int8(v)
}

func clamp255(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
