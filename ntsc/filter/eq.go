package filter

import "github.com/cwbudde/algo-ntsc/ntsc/fixed"

// Gain scale of the equalizer bands. A band gain of Unity passes the band
// unchanged.
const (
	eqShift = 16
	eqRound = 1 << (eqShift - 1)

	Unity = 1 << eqShift
)

const histLen = 3

// stageShift is internal headroom on the cascade state so that small pole
// coefficients keep resolving near the settled value.
const stageShift = 8

// EqualizerKind selects an equalizer implementation at construction time.
type EqualizerKind int

const (
	// EqCascade is the cascade-of-one-pole three-band equalizer.
	EqCascade EqualizerKind = iota
	// EqFIR is the short symmetric FIR kernel. Faster and softer; band
	// gains are ignored.
	EqFIR
)

// Equalizer separates a composite sample stream into low/mid/high bands,
// scales each band, and recombines them. Implementations are stateful and
// must be Reset at the start of every scan line.
type Equalizer interface {
	// Init configures the band edges (low and high cutoff, in the same
	// frequency unit as rate) and the per-band gains (Unity scale).
	Init(loFreq, hiFreq, rate, gainLo, gainMid, gainHi int)
	// Reset clears filter state without touching the configuration.
	Reset()
	// Apply filters one sample.
	Apply(sample int) int
}

// NewEqualizer returns a zero-state equalizer of the requested kind.
func NewEqualizer(kind EqualizerKind) Equalizer {
	if kind == EqFIR {
		return &FIREqualizer{}
	}
	return &CascadeEqualizer{}
}

// CascadeEqualizer is a three-band equalizer built from two four-stage
// cascades of one-pole sections. The low band is the output of the low
// cascade, the mid band is the high cascade minus the low cascade, and the
// high band is the oldest entry of a three-sample raw history minus the
// high cascade (compensating the cascade group delay).
type CascadeEqualizer struct {
	lf, hf int          // band edge coefficients, eqShift scale
	g      [3]int       // band gains: low, mid, high
	fL, fH [4]int       // cascade stages
	h      [histLen]int // raw input history, newest first
}

// Init derives the band-split coefficients from the edge frequencies and
// stores the band gains. State is cleared.
func (e *CascadeEqualizer) Init(loFreq, hiFreq, rate, gainLo, gainMid, gainHi int) {
	*e = CascadeEqualizer{}
	e.g = [3]int{gainLo, gainMid, gainHi}
	if rate <= 0 {
		return
	}
	// 4*sin(pi*f/rate) approximates the one-pole coefficient at low
	// frequencies and saturates at Unity toward Nyquist.
	sn, _ := fixed.SinCos14(fixed.Pi * loFreq / rate)
	e.lf = clampCoeff(sn << 2)
	sn, _ = fixed.SinCos14(fixed.Pi * hiFreq / rate)
	e.hf = clampCoeff(sn << 2)
}

// Reset clears the cascades and the history. Coefficients and gains are
// kept.
func (e *CascadeEqualizer) Reset() {
	e.fL = [4]int{}
	e.fH = [4]int{}
	e.h = [histLen]int{}
}

// Apply filters one sample. The cascades run at stageShift extra precision;
// with all gains at Unity the band sum telescopes back to the delayed input
// exactly.
func (e *CascadeEqualizer) Apply(s int) int {
	x := s << stageShift
	e.fL[0] += (e.lf*(x-e.fL[0]) + eqRound) >> eqShift
	e.fH[0] += (e.hf*(x-e.fH[0]) + eqRound) >> eqShift
	for i := 1; i < 4; i++ {
		e.fL[i] += (e.lf*(e.fL[i-1]-e.fL[i]) + eqRound) >> eqShift
		e.fH[i] += (e.hf*(e.fH[i-1]-e.fH[i]) + eqRound) >> eqShift
	}

	lo := e.fL[3]
	mid := e.fH[3] - e.fL[3]
	hi := e.h[histLen-1] - e.fH[3]

	copy(e.h[1:], e.h[:histLen-1])
	e.h[0] = x

	out := lo*e.g[0]>>eqShift + mid*e.g[1]>>eqShift + hi*e.g[2]>>eqShift
	return (out + 1<<(stageShift-1)) >> stageShift
}

func clampCoeff(c int) int {
	if c < 0 {
		return 0
	}
	if c > Unity {
		return Unity
	}
	return c
}
