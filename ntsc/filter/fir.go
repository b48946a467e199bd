package filter

// firKernel is the symmetric smoothing kernel of the FIR equalizer.
// The weights sum to 32, normalized by firShift.
var firKernel = [7]int{1, 4, 7, 8, 7, 4, 1}

const firShift = 5

// FIREqualizer applies a short symmetric FIR kernel instead of the band
// cascade. It satisfies the [Equalizer] contract but ignores band edges and
// gains: the response is fixed, faster, and softer than [CascadeEqualizer].
type FIREqualizer struct {
	h [len(firKernel)]int // delay line, newest first
}

// Init clears state. The band parameters are accepted for interface
// compatibility and ignored.
func (e *FIREqualizer) Init(loFreq, hiFreq, rate, gainLo, gainMid, gainHi int) {
	*e = FIREqualizer{}
}

// Reset clears the delay line.
func (e *FIREqualizer) Reset() {
	e.h = [len(firKernel)]int{}
}

// Apply filters one sample.
func (e *FIREqualizer) Apply(s int) int {
	copy(e.h[1:], e.h[:len(firKernel)-1])
	e.h[0] = s

	acc := 0
	for i, k := range firKernel {
		acc += e.h[i] * k
	}
	return acc >> firShift
}
