package filter

import "github.com/cwbudde/algo-ntsc/ntsc/fixed"

// LowPass is a one-pole fixed-point low-pass filter.
//
//	h += (s - h) * c >> fixed.ExpShift
//
// The pole coefficient c is derived from the sampling rate and cutoff
// frequency at Init time. The zero value is a disabled filter.
type LowPass struct {
	c int // pole coefficient, scaled by fixed.One
	h int // accumulator
}

// Init derives the pole from rate and cutoff (both in the same frequency
// unit) and clears the accumulator. A non-positive cutoff or rate disables
// the filter entirely: Apply always returns 0. A cutoff beyond the
// representable range degrades to identity rather than dividing by zero.
func (f *LowPass) Init(rate, cutoff int) {
	f.h = 0
	if rate <= 0 || cutoff <= 0 {
		f.c = 0
		return
	}
	r := (rate << 9) / cutoff
	if r <= 0 {
		f.c = fixed.One
		return
	}
	f.c = fixed.One - fixed.Exp(-((fixed.PiFixed << 9) / r))
}

// Reset zeroes the accumulator. The pole coefficient is kept.
func (f *LowPass) Reset() {
	f.h = 0
}

// Apply filters one sample and returns the new accumulator value.
func (f *LowPass) Apply(s int) int {
	f.h += (s - f.h) * f.c >> fixed.ExpShift
	return f.h
}

// Enabled reports whether Init produced a non-zero pole.
func (f *LowPass) Enabled() bool {
	return f.c != 0
}
