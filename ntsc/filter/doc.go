// Package filter provides the integer filter primitives of the composite
// video codec: a one-pole low-pass used to bandlimit Y/I/Q during encoding,
// and a three-band equalizer used to separate spectral content during
// decoding.
//
// The equalizer has two interchangeable implementations behind the
// [Equalizer] interface: a cascade of one-pole band splitters
// ([CascadeEqualizer]) and a short symmetric FIR kernel ([FIREqualizer]),
// selected at construction time with [NewEqualizer].
//
// All filters are value types owned by their caller. State is explicit and
// reset at defined points (the codec resets once per scan line); nothing in
// this package is process-wide.
package filter
