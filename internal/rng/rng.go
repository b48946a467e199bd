// Package rng provides the deterministic pseudo-random generators the codec
// uses for noise synthesis. Both generators are plain value types with
// explicit seeds so that identical configurations produce identical fields.
package rng

// LCG is the linear-congruential generator driving per-sample signal noise.
// Its exact constants are part of the codec's deterministic contract: the
// same seed and noise amount reproduce the same decoded frame.
type LCG struct {
	s uint32
}

// NewLCG returns a generator seeded with seed.
func NewLCG(seed uint32) LCG {
	return LCG{s: seed}
}

// Next advances the generator and returns the raw 32-bit state.
func (g *LCG) Next() uint32 {
	g.s = g.s*214019 + 140327895
	return g.s
}

// Centered returns a value in [-127, 128] suitable for signal-level noise.
func (g *LCG) Centered() int {
	return int((g.Next()>>16)&0xff) - 0x7f
}

// State returns the current state so a caller can persist the stream
// position across fields.
func (g *LCG) State() uint32 {
	return g.s
}

// Seed resets the stream.
func (g *LCG) Seed(seed uint32) {
	g.s = seed
}

// XorWow is a xorwow generator used for coarse-grained jitter (head-switch
// displacement, aberration wander) where a longer period matters more than
// stream compatibility.
type XorWow struct {
	x, y, z, w, v, d uint32
}

// NewXorWow returns a generator seeded with seed. A zero seed is replaced
// with a fixed non-zero constant to keep the state well mixed.
func NewXorWow(seed uint32) XorWow {
	if seed == 0 {
		seed = 0x1d872b41
	}
	return XorWow{
		x: seed,
		y: 362436069,
		z: 521288629,
		w: 88675123,
		v: 5783321,
		d: 6615241,
	}
}

// Next advances the generator and returns 32 uniform bits.
func (r *XorWow) Next() uint32 {
	t := r.x ^ (r.x >> 2)
	r.x = r.y
	r.y = r.z
	r.z = r.w
	r.w = r.v
	r.v = (r.v ^ (r.v << 4)) ^ (t ^ (t << 1))
	r.d += 362437
	return r.d + r.v
}

// Intn returns a value in [0, n). n must be positive.
func (r *XorWow) Intn(n int) int {
	return int(r.Next() % uint32(n))
}
