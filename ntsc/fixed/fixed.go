package fixed

// Angle constants. A full turn is TwoPi angle units.
const (
	TwoPi  = 16384
	Pi     = TwoPi / 2
	HalfPi = TwoPi / 4
	Mask   = TwoPi - 1
)

// Fixed-point exponential constants. One is the 11-bit fixed-point unit;
// PiFixed is pi scaled by One.
const (
	ExpShift = 11
	One      = 1 << ExpShift
	PiFixed  = 6434

	expMask = One - 1
)

// Quarter-wave sine breakpoints, 15-bit amplitude, one entry per 256 angle
// units. The final entry is a guard for interpolation at the quarter point.
var sinTable = [18]int{
	0x0000,
	0x0c88, 0x18f8, 0x2528, 0x30f8, 0x3c50, 0x4718, 0x5130, 0x5a80,
	0x62f0, 0x6a68, 0x70e0, 0x7640, 0x7a78, 0x7d88, 0x7f60, 0x8000,
	0x7f60,
}

// Powers of e scaled by One, used for the integer part of Exp.
var expTable = [5]int{One, 5567, 15133, 41135, 111817}

func sin14(n int) int {
	n &= Mask
	h := n & (Pi - 1)
	if h > HalfPi-1 {
		h = Pi - 1 - h
	}
	i := h >> 8
	v := sinTable[i] + (sinTable[i+1]-sinTable[i])*(h&0xff)>>8
	v >>= 1
	if n > Pi-1 {
		return -v
	}
	return v
}

// SinCos14 returns the 14-bit sine and cosine of an angle measured in
// units of TwoPi per turn. The angle may be any integer; it is reduced
// modulo TwoPi.
func SinCos14(angle int) (sin, cos int) {
	return sin14(angle), sin14(angle + HalfPi)
}

// Exp computes e^(n/One) in fixed point, so Exp(0) == One and
// Exp(One) == One*e (to table precision). The integer part of the exponent
// is resolved by repeated multiplication with cached powers of e, the
// fractional part by a truncated Taylor series of at most 16 terms with
// early exit on underflow. Negative exponents use the reciprocal.
func Exp(n int) int {
	if n == 0 {
		return One
	}
	neg := n < 0
	if neg {
		n = -n
	}

	idx := n >> ExpShift
	res := One
	for i := 0; i < idx/4; i++ {
		res = res * expTable[4] >> ExpShift
	}
	idx &= 3
	if idx > 0 {
		res = res * expTable[idx] >> ExpShift
	}

	n &= expMask
	nxt, acc, del := One, 0, 1
	for i := 1; i < 17; i++ {
		acc += nxt / del
		nxt = nxt * n >> ExpShift
		del *= i
		if del > nxt || nxt <= 0 {
			break
		}
	}
	res = res * acc >> ExpShift

	if neg {
		res = (One * One) / res
	}
	return res
}
