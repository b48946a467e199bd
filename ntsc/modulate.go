package ntsc

import "github.com/cwbudde/algo-ntsc/ntsc/fixed"

// FieldSource supplies one field of analog samples from an input frame.
// The decode engine never branches on the concrete source; physical targets
// differ only in geometry and burst generation.
type FieldSource interface {
	// VerticalPeriod is the chroma phase repetition period in lines. It
	// sizes the color-burst accumulator.
	VerticalPeriod() int
	// Modulate fills the CRT's analog buffer with one field encoded from
	// input.
	Modulate(c *CRT, input []byte) error
}

// degToAngle converts degrees to 14-bit angle units.
func degToAngle(deg int) int {
	return posmod(deg, 360) * fixed.TwoPi / 360
}

// rgbToYIQ converts 8-bit RGB to fixed-point YIQ on a 0..1020 luma scale.
func rgbToYIQ(r, g, b int) (y, i, q int) {
	y = (19595*r + 38470*g + 7471*b) >> 14
	i = (39059*r - 18022*g - 21103*b) >> 14
	q = (13894*r - 34275*g + 20382*b) >> 14
	return y, i, q
}

// Pulse boundaries of the blanking lines, in percent of a line. Each set
// reads sync/blank/sync/blank.
var (
	equalizingPulse    = [4]int{4, 50, 54, 100}
	vsyncSerrationEven = [4]int{46, 50, 96, 100}
	vsyncSerrationOdd  = [4]int{4, 50, 96, 100}
)

func fillPulses(line []int8, marks [4]int) {
	spl := len(line)
	x := 0
	for ; x < marks[0]*spl/100; x++ {
		line[x] = LevelSync
	}
	for ; x < marks[1]*spl/100; x++ {
		line[x] = LevelBlank
	}
	for ; x < marks[2]*spl/100; x++ {
		line[x] = LevelSync
	}
	for ; x < spl; x++ {
		line[x] = LevelBlank
	}
}

// emitBlanking writes every line's sync geometry and, on video lines, the
// color burst window. burst yields the quarter-cycle burst table entry for
// a given line.
func (c *CRT) emitBlanking(burst func(n, k int) int) {
	t := c.t
	spl := t.SamplesPerLine
	for n := 0; n < t.Lines; n++ {
		line := c.analog[n*spl : (n+1)*spl]
		switch {
		case n <= 3 || (n >= 7 && n <= 9):
			fillPulses(line, equalizingPulse)
		case n >= 4 && n <= 6:
			if c.field&1 == 0 {
				fillPulses(line, vsyncSerrationEven)
			} else {
				fillPulses(line, vsyncSerrationOdd)
			}
		default:
			x := 0
			for ; x < t.SyncBeg; x++ {
				line[x] = LevelBlank
			}
			for ; x < t.BWBeg; x++ {
				line[x] = LevelSync
			}
			for ; x < spl; x++ {
				line[x] = LevelBlank
			}
			rot := c.cfg.Pattern.lineRotation(n)
			for p := t.CBBeg; p < t.CBBeg+t.BurstLen; p++ {
				cb := burst(n, (p+rot)&3)
				line[p] = clampSample(LevelBlank + shr(cb*LevelBurst, 4))
			}
		}
	}
}

// finishField folds the reference burst into the cross-frame accumulator,
// scaled to the decoder's smoothing steady state. In VHS mode the
// accumulator is cleared instead: only the decoder's own tracking recovers
// phase, and the bottom of the field picks up head-switch displacement.
func (c *CRT) finishField(burst func(n, k int) int) {
	if c.cfg.VHS {
		c.vhsCorrupt()
		c.hsync = 0
		for s := range c.ccf {
			c.ccf[s] = [subSamples]int{}
		}
		return
	}
	for s := range c.ccf {
		for k := 0; k < subSamples; k++ {
			v := LevelBlank + shr(burst(s, k)*LevelBurst, 4)
			c.ccf[s][k] = v << 7
		}
	}
}

// vhsCorrupt displaces the bottom lines of the field horizontally, growing
// toward the head-switch point at the very bottom.
func (c *CRT) vhsCorrupt() {
	spl := c.t.SamplesPerLine
	band := 6 + c.jit.Intn(5)
	tmp := make([]int8, spl)
	for i := 0; i < band; i++ {
		n := c.t.Lines - band + i
		shift := c.jit.Intn(2 + i*i*3)
		line := c.analog[n*spl : (n+1)*spl]
		copy(tmp, line[shift:])
		copy(tmp[spl-shift:], line[:shift])
		copy(line, tmp)
	}
}

// StandardSource modulates an arbitrary RGB frame in one of the six
// supported pixel layouts.
type StandardSource struct{}

func (StandardSource) VerticalPeriod() int { return 1 }

func (StandardSource) Modulate(c *CRT, input []byte) error {
	cfg := &c.cfg
	t := c.t
	spl := t.SamplesPerLine
	bpp := cfg.InFormat.BytesPerPixel()
	if len(input) < cfg.InWidth*cfg.InHeight*bpp {
		return ErrNotReady
	}

	// one half cycle computed, the other mirrored, keeping every table
	// exactly zero-mean
	var modI, modQ, burst [subSamples]int
	if !cfg.Monochrome {
		for k := 0; k < subSamples/2; k++ {
			sn, _ := fixed.SinCos14(degToAngle(k * 90))
			modI[k] = shr(sn, 11)
			modI[k+subSamples/2] = -modI[k]
			sn, _ = fixed.SinCos14(degToAngle(k*90 + 90))
			modQ[k] = shr(sn, 11)
			modQ[k+subSamples/2] = -modQ[k]
			sn, _ = fixed.SinCos14(degToAngle(cfg.Hue - 90 + k*90))
			burst[k] = shr(sn, 10)
			burst[k+subSamples/2] = -burst[k]
		}
	}
	burstAt := func(n, k int) int { return burst[k] }

	c.emitBlanking(burstAt)

	destw, desth := t.AVLen, t.ActiveLines()
	if !cfg.Stretch {
		if cfg.InWidth < destw {
			destw = cfg.InWidth
		}
		rows := cfg.InHeight
		if !cfg.Progressive {
			rows = (cfg.InHeight + 1) / 2
		}
		if rows < desth {
			desth = rows
		}
	}
	if cfg.Bloom {
		destw = destw * 55500 >> 16
		desth = desth * 63500 >> 16
	}
	ax := (t.AVBeg + (t.AVLen-destw)/2) &^ 3
	voff := (t.ActiveLines() - desth) / 2
	wscale := LevelWhite * cfg.WhitePoint / 100
	ro, gof, bo, _ := cfg.InFormat.offsets()

	for n := t.Top; n < t.Bottom; n++ {
		line := c.analog[n*spl : (n+1)*spl]
		for x := t.AVBeg; x < t.AVBeg+t.AVLen; x++ {
			line[x] = LevelBlack
		}
		l := n - t.Top - voff
		if l < 0 || l >= desth {
			continue
		}
		var sy int
		if cfg.Stretch {
			if cfg.Progressive {
				sy = l * cfg.InHeight / desth
			} else {
				sy = (l*2 + c.field) * cfg.InHeight / (desth * 2)
			}
		} else {
			if cfg.Progressive {
				sy = l
			} else {
				sy = l*2 + c.field
				if sy >= cfg.InHeight {
					continue
				}
			}
		}
		row := input[sy*cfg.InWidth*bpp:]
		rot := cfg.Pattern.lineRotation(n)
		c.lowY.Reset()
		c.lowI.Reset()
		c.lowQ.Reset()
		for x := 0; x < destw; x++ {
			sx := x
			if cfg.Stretch {
				sx = x * cfg.InWidth / destw
			}
			px := row[sx*bpp:]
			y, i, q := rgbToYIQ(int(px[ro]), int(px[gof]), int(px[bo]))
			fy := c.lowY.Apply(y)
			fi := c.lowI.Apply(i)
			fq := c.lowQ.Apply(q)
			pos := ax + x
			k := (pos + rot) & 3
			ire := LevelBlack + cfg.BlackPoint + (fy+shr(fi*modI[k], 4)+shr(fq*modQ[k], 4))*wscale>>10
			if ire < 0 {
				ire = 0
			} else if ire > encodeIREMax {
				ire = encodeIREMax
			}
			line[pos] = int8(ire)
		}
	}

	c.finishField(burstAt)
	return nil
}
