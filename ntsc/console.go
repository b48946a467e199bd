package ntsc

import "github.com/cwbudde/algo-ntsc/ntsc/fixed"

// Fixed geometry of the console framebuffer.
const (
	ConsoleWidth  = 256
	ConsoleHeight = 224
)

// ConsoleSource modulates a fixed-geometry 256x224 frame of 3-byte RGB
// pixels, the output of a console graphics chip. The chroma reference angle
// rotates over a 3-line period, producing the characteristic dot crawl, so
// the burst accumulator carries three slots instead of one.
type ConsoleSource struct{}

func (ConsoleSource) VerticalPeriod() int { return 3 }

func (ConsoleSource) Modulate(c *CRT, input []byte) error {
	cfg := &c.cfg
	t := c.t
	spl := t.SamplesPerLine
	if len(input) < ConsoleWidth*ConsoleHeight*3 {
		return ErrNotReady
	}

	var modI, modQ, burst [3][subSamples]int
	if !cfg.Monochrome {
		for s := 0; s < 3; s++ {
			extra := s * fixed.TwoPi / 3
			for k := 0; k < subSamples/2; k++ {
				sn, _ := fixed.SinCos14(degToAngle(k*90) + extra)
				modI[s][k] = shr(sn, 11)
				modI[s][k+subSamples/2] = -modI[s][k]
				sn, _ = fixed.SinCos14(degToAngle(k*90+90) + extra)
				modQ[s][k] = shr(sn, 11)
				modQ[s][k+subSamples/2] = -modQ[s][k]
				sn, _ = fixed.SinCos14(degToAngle(cfg.Hue-90+k*90) + extra)
				burst[s][k] = shr(sn, 10)
				burst[s][k+subSamples/2] = -burst[s][k]
			}
		}
	}
	// frame parity advances the 3-line slot, so the dot pattern crawls
	// across consecutive frames
	fs := c.frame
	burstAt := func(n, k int) int { return burst[posmod(n+fs, 3)][k] }

	c.emitBlanking(burstAt)

	destw, desth := t.AVLen, t.ActiveLines()
	if cfg.Bloom {
		destw = destw * 55500 >> 16
		desth = desth * 63500 >> 16
	}
	ax := (t.AVBeg + (t.AVLen-destw)/2) &^ 3
	voff := (t.ActiveLines() - desth) / 2
	wscale := LevelWhite * cfg.WhitePoint / 100

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
		if cfg.Progressive {
			sy = l * ConsoleHeight / desth
		} else {
			sy = (l*2 + c.field) * ConsoleHeight / (desth * 2)
		}
		row := input[sy*ConsoleWidth*3:]
		rot := cfg.Pattern.lineRotation(n)
		slot := posmod(n+fs, 3)
		c.lowY.Reset()
		c.lowI.Reset()
		c.lowQ.Reset()
		for x := 0; x < destw; x++ {
			sx := x * ConsoleWidth / destw
			px := row[sx*3:]
			y, i, q := rgbToYIQ(int(px[0]), int(px[1]), int(px[2]))
			fy := c.lowY.Apply(y)
			fi := c.lowI.Apply(i)
			fq := c.lowQ.Apply(q)
			pos := ax + x
			k := (pos + rot) & 3
			ire := LevelBlack + cfg.BlackPoint + (fy+shr(fi*modI[slot][k], 4)+shr(fq*modQ[slot][k], 4))*wscale>>10
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
