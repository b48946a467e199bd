package ntsc

import "github.com/cwbudde/algo-ntsc/ntsc/fixed"

// Decoder tuning constants, empirically chosen.
const (
	vsyncWindow = 8
	hsyncWindow = 8
	vsyncThresh = 125
	hsyncThresh = 4
	hsyncNudge  = -3
	accumDecay  = 127 // out of 128
	abBase      = 2
)

// searchVSync integrates scan lines around the previous vertical lock; the
// first crossing of the threshold relocks the flywheel and decides field
// parity (a crossing in the first half of the line means an even field).
// Window exhaustion keeps the previous lock.
func (c *CRT) searchVSync(sig []int8, update bool) {
	t := c.t
	spl := t.SamplesPerLine
	found := false
	line, col := 0, 0
	for i := -vsyncWindow; i < vsyncWindow && !found; i++ {
		n := posmod(c.vsync+i, t.Lines)
		sum := 0
		for j := 0; j < spl; j++ {
			sum += int(sig[n*spl+j])
			if sum <= vsyncThresh*LevelSync {
				found = true
				line, col = n, j
				break
			}
		}
	}
	if !found {
		return
	}
	if update {
		c.vsync = line
	}
	if col > spl/2 {
		c.dpar = 1
	} else {
		c.dpar = 0
	}
}

// searchHSync integrates a small window around the expected sync tip of the
// line starting at ln. A crossing relocks the horizontal phase; exhaustion
// free-runs on the previous value.
func (c *CRT) searchHSync(sig []int8, ln int) {
	t := c.t
	spl := t.SamplesPerLine
	sum := 0
	for i := -hsyncWindow; i < hsyncWindow; i++ {
		p := posmod(t.SyncBeg+c.hsync+i, spl)
		sum += int(sig[ln+p])
		if sum <= hsyncThresh*LevelSync {
			c.hsync = posmod(c.hsync+i, spl)
			return
		}
	}
}

// injectNoise builds the per-field working copy of the analog signal with
// synthetic noise. In VHS mode a sinusoidal dropout envelope rides on a
// band near the bottom of the field.
func (c *CRT) injectNoise() {
	cfg := &c.cfg
	copy(c.noisy, c.analog)
	if cfg.Noise > 0 {
		for i := range c.noisy {
			v := int(c.noisy[i]) + c.rnd.Centered()*cfg.Noise>>8
			c.noisy[i] = clampSample(v)
		}
	}
	if cfg.VHS {
		t := c.t
		spl := t.SamplesPerLine
		band := 6 + c.jit.Intn(9)
		start := t.Lines - band
		phase := c.jit.Intn(fixed.TwoPi)
		amp := cfg.Noise + 24
		for n := start; n < t.Lines; n++ {
			depth := n - start + 1
			for x := 0; x < spl; x++ {
				sn, _ := fixed.SinCos14(phase)
				phase += 577 + depth
				v := int(c.noisy[n*spl+x]) + sn*depth*amp>>18
				c.noisy[n*spl+x] = clampSample(v)
			}
		}
	}
}

// sampleLine reads buf at a 12-bit fixed-point position with linear
// interpolation, clamping to the buffer bounds.
func sampleLine(buf []int, sp int) int {
	top := (len(buf) - 1) << 12
	if sp < 0 {
		sp = 0
	} else if sp > top {
		sp = top
	}
	p := sp >> 12
	fr := sp & 0xfff
	v := buf[p]
	if p+1 < len(buf) {
		v += (buf[p+1] - v) * fr >> 12
	}
	return v
}

func (c *CRT) demodulateField() {
	cfg := &c.cfg
	t := c.t
	spl := t.SamplesPerLine

	if !cfg.VSyncSearch {
		c.searchVSync(c.analog, false)
	}
	c.injectNoise()
	if cfg.VSyncSearch {
		c.searchVSync(c.noisy, true)
	}
	par := c.dpar
	if cfg.Progressive {
		par = 0
	}

	hs, hc := fixed.SinCos14(degToAngle(cfg.Hue))
	hs = shr(hs, 11)
	hc = shr(hc, 11)

	if cfg.Aberration {
		c.abJit = c.jit.Intn(3) - 1
	}

	sig := c.noisy
	h := cfg.Height
	outBpp := cfg.OutFormat.BytesPerPixel()
	ro, gof, bo, ao := cfg.OutFormat.offsets()
	rowBytes := cfg.Width * outBpp
	active := t.ActiveLines()
	maxE := (128 + cfg.Noise/2) * t.AVLen
	bright := cfg.Brightness - (LevelBlack + cfg.BlackPoint)

	for l := t.Top; l < t.Bottom; l++ {
		ll := l - t.Top
		beg := (ll*2 + par) * h / (active * 2)
		end := (ll*2 + 2 + par) * h / (active * 2)
		if beg >= h {
			continue
		}
		if end > h {
			end = h
		}

		bn := posmod(l+c.vsync-vsyncLineBase, t.Lines)
		ln := bn * spl

		readBase := t.AVBeg
		if cfg.HSyncSearch {
			c.searchHSync(sig, ln)
			readBase = posmod(t.AVBeg+c.hsync+hsyncNudge, spl)
		}
		rot := cfg.Pattern.lineRotation(bn)
		slot := posmod(bn, c.vper)

		// burst phase lock
		cc := &c.ccf[slot]
		for p := t.CBBeg; p < t.CBBeg+t.BurstLen; p++ {
			k := (p + rot) & 3
			cc[k] = cc[k]*accumDecay/128 + int(sig[ln+p])
		}

		// demodulation wave, rotated by hue and scaled by saturation;
		// the mirrored half keeps it exactly anti-symmetric over the four
		// phases
		bs := cc[0] - cc[2]
		bc := cc[1] - cc[3]
		rc := -(bs*hc + bc*hs)
		rs := bc*hc - bs*hs
		var wI, wQ [subSamples]int
		for k := 0; k < subSamples/2; k++ {
			sk, ck := fixed.SinCos14(k * fixed.TwoPi / subSamples)
			sk = shr(sk, 10)
			ck = shr(ck, 10)
			wI[k] = (sk*rc + ck*rs) * cfg.Saturation >> 8
			wQ[k] = (ck*rc - sk*rs) * cfg.Saturation >> 8
			wI[k+subSamples/2] = -wI[k]
			wQ[k+subSamples/2] = -wQ[k]
		}

		width := t.AVLen
		if cfg.Bloom {
			e := 0
			for p := 0; p < t.AVLen; p++ {
				v := int(sig[ln+(readBase+p)%spl]) - LevelBlack
				if v > 0 {
					e += v
				}
			}
			c.prevE = (c.prevE*7 + e) / 8
			loww := t.AVLen * 112 / 128
			w := loww + c.prevE*(t.AVLen-loww)/maxE
			if w > t.AVLen {
				w = t.AVLen
			}
			width = w
		}

		c.eqY.Reset()
		c.eqI.Reset()
		c.eqQ.Reset()
		for p := 0; p < t.AVLen; p++ {
			pos := (readBase + p) % spl
			s := int(sig[ln+pos])
			k := (pos + rot) & 3
			c.lineY[p] = c.eqY.Apply((s + bright) << 4)
			c.lineI[p] = c.eqI.Apply(shr(s*wI[k], 9))
			c.lineQ[p] = c.eqQ.Apply(shr(s*wQ[k], 9))
		}

		step := (width << 12) / cfg.Width
		ab := 0
		if cfg.Aberration {
			ab = (abBase + c.abJit) << 12
		}
		row := c.out[beg*rowBytes : (beg+1)*rowBytes]
		for x := 0; x < cfg.Width; x++ {
			sp := x * step
			yG := sampleLine(c.lineY, sp)
			iG := sampleLine(c.lineI, sp)
			qG := sampleLine(c.lineQ, sp)
			yR, iR, qR := yG, iG, qG
			yB, iB, qB := yG, iG, qG
			if ab != 0 {
				yR = sampleLine(c.lineY, sp+ab)
				iR = sampleLine(c.lineI, sp+ab)
				qR = sampleLine(c.lineQ, sp+ab)
				yB = sampleLine(c.lineY, sp-ab)
				iB = sampleLine(c.lineI, sp-ab)
				qB = sampleLine(c.lineQ, sp-ab)
			}
			r8 := clamp255((yR + (3879*iR+2556*qR)>>12) * cfg.Contrast >> 10)
			g8 := clamp255((yG - (1126*iG+2605*qG)>>12) * cfg.Contrast >> 10)
			b8 := clamp255((yB + (7021*qB-4530*iB)>>12) * cfg.Contrast >> 10)
			px := row[x*outBpp:]
			if cfg.Blend {
				r8 = px[ro]>>1 + r8>>1
				g8 = px[gof]>>1 + g8>>1
				b8 = px[bo]>>1 + b8>>1
			}
			px[ro] = r8
			px[gof] = g8
			px[bo] = b8
			if ao >= 0 {
				px[ao] = 0xff
			}
		}
		for y := beg + 1; y < end-cfg.ScanlineGap; y++ {
			copy(c.out[y*rowBytes:(y+1)*rowBytes], row)
		}
	}
}
