package ntsc

import (
	"bytes"
	"math"
	"testing"
)

func solidFrame(w, h int, f Format, r, g, b byte) []byte {
	bpp := f.BytesPerPixel()
	ro, gof, bo, ao := f.offsets()
	buf := make([]byte, w*h*bpp)
	for i := 0; i < w*h; i++ {
		px := buf[i*bpp:]
		px[ro] = r
		px[gof] = g
		px[bo] = b
		if ao >= 0 {
			px[ao] = 0xff
		}
	}
	return buf
}

// avgCenter averages the decoded RGB over a block around the image center.
func avgCenter(out []byte, w, h int, f Format, half int) (r, g, b float64) {
	bpp := f.BytesPerPixel()
	ro, gof, bo, _ := f.offsets()
	n := 0
	for y := h/2 - half; y < h/2+half; y++ {
		for x := w/2 - half; x < w/2+half; x++ {
			px := out[(y*w+x)*bpp:]
			r += float64(px[ro])
			g += float64(px[gof])
			b += float64(px[bo])
			n++
		}
	}
	return r / float64(n), g / float64(n), b / float64(n)
}

func hueDegrees(r, g, b float64) float64 {
	i := (39059*r - 18022*g - 21103*b) / 16384
	q := (13894*r - 34275*g + 20382*b) / 16384
	return math.Atan2(q, i) * 180 / math.Pi
}

func TestProcessFrame_Errors(t *testing.T) {
	c := New(WithInput(32, 32, FormatRGBA), WithOutput(32, 32, FormatRGBA))
	in := solidFrame(32, 32, FormatRGBA, 10, 20, 30)

	if err := c.ProcessFrame(in); err != ErrNotReady {
		t.Fatalf("no output buffer: got %v, want ErrNotReady", err)
	}
	c.SetOutput(make([]byte, 10))
	if err := c.ProcessFrame(in); err != ErrNotReady {
		t.Fatalf("short output buffer: got %v, want ErrNotReady", err)
	}
	c.SetOutput(make([]byte, 32*32*4))
	if err := c.ProcessFrame(nil); err != ErrNotReady {
		t.Fatalf("nil input: got %v, want ErrNotReady", err)
	}
	if err := c.ProcessFrame(in[:100]); err != ErrNotReady {
		t.Fatalf("short input: got %v, want ErrNotReady", err)
	}

	c.Update(func(cfg *Config) { cfg.InFormat = Format(99) })
	if err := c.ProcessFrame(in); err != ErrUnsupportedFormat {
		t.Fatalf("bad input format: got %v, want ErrUnsupportedFormat", err)
	}
	c.Update(func(cfg *Config) { cfg.InFormat = FormatRGBA; cfg.OutFormat = Format(-2) })
	if err := c.ProcessFrame(in); err != ErrUnsupportedFormat {
		t.Fatalf("bad output format: got %v, want ErrUnsupportedFormat", err)
	}
}

func TestRoundTripRed(t *testing.T) {
	const w, h = 256, 224
	c := New(
		WithInput(w, h, FormatRGBA),
		WithOutput(w, h, FormatRGBA),
		WithProgressive(true),
		WithStretch(false),
		WithNoise(0),
	)
	out := make([]byte, w*h*4)
	c.SetOutput(out)
	in := solidFrame(w, h, FormatRGBA, 255, 0, 0)
	if err := c.ProcessFrame(in); err != nil {
		t.Fatal(err)
	}

	r, g, b := avgCenter(out, w, h, FormatRGBA, 8)
	if r < 230 {
		t.Fatalf("red channel collapsed: %.1f", r)
	}
	if g > 25 || b > 25 {
		t.Fatalf("chroma leaked into G/B: g=%.1f b=%.1f", g, b)
	}

	wantHue := hueDegrees(255, 0, 0)
	gotHue := hueDegrees(r, g, b)
	if d := math.Abs(gotHue - wantHue); d >= 1.0 {
		t.Fatalf("hue drifted %.2f degrees (got %.2f, want %.2f)", d, gotHue, wantHue)
	}

	wantY := (19595*255 + 0 + 0) / 16384
	gotY := (19595*r + 38470*g + 7471*b) / 16384
	if d := math.Abs(gotY - float64(wantY)); d > 10 {
		t.Fatalf("luma drifted %.1f (got %.1f, want %d)", d, gotY, wantY)
	}
}

func TestSolidWhiteScenario(t *testing.T) {
	const w, h = 64, 64
	c := New(
		WithInput(w, h, FormatRGB),
		WithOutput(w, h, FormatRGB),
		WithProgressive(true),
		WithStretch(true),
		WithNoise(0),
		WithBloom(false),
	)
	out := make([]byte, w*h*3)
	c.SetOutput(out)
	if err := c.ProcessFrame(solidFrame(w, h, FormatRGB, 255, 255, 255)); err != nil {
		t.Fatal(err)
	}
	for y := 24; y < 40; y++ {
		for x := 24; x < 40; x++ {
			px := out[(y*w+x)*3:]
			for ch := 0; ch < 3; ch++ {
				if px[ch] < 250 {
					t.Fatalf("pixel (%d,%d) channel %d = %d, want >= 250", x, y, ch, px[ch])
				}
			}
		}
	}
}

func TestMonochrome(t *testing.T) {
	const w, h = 64, 64
	c := New(
		WithInput(w, h, FormatRGB),
		WithOutput(w, h, FormatRGB),
		WithProgressive(true),
		WithMonochrome(true),
		WithNoise(0),
	)
	out := make([]byte, w*h*3)
	c.SetOutput(out)
	if err := c.ProcessFrame(solidFrame(w, h, FormatRGB, 200, 40, 180)); err != nil {
		t.Fatal(err)
	}

	// burst window carries no reference wave
	line := c.Line(30)
	for p := c.t.CBBeg; p < c.t.CBBeg+c.t.BurstLen; p++ {
		if line[p] != LevelBlank {
			t.Fatalf("burst sample %d = %d, want blank", p, line[p])
		}
	}
	// demodulated chroma is exactly zero
	for p, v := range c.lineI {
		if v != 0 || c.lineQ[p] != 0 {
			t.Fatalf("chroma at sample %d: I=%d Q=%d, want 0", p, v, c.lineQ[p])
		}
	}
	for i := 0; i < w*h; i++ {
		px := out[i*3:]
		if px[0] != px[1] || px[1] != px[2] {
			t.Fatalf("pixel %d not gray: %v", i, px[:3])
		}
	}
}

func TestFlatFieldChromaQuiet(t *testing.T) {
	const w, h = 64, 64
	c := New(
		WithInput(w, h, FormatRGB),
		WithOutput(w, h, FormatRGB),
		WithProgressive(true),
		WithNoise(0),
	)
	out := make([]byte, w*h*3)
	c.SetOutput(out)
	if err := c.ProcessFrame(solidFrame(w, h, FormatRGB, 255, 255, 255)); err != nil {
		t.Fatal(err)
	}

	// achromatic input leaves only residual subcarrier ripple in the
	// demodulated chroma, with no standing offset
	sum := 0
	for p := 200; p < 600; p++ {
		if v := c.lineI[p]; v < -32 || v > 32 {
			t.Fatalf("I at sample %d = %d, want |v| <= 32", p, v)
		}
		if v := c.lineQ[p]; v < -32 || v > 32 {
			t.Fatalf("Q at sample %d = %d, want |v| <= 32", p, v)
		}
		sum += c.lineI[p]
	}
	if mean := sum / 400; mean < -4 || mean > 4 {
		t.Fatalf("I offset %d, want near zero", mean)
	}
}

func TestDeterministicNoise(t *testing.T) {
	const w, h = 96, 64
	mk := func(seed uint32) []byte {
		c := New(
			WithInput(w, h, FormatRGBA),
			WithOutput(w, h, FormatRGBA),
			WithNoise(40),
			WithNoiseSeed(seed),
		)
		out := make([]byte, w*h*4)
		c.SetOutput(out)
		if err := c.ProcessFrame(solidFrame(w, h, FormatRGBA, 120, 200, 80)); err != nil {
			t.Fatal(err)
		}
		return out
	}
	a := mk(1234)
	b := mk(1234)
	if !bytes.Equal(a, b) {
		t.Fatal("same seed produced different output")
	}
	if bytes.Equal(a, mk(99)) {
		t.Fatal("different seeds produced identical output")
	}
}

func TestBoundarySafety(t *testing.T) {
	const w, h = 48, 48
	for _, hue := range []int{10000, -10000, 359, 720} {
		c := New(
			WithInput(w, h, FormatRGBA),
			WithOutput(w, h, FormatRGBA),
			WithHue(hue),
			WithNoise(0),
		)
		out := make([]byte, w*h*4)
		c.SetOutput(out)
		if err := c.ProcessFrame(solidFrame(w, h, FormatRGBA, 255, 128, 0)); err != nil {
			t.Fatalf("hue %d: %v", hue, err)
		}
		spl := c.t.SamplesPerLine
		if c.hsync < 0 || c.hsync >= spl {
			t.Fatalf("hue %d: hsync %d out of [0,%d)", hue, c.hsync, spl)
		}
		if c.vsync < 0 || c.vsync >= c.t.Lines {
			t.Fatalf("hue %d: vsync %d out of [0,%d)", hue, c.vsync, c.t.Lines)
		}
	}
}

func TestPatternSwitch(t *testing.T) {
	c := New()
	for _, tc := range []struct {
		p   ChromaPattern
		spl int
	}{
		{PatternCheckered, 910},
		{PatternSawtooth, 909},
		{PatternVertical, 912},
	} {
		c.Update(WithPattern(tc.p))
		if got := c.Timing().SamplesPerLine; got != tc.spl {
			t.Fatalf("%v: samples/line got %d, want %d", tc.p, got, tc.spl)
		}
		if got := len(c.analog); got != tc.spl*262 {
			t.Fatalf("%v: analog buffer got %d samples, want %d", tc.p, got, tc.spl*262)
		}
	}
}

func TestConfigIdempotence(t *testing.T) {
	c := New(WithPattern(PatternSawtooth))
	before := c.Timing()
	nAnalog := len(c.analog)
	c.Update()
	c.Update(WithPattern(PatternSawtooth))
	if c.Timing() != before {
		t.Fatalf("timing changed without a configuration change: %+v vs %+v", c.Timing(), before)
	}
	if len(c.analog) != nAnalog {
		t.Fatalf("buffer reallocated to a different size: %d vs %d", len(c.analog), nAnalog)
	}
}

func TestInterlacedCoversCenter(t *testing.T) {
	const w, h = 64, 64
	c := New(
		WithInput(w, h, FormatRGB),
		WithOutput(w, h, FormatRGB),
		WithProgressive(false),
		WithNoise(0),
	)
	out := make([]byte, w*h*3)
	c.SetOutput(out)
	if err := c.ProcessFrame(solidFrame(w, h, FormatRGB, 255, 255, 255)); err != nil {
		t.Fatal(err)
	}
	for y := 20; y < 44; y++ {
		for x := 24; x < 40; x++ {
			if v := out[(y*w+x)*3]; v < 240 {
				t.Fatalf("row %d col %d = %d, want >= 240", y, x, v)
			}
		}
	}
}

func TestConsoleSource(t *testing.T) {
	c := New(
		WithOutput(ConsoleWidth, ConsoleHeight, FormatRGBA),
		WithProgressive(true),
		WithNoise(0),
	)
	c.SetSource(ConsoleSource{})
	if c.vper != 3 {
		t.Fatalf("vertical period got %d, want 3", c.vper)
	}
	out := make([]byte, ConsoleWidth*ConsoleHeight*4)
	c.SetOutput(out)
	in := solidFrame(ConsoleWidth, ConsoleHeight, FormatRGB, 255, 0, 0)
	if err := c.ProcessFrame(in); err != nil {
		t.Fatal(err)
	}
	r, g, b := avgCenter(out, ConsoleWidth, ConsoleHeight, FormatRGBA, 8)
	if r < 200 || g > 60 || b > 60 {
		t.Fatalf("console red came back as (%.0f, %.0f, %.0f)", r, g, b)
	}
}

func TestConsoleBurstAdvances(t *testing.T) {
	c := New(
		WithOutput(ConsoleWidth, ConsoleHeight, FormatRGBA),
		WithProgressive(true),
		WithNoise(0),
	)
	c.SetSource(ConsoleSource{})
	out := make([]byte, ConsoleWidth*ConsoleHeight*4)
	c.SetOutput(out)
	in := solidFrame(ConsoleWidth, ConsoleHeight, FormatRGB, 120, 120, 120)

	tm := c.Timing()
	grab := func() []int8 {
		if err := c.ProcessFrame(in); err != nil {
			t.Fatal(err)
		}
		line := c.Line(tm.Top + 10)
		return append([]int8(nil), line[tm.CBBeg:tm.CBBeg+tm.BurstLen]...)
	}
	first := grab()
	second := grab()

	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("burst phase did not advance between frames")
	}
}

func TestScanlineGap(t *testing.T) {
	const w, h = 64, 480
	c := New(
		WithInput(w, 64, FormatRGB),
		WithOutput(w, h, FormatRGB),
		WithProgressive(true),
		WithNoise(0),
		WithScanlineGap(1),
	)
	out := make([]byte, w*h*3)
	c.SetOutput(out)
	if err := c.ProcessFrame(solidFrame(w, 64, FormatRGB, 255, 255, 255)); err != nil {
		t.Fatal(err)
	}
	// 480 rows over 240 active lines: even rows decoded, odd rows skipped
	for y := 200; y < 240; y += 2 {
		if v := out[(y*w+32)*3]; v < 240 {
			t.Fatalf("decoded row %d = %d, want bright", y, v)
		}
		if v := out[((y+1)*w+32)*3]; v != 0 {
			t.Fatalf("gap row %d = %d, want untouched", y+1, v)
		}
	}
}

func TestVHSAndBloomSmoke(t *testing.T) {
	const w, h = 96, 96
	c := New(
		WithInput(w, h, FormatRGBA),
		WithOutput(w, h, FormatRGBA),
		WithVHS(true),
		WithBloom(true),
		WithNoise(24),
		WithNoiseSeed(5),
	)
	out := make([]byte, w*h*4)
	c.SetOutput(out)
	in := solidFrame(w, h, FormatRGBA, 180, 180, 40)
	for i := 0; i < 3; i++ {
		if err := c.ProcessFrame(in); err != nil {
			t.Fatal(err)
		}
	}
	if c.hsync < 0 || c.hsync >= c.t.SamplesPerLine {
		t.Fatalf("hsync %d out of range after VHS frames", c.hsync)
	}
}

func TestBlendAverages(t *testing.T) {
	// 240 output rows so each active line lands in exactly one row and
	// blends exactly once per frame.
	const w, h = 64, 240
	c := New(
		WithInput(w, 64, FormatRGB),
		WithOutput(w, h, FormatRGB),
		WithProgressive(true),
		WithNoise(0),
		WithBlend(true),
	)
	out := make([]byte, w*h*3)
	c.SetOutput(out)
	in := solidFrame(w, 64, FormatRGB, 255, 255, 255)
	if err := c.ProcessFrame(in); err != nil {
		t.Fatal(err)
	}
	first := out[(120*w+32)*3]
	if err := c.ProcessFrame(in); err != nil {
		t.Fatal(err)
	}
	second := out[(120*w+32)*3]
	if first < 100 || first > 140 {
		t.Fatalf("first blended frame = %d, want about half brightness", first)
	}
	if second <= first {
		t.Fatalf("blend did not converge upward: %d then %d", first, second)
	}
}

func TestAberrationSmoke(t *testing.T) {
	const w, h = 96, 64
	c := New(
		WithInput(w, h, FormatRGBA),
		WithOutput(w, h, FormatRGBA),
		WithProgressive(true),
		WithNoise(0),
		WithAberration(true),
	)
	out := make([]byte, w*h*4)
	c.SetOutput(out)
	if err := c.ProcessFrame(solidFrame(w, h, FormatRGBA, 255, 255, 255)); err != nil {
		t.Fatal(err)
	}
	r, g, b := avgCenter(out, w, h, FormatRGBA, 8)
	if r < 230 || g < 230 || b < 230 {
		t.Fatalf("aberration dimmed the center: (%.0f, %.0f, %.0f)", r, g, b)
	}
}

func BenchmarkProcessFrame(b *testing.B) {
	const w, h = 320, 240
	c := New(
		WithInput(w, h, FormatRGBA),
		WithOutput(w, h, FormatRGBA),
		WithNoise(12),
	)
	out := make([]byte, w*h*4)
	c.SetOutput(out)
	in := solidFrame(w, h, FormatRGBA, 90, 140, 210)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.ProcessFrame(in); err != nil {
			b.Fatal(err)
		}
	}
}
