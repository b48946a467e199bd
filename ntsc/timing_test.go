package ntsc

import "testing"

func TestChromaClocks(t *testing.T) {
	cases := []struct {
		pattern ChromaPattern
		clocks  int
		spl     int
	}{
		{PatternVertical, 2280, 912},
		{PatternCheckered, 2275, 910},
		{PatternSawtooth, 2273, 909},
	}
	for _, tc := range cases {
		if got := tc.pattern.ChromaClocks(); got != tc.clocks {
			t.Errorf("%v: clocks got %d, want %d", tc.pattern, got, tc.clocks)
		}
		if got := TimingFor(tc.pattern).SamplesPerLine; got != tc.spl {
			t.Errorf("%v: samples/line got %d, want %d", tc.pattern, got, tc.spl)
		}
	}
}

func TestTimingForIdempotent(t *testing.T) {
	for _, p := range []ChromaPattern{PatternVertical, PatternCheckered, PatternSawtooth} {
		a := TimingFor(p)
		b := TimingFor(p)
		if a != b {
			t.Fatalf("%v: tables differ: %+v vs %+v", p, a, b)
		}
	}
}

func TestTimingGeometry(t *testing.T) {
	for _, p := range []ChromaPattern{PatternVertical, PatternCheckered, PatternSawtooth} {
		tm := TimingFor(p)
		if tm.Lines != 262 {
			t.Fatalf("%v: lines got %d, want 262", p, tm.Lines)
		}
		if tm.ActiveLines() != 240 {
			t.Fatalf("%v: active lines got %d, want 240", p, tm.ActiveLines())
		}
		if !(0 < tm.SyncBeg && tm.SyncBeg < tm.BWBeg && tm.BWBeg < tm.CBBeg && tm.CBBeg < tm.AVBeg) {
			t.Fatalf("%v: interval offsets out of order: %+v", p, tm)
		}
		if tm.CBBeg+tm.BurstLen > tm.AVBeg {
			t.Fatalf("%v: burst window reaches into active video", p)
		}
		if tm.AVBeg+tm.AVLen > tm.SamplesPerLine {
			t.Fatalf("%v: active video exceeds the line", p)
		}
	}
}

func TestLineRotation(t *testing.T) {
	for n := 0; n < 16; n++ {
		if got := PatternVertical.lineRotation(n); got != 0 {
			t.Fatalf("vertical line %d: rotation got %d, want 0", n, got)
		}
		want := (n & 1) << 1
		if got := PatternCheckered.lineRotation(n); got != want {
			t.Fatalf("checkered line %d: rotation got %d, want %d", n, got, want)
		}
		if got := PatternSawtooth.lineRotation(n); got != n&3 {
			t.Fatalf("sawtooth line %d: rotation got %d, want %d", n, got, n&3)
		}
	}
}

func TestPatternString(t *testing.T) {
	if PatternVertical.String() != "vertical" || PatternSawtooth.String() != "sawtooth" {
		t.Fatal("unexpected pattern names")
	}
}
