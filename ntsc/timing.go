package ntsc

// Signal levels in IRE units. Sample storage is int8, so every stored value
// is additionally clamped to [-127, 127].
const (
	LevelWhite = 100
	LevelBurst = 20
	LevelBlack = 7
	LevelBlank = 0
	LevelSync  = -40
)

// Horizontal interval durations in nanoseconds.
const (
	lineNs       = 63500
	frontPorchNs = 1500
	syncTipNs    = 4700
	breezewayNs  = 600
	colorBurstNs = 2500
	backPorchNs  = 1600
	activeNs     = 52600
)

const (
	totalLines    = 262
	topLine       = 21
	bottomLine    = 261
	subSamples    = 4
	burstCycles   = 10
	lineRate      = 15734
	encodeIREMax  = 110
	sampleMax     = 127
	sampleMin     = -127
	vsyncLineBase = 4
)

// ChromaPattern selects the relationship between the chroma subcarrier and
// the line rate. Besides the per-line phase behavior, each pattern fixes the
// number of chroma clocks per scan line and therefore the horizontal sample
// resolution.
type ChromaPattern int

const (
	// PatternVertical keeps the subcarrier phase identical on every line,
	// stacking chroma dots into vertical columns.
	PatternVertical ChromaPattern = iota
	// PatternCheckered inverts the subcarrier phase on alternating lines.
	PatternCheckered
	// PatternSawtooth advances the subcarrier phase a quarter cycle per
	// line, smearing the dot structure diagonally.
	PatternSawtooth
)

// ChromaClocks returns the number of chroma clocks per scan line for the
// pattern.
func (p ChromaPattern) ChromaClocks() int {
	switch p {
	case PatternCheckered:
		return 2275
	case PatternSawtooth:
		return 2273
	default:
		return 2280
	}
}

func (p ChromaPattern) String() string {
	switch p {
	case PatternVertical:
		return "vertical"
	case PatternCheckered:
		return "checkered"
	case PatternSawtooth:
		return "sawtooth"
	default:
		return "unknown"
	}
}

// lineRotation returns the chroma phase rotation, in quarter cycles, that
// the pattern applies to scan line n. Both the modulator and the
// demodulator index their phase tables through this.
func (p ChromaPattern) lineRotation(n int) int {
	switch p {
	case PatternCheckered:
		return (n & 1) << 1
	case PatternSawtooth:
		return n & 3
	default:
		return 0
	}
}

// Timing holds the sample-domain geometry of one field, derived from the
// chroma pattern. All offsets are in samples from the start of a line.
type Timing struct {
	SamplesPerLine int
	Lines          int

	SyncBeg  int // end of the front porch, start of the sync tip
	BWBeg    int // start of the breezeway
	CBBeg    int // start of the color burst window
	BurstLen int // color burst window length
	AVBeg    int // start of active video
	AVLen    int // active video length
	Top      int // first active scan line
	Bottom   int // one past the last active scan line
	SampleHz int // nominal sample rate in Hz
}

// TimingFor derives the timing table for a chroma pattern. The derivation
// is deterministic: equal patterns always yield equal tables.
func TimingFor(p ChromaPattern) Timing {
	spl := p.ChromaClocks() * subSamples / 10
	ns2pos := func(ns int) int { return ns * spl / lineNs }
	return Timing{
		SamplesPerLine: spl,
		Lines:          totalLines,
		SyncBeg:        ns2pos(frontPorchNs),
		BWBeg:          ns2pos(frontPorchNs + syncTipNs),
		CBBeg:          ns2pos(frontPorchNs + syncTipNs + breezewayNs),
		BurstLen:       burstCycles * subSamples,
		AVBeg:          ns2pos(frontPorchNs + syncTipNs + breezewayNs + colorBurstNs + backPorchNs),
		AVLen:          ns2pos(activeNs),
		Top:            topLine,
		Bottom:         bottomLine,
		SampleHz:       spl * lineRate,
	}
}

// ActiveLines returns the number of scan lines carrying picture content.
func (t Timing) ActiveLines() int {
	return t.Bottom - t.Top
}
