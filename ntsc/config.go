package ntsc

import "github.com/cwbudde/algo-ntsc/ntsc/filter"

// Config defines the full configuration surface of a CRT instance.
// Mutations between frames go through Update so that timing-derived buffers
// are rebuilt before the next call.
type Config struct {
	// Input frame geometry and layout.
	InWidth  int
	InHeight int
	InFormat Format

	// Output geometry and layout. The output buffer itself is registered
	// with SetOutput.
	Width     int
	Height    int
	OutFormat Format

	Pattern ChromaPattern
	EqKind  filter.EqualizerKind

	Stretch     bool
	Monochrome  bool
	Progressive bool

	Hue        int // degrees
	Brightness int
	Contrast   int
	Saturation int
	BlackPoint int
	WhitePoint int

	Noise     int
	NoiseSeed uint32

	ScanlineGap int

	Bloom      bool
	Blend      bool
	Aberration bool
	VHS        bool

	HSyncSearch bool
	VSyncSearch bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults: a 576x432 RGBA output decoded
// from a same-sized RGBA input, interlaced, with sync recovery enabled and
// every artifact switched off.
func DefaultConfig() Config {
	return Config{
		InWidth:     576,
		InHeight:    432,
		InFormat:    FormatRGBA,
		Width:       576,
		Height:      432,
		OutFormat:   FormatRGBA,
		Pattern:     PatternVertical,
		EqKind:      filter.EqCascade,
		Stretch:     true,
		Contrast:    165,
		Saturation:  13,
		WhitePoint:  100,
		HSyncSearch: true,
		VSyncSearch: true,
	}
}

// WithInput sets the source frame geometry and pixel layout.
func WithInput(width, height int, format Format) Option {
	return func(cfg *Config) {
		if width > 0 && height > 0 {
			cfg.InWidth = width
			cfg.InHeight = height
		}
		cfg.InFormat = format
	}
}

// WithOutput sets the output geometry and pixel layout.
func WithOutput(width, height int, format Format) Option {
	return func(cfg *Config) {
		if width > 0 && height > 0 {
			cfg.Width = width
			cfg.Height = height
		}
		cfg.OutFormat = format
	}
}

// WithPattern selects the chroma pattern, which also fixes the horizontal
// sample resolution.
func WithPattern(p ChromaPattern) Option {
	return func(cfg *Config) { cfg.Pattern = p }
}

// WithEqualizer selects the decode-side equalizer strategy.
func WithEqualizer(kind filter.EqualizerKind) Option {
	return func(cfg *Config) { cfg.EqKind = kind }
}

// WithStretch maps the source frame onto the full active area instead of
// centering it one-to-one.
func WithStretch(on bool) Option {
	return func(cfg *Config) { cfg.Stretch = on }
}

// WithMonochrome suppresses the color burst and all chroma modulation.
func WithMonochrome(on bool) Option {
	return func(cfg *Config) { cfg.Monochrome = on }
}

// WithProgressive decodes one field per frame instead of an interlaced
// field pair.
func WithProgressive(on bool) Option {
	return func(cfg *Config) { cfg.Progressive = on }
}

// WithHue rotates the decoded color by the given angle in degrees.
func WithHue(deg int) Option {
	return func(cfg *Config) { cfg.Hue = deg }
}

// WithBrightness offsets the decoded luma.
func WithBrightness(b int) Option {
	return func(cfg *Config) { cfg.Brightness = b }
}

// WithContrast scales the decoded RGB channels. 165 is unity-ish.
func WithContrast(c int) Option {
	return func(cfg *Config) {
		if c >= 0 {
			cfg.Contrast = c
		}
	}
}

// WithSaturation scales the recovered chroma. 13 is unity-ish, 0 kills
// color entirely.
func WithSaturation(s int) Option {
	return func(cfg *Config) {
		if s >= 0 {
			cfg.Saturation = s
		}
	}
}

// WithBlackPoint raises the encoded black level in IRE.
func WithBlackPoint(p int) Option {
	return func(cfg *Config) { cfg.BlackPoint = p }
}

// WithWhitePoint scales the encoded signal swing as a percentage.
func WithWhitePoint(p int) Option {
	return func(cfg *Config) {
		if p > 0 {
			cfg.WhitePoint = p
		}
	}
}

// WithNoise sets the noise amount injected before decoding; 0 disables.
func WithNoise(amount int) Option {
	return func(cfg *Config) {
		if amount >= 0 {
			cfg.Noise = amount
		}
	}
}

// WithNoiseSeed seeds the noise generators. Equal seeds with equal
// configurations reproduce identical output.
func WithNoiseSeed(seed uint32) Option {
	return func(cfg *Config) { cfg.NoiseSeed = seed }
}

// WithScanlineGap leaves the given number of output rows dark between
// duplicated scan lines.
func WithScanlineGap(gap int) Option {
	return func(cfg *Config) {
		if gap >= 0 {
			cfg.ScanlineGap = gap
		}
	}
}

// WithBloom enables brightness-dependent beam widening.
func WithBloom(on bool) Option {
	return func(cfg *Config) { cfg.Bloom = on }
}

// WithBlend averages each decoded frame with the previous output.
func WithBlend(on bool) Option {
	return func(cfg *Config) { cfg.Blend = on }
}

// WithAberration enables lateral chromatic aberration.
func WithAberration(on bool) Option {
	return func(cfg *Config) { cfg.Aberration = on }
}

// WithVHS enables tape artifacts: head-switch jitter at the bottom of the
// field, dropout noise, and decoder-only burst tracking.
func WithVHS(on bool) Option {
	return func(cfg *Config) { cfg.VHS = on }
}

// WithHSyncSearch toggles horizontal sync recovery; off locks the
// horizontal phase to the nominal position.
func WithHSyncSearch(on bool) Option {
	return func(cfg *Config) { cfg.HSyncSearch = on }
}

// WithVSyncSearch toggles vertical sync recovery; off lets the vertical
// flywheel free-run.
func WithVSyncSearch(on bool) Option {
	return func(cfg *Config) { cfg.VSyncSearch = on }
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
