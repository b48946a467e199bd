// Command signaldump modulates an internally generated color-bar frame and
// writes one field of the composite waveform to a mono WAV file for
// inspection in an audio editor or DSP tool.
//
// Usage:
//
//	signaldump [flags]
//
// Examples:
//
//	signaldump -out field.wav
//	signaldump -pattern sawtooth -mono -out field.wav
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-ntsc/ntsc"
)

const (
	barsWidth  = 256
	barsHeight = 192
)

// barColors are classic full-saturation color bars, left to right.
var barColors = [][3]byte{
	{191, 191, 191}, // gray
	{191, 191, 0},   // yellow
	{0, 191, 191},   // cyan
	{0, 191, 0},     // green
	{191, 0, 191},   // magenta
	{191, 0, 0},     // red
	{0, 0, 191},     // blue
}

// colorBars renders the test frame as packed RGB.
func colorBars() []byte {
	frame := make([]byte, barsWidth*barsHeight*3)
	for y := 0; y < barsHeight; y++ {
		for x := 0; x < barsWidth; x++ {
			c := barColors[x*len(barColors)/barsWidth]
			px := frame[(y*barsWidth+x)*3:]
			px[0], px[1], px[2] = c[0], c[1], c[2]
		}
	}
	return frame
}

// fieldPCM modulates one field of the frame and widens the samples to
// 16-bit PCM.
func fieldPCM(c *ntsc.CRT, frame []byte) ([]int, error) {
	if err := c.ModulateField(frame); err != nil {
		return nil, err
	}
	samples := c.FieldSamples()
	pcm := make([]int, len(samples))
	for i, s := range samples {
		pcm[i] = int(s) << 8
	}
	return pcm, nil
}

// writeWAV encodes the PCM stream as a mono 16-bit WAV at the composite
// sample rate.
func writeWAV(w io.WriteSeeker, pcm []int, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Data: pcm,
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

func main() {
	out := flag.String("out", "field.wav", "output WAV path")
	pattern := flag.String("pattern", "vertical", "chroma pattern: vertical, checkered, or sawtooth")
	mono := flag.Bool("mono", false, "suppress the color subcarrier")
	flag.Parse()

	var p ntsc.ChromaPattern
	switch *pattern {
	case "vertical":
		p = ntsc.PatternVertical
	case "checkered":
		p = ntsc.PatternCheckered
	case "sawtooth":
		p = ntsc.PatternSawtooth
	default:
		fmt.Fprintf(os.Stderr, "signaldump: unknown pattern %q\n", *pattern)
		os.Exit(1)
	}

	c := ntsc.New(
		ntsc.WithInput(barsWidth, barsHeight, ntsc.FormatRGB),
		ntsc.WithPattern(p),
		ntsc.WithProgressive(true),
		ntsc.WithMonochrome(*mono),
	)
	pcm, err := fieldPCM(c, colorBars())
	if err != nil {
		fmt.Fprintf(os.Stderr, "signaldump: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "signaldump: %v\n", err)
		os.Exit(1)
	}
	if err := writeWAV(f, pcm, c.Timing().SampleHz); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "signaldump: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "signaldump: %v\n", err)
		os.Exit(1)
	}

	t := c.Timing()
	fmt.Printf("%s: %d lines x %d samples at %d Hz -> %s\n",
		p, t.Lines, t.SamplesPerLine, t.SampleHz, *out)
}
