package ntsc_test

import (
	"fmt"

	"github.com/cwbudde/algo-ntsc/ntsc"
)

func ExampleTimingFor() {
	t := ntsc.TimingFor(ntsc.PatternVertical)
	fmt.Println(t.SamplesPerLine, t.AVLen, t.ActiveLines())
	// Output: 912 755 240
}

func ExampleCRT_ProcessFrame() {
	const w, h = 64, 64
	crt := ntsc.New(
		ntsc.WithInput(w, h, ntsc.FormatRGBA),
		ntsc.WithOutput(w, h, ntsc.FormatRGBA),
		ntsc.WithProgressive(true),
	)
	crt.SetOutput(make([]byte, w*h*4))

	frame := make([]byte, w*h*4)
	for i := range frame {
		frame[i] = 0xff
	}
	err := crt.ProcessFrame(frame)
	fmt.Println(err)
	// Output: <nil>
}
