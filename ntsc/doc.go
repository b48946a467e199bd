// Package ntsc emulates an analog NTSC composite signal path with integer
// arithmetic only. A CRT instance modulates RGB frames into a synthetic
// field of composite samples and demodulates them back, reproducing the
// sync, chroma, and artifact behavior of the analog chain: color bleed,
// bandlimited luma and chroma, dot crawl, tape noise, bloom, and chromatic
// aberration.
//
// The demodulator recovers horizontal and vertical sync from the signal
// itself and tracks subcarrier phase with a color-burst accumulator, the
// only state carried across frames. Modulation strategies implement
// FieldSource; StandardSource encodes arbitrary frames in six pixel
// layouts, ConsoleSource emulates a fixed-geometry console output with a
// 3-line chroma rotation.
//
// A CRT is single-threaded: one ProcessFrame call runs one (progressive)
// or two (interlaced) complete field passes, and callers must serialize
// frames and configuration changes.
package ntsc
