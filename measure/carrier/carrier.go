// Package carrier verifies modulated composite lines in the frequency
// domain: magnitude spectra of sample windows and location of the chroma
// subcarrier peak, which sits at one quarter of the sample rate when the
// modulator is phased correctly.
package carrier

import (
	"errors"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrEmptyInput is returned when there are no samples to analyze.
var ErrEmptyInput = errors.New("carrier: empty input")

// Report summarizes the spectral content of a sample window.
type Report struct {
	// Bin is the dominant non-DC bin of the magnitude spectrum.
	Bin int
	// Cycles is the dominant frequency in cycles per window.
	Cycles float64
	// Peak is the magnitude at the dominant bin.
	Peak float64
	// RMS is the root mean square of the window after mean removal.
	RMS float64
}

// Spectrum computes the one-sided magnitude spectrum of a window of
// composite samples. The window is zero-padded to the next power of two.
func Spectrum(samples []int8) ([]float64, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}
	n := nextPow2(len(samples))
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, err
	}
	in := make([]complex128, n)
	for i, s := range samples {
		in[i] = complex(float64(s), 0)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, err
	}
	half := n / 2
	re := make([]float64, half)
	im := make([]float64, half)
	for i := 0; i < half; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mag := make([]float64, half)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}

// Analyze locates the dominant spectral component of a sample window,
// skipping the DC bin. The mean is removed first so that sync and blanking
// pedestals do not mask the carrier.
func Analyze(samples []int8) (Report, error) {
	if len(samples) == 0 {
		return Report{}, ErrEmptyInput
	}
	mean := 0.0
	for _, s := range samples {
		mean += float64(s)
	}
	mean /= float64(len(samples))

	n := nextPow2(len(samples))
	if n < 4 {
		n = 4
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Report{}, err
	}
	in := make([]complex128, n)
	rms := 0.0
	for i, s := range samples {
		v := float64(s) - mean
		in[i] = complex(v, 0)
		rms += v * v
	}
	rms = math.Sqrt(rms / float64(len(samples)))

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return Report{}, err
	}
	half := n / 2
	re := make([]float64, half)
	im := make([]float64, half)
	for i := 0; i < half; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mag := make([]float64, half)
	vecmath.Magnitude(mag, re, im)

	best := 1
	for i := 2; i < half; i++ {
		if mag[i] > mag[best] {
			best = i
		}
	}
	return Report{
		Bin:    best,
		Cycles: float64(best) * float64(len(samples)) / float64(n),
		Peak:   mag[best],
		RMS:    rms,
	}, nil
}

// SubcarrierBin returns the spectrum bin the chroma subcarrier is expected
// to occupy for a window of the given length: one cycle per four samples.
func SubcarrierBin(windowLen int) int {
	return nextPow2(windowLen) / 4
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
