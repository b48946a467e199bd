// Package fixed provides the integer trigonometry and exponential primitives
// the composite video codec is built on.
//
// Angles use 16384 units per full turn (14-bit). [SinCos14] returns 14-bit
// sine/cosine amplitudes from an 18-entry quarter-wave breakpoint table with
// linear interpolation. [Exp] evaluates e^(n/2048) in 11-bit fixed point.
//
// Both functions are deterministic across platforms; downstream filter
// coefficients depend on their exact results.
package fixed
