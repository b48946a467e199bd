package ntsc

import "errors"

var (
	// ErrUnsupportedFormat is returned when the configured input or output
	// pixel layout is not one of the supported six.
	ErrUnsupportedFormat = errors.New("ntsc: unsupported pixel format")

	// ErrNotReady is returned when the input or output buffer is missing
	// or too small for the configured geometry. Nothing is written.
	ErrNotReady = errors.New("ntsc: input or output buffer not ready")
)
