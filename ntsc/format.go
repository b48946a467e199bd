package ntsc

// Format identifies a pixel memory layout. Three-byte layouts carry no
// alpha; four-byte layouts get an opaque alpha on output.
type Format int

const (
	FormatRGB Format = iota
	FormatBGR
	FormatARGB
	FormatRGBA
	FormatABGR
	FormatBGRA
)

// BytesPerPixel returns the pixel stride of the layout.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGB, FormatBGR:
		return 3
	default:
		return 4
	}
}

func (f Format) String() string {
	switch f {
	case FormatRGB:
		return "rgb"
	case FormatBGR:
		return "bgr"
	case FormatARGB:
		return "argb"
	case FormatRGBA:
		return "rgba"
	case FormatABGR:
		return "abgr"
	case FormatBGRA:
		return "bgra"
	default:
		return "unknown"
	}
}

func (f Format) valid() bool {
	return f >= FormatRGB && f <= FormatBGRA
}

// offsets returns the byte offsets of the red, green, blue, and alpha
// channels within one pixel. Alpha is -1 for three-byte layouts.
func (f Format) offsets() (r, g, b, a int) {
	switch f {
	case FormatRGB:
		return 0, 1, 2, -1
	case FormatBGR:
		return 2, 1, 0, -1
	case FormatARGB:
		return 1, 2, 3, 0
	case FormatRGBA:
		return 0, 1, 2, 3
	case FormatABGR:
		return 3, 2, 1, 0
	case FormatBGRA:
		return 2, 1, 0, 3
	default:
		return 0, 1, 2, -1
	}
}
