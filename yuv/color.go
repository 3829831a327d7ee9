package yuv

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a single YUV sample: one luma and two chroma components.
type Color struct {
	Y  uint8 // luma
	Cb uint8 // chroma blue
	Cr uint8 // chroma red
}

// Raw component values, chroma included, as the encoder sample used them.
var (
	Black = Color{Y: 0}
	Gray  = Color{Y: 125}
	White = Color{Y: 255}
)

var _ color.Color = Color{}

func MakeColor(y, cb, cr uint8) Color {
	return Color{Y: y, Cb: cb, Cr: cr}
}

func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	return color.YCbCr{Y: c.Y, Cb: c.Cb, Cr: c.Cr}.RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d", c.Y, c.Cb, c.Cr)
}

// ParseColor reads a color written as "Y,Cb,Cr" with decimal components, or
// one of the names black, gray and white.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black":
		return Black, nil
	case "gray", "grey":
		return Gray, nil
	case "white":
		return White, nil
	}

	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return Color{}, fmt.Errorf("invalid color %q, should be Y,Cb,Cr", s)
	}

	var comps [3]uint8
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("could not read color component %d of %q: %w", i, s, err)
		}
		comps[i] = uint8(v)
	}

	return MakeColor(comps[0], comps[1], comps[2]), nil
}
