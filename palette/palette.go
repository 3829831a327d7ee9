package palette

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"yuvbox/yuv"
)

var builtin = map[string]color.Palette{
	"bw": {
		color.RGBA{0x00, 0x00, 0x00, 0xFF},
		color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	},
	"gray4": {
		color.RGBA{0x00, 0x00, 0x00, 0xFF},
		color.RGBA{0x55, 0x55, 0x55, 0xFF},
		color.RGBA{0xAA, 0xAA, 0xAA, 0xFF},
		color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	},
	// SMPTE color bars, left to right
	"smpte": {
		color.RGBA{192, 192, 192, 0xFF},
		color.RGBA{192, 192, 0, 0xFF},
		color.RGBA{0, 192, 192, 0xFF},
		color.RGBA{0, 192, 0, 0xFF},
		color.RGBA{192, 0, 192, 0xFF},
		color.RGBA{192, 0, 0, 0xFF},
		color.RGBA{0, 0, 192, 0xFF},
	},
}

// LoadPalette returns a built-in palette (bw, gray4, smpte) or reads every
// palette from the RIFF PAL file at name and concatenates them.
func LoadPalette(name string) (color.Palette, error) {
	if pal, ok := builtin[name]; ok {
		return pal, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open palette %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette %q: %w", name, err)
	}

	var res color.Palette
	for _, pal := range pals {
		res = append(res, pal...)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("palette %q has no colors", name)
	}

	return res, nil
}

// YUV converts every entry of p with the JFIF YCbCr model.
func YUV(p color.Palette) []yuv.Color {
	res := make([]yuv.Color, len(p))
	for i, c := range p {
		ycc := color.YCbCrModel.Convert(c).(color.YCbCr)
		res[i] = yuv.MakeColor(ycc.Y, ycc.Cb, ycc.Cr)
	}
	return res
}
