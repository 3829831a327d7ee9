package still

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"yuvbox/yuv"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// loadBase decodes the picture at path, scales it to the frame and stores it
// in the planes.
func loadBase(logger *slog.Logger, frame *yuv.Planar, path string) error {
	imgFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open base picture %q: %w", path, err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil {
			logger.Error("could not close base picture", "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		return fmt.Errorf("could not decode base picture %q: %w", path, err)
	}

	logger.Info("scaling base picture", "type", imgType,
		"from", img.Bounds().Size().String(), "to", frame.Bounds().Size().String())

	dest := image.NewRGBA(frame.Bounds())
	draw.CatmullRom.Scale(dest, dest.Bounds(), img, img.Bounds(), draw.Src, nil)
	storeRGBA(frame, dest)
	return nil
}

// storeRGBA converts src into frame. Chroma is taken from the top-left
// pixel of each 2x2 block.
func storeRGBA(frame *yuv.Planar, src *image.RGBA) {
	for y := range frame.Height {
		for x := range frame.Width {
			i := src.PixOffset(x, y)
			yy, cb, cr := color.RGBToYCbCr(src.Pix[i], src.Pix[i+1], src.Pix[i+2])

			frame.Y[x+y*frame.YStride] = yy
			if x%2 == 0 && y%2 == 0 {
				frame.Cb[x/2+(y/2)*frame.CbStride] = cb
				frame.Cr[x/2+(y/2)*frame.CrStride] = cr
			}
		}
	}
}
