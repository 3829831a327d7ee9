package still

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"sync"

	"yuvbox/yuv"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

func encode(w io.Writer, frame *yuv.Planar, format string, scale int) error {
	if format == "yuv" {
		if _, err := frame.WriteTo(w); err != nil {
			return fmt.Errorf("could not write I420 frame: %w", err)
		}
		return nil
	}

	var img image.Image = frame.YCbCr()
	if scale > 1 {
		img = upscale(img, scale)
	}

	switch format {
	case "gif":
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case "jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG: %w", err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	return nil
}

// upscale enlarges img by an integer factor keeping hard pixel edges, so
// the 2x2 chroma blocks stay visible.
func upscale(img image.Image, scale int) image.Image {
	sr := img.Bounds()
	dest := image.NewRGBA(image.Rect(0, 0, sr.Dx()*scale, sr.Dy()*scale))
	draw.NearestNeighbor.Scale(dest, dest.Bounds(), img, sr, draw.Src, nil)
	return dest
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
