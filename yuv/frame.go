package yuv

import (
	"errors"
	"fmt"
	"image"
	"io"
)

var (
	ErrOddSize        = errors.New("frame dimensions must be even")
	ErrSubsampleRatio = errors.New("unsupported chroma subsample ratio")
)

// Frame is a planar YUV 4:2:0 image. Plane 0 holds luma at full resolution,
// planes 1 and 2 hold Cb and Cr at half resolution in both axes. Stride is
// the row pitch of a plane in bytes and may exceed the logical row width.
type Frame interface {
	Plane(n int) []byte
	Stride(n int) int
}

// Sized is implemented by frames that know their logical luma dimensions.
type Sized interface {
	Size() (width, height int)
}

type SizedFrame interface {
	Frame
	Sized
}

// Planar is a Frame owning its three planes.
type Planar struct {
	Y, Cb, Cr []byte

	YStride  int
	CbStride int
	CrStride int

	Width  int
	Height int
}

var _ SizedFrame = &Planar{}

// NewPlanar allocates a zeroed frame. Row pitches are rounded up to a
// multiple of align; align below 2 packs rows tightly.
func NewPlanar(width, height, align int) (*Planar, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if width%2 != 0 || height%2 != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrOddSize, width, height)
	}

	yStride := alignUp(width, align)
	cStride := alignUp(width/2, align)

	return &Planar{
		Y:        make([]byte, yStride*height),
		Cb:       make([]byte, cStride*height/2),
		Cr:       make([]byte, cStride*height/2),
		YStride:  yStride,
		CbStride: cStride,
		CrStride: cStride,
		Width:    width,
		Height:   height,
	}, nil
}

func alignUp(n, align int) int {
	if align < 2 {
		return n
	}
	return (n + align - 1) / align * align
}

// FromYCbCr wraps the planes of a 4:2:0 image without copying them. Writes
// through the returned frame are visible in img.
func FromYCbCr(img *image.YCbCr) (*Planar, error) {
	if img.SubsampleRatio != image.YCbCrSubsampleRatio420 {
		return nil, fmt.Errorf("%w: %s", ErrSubsampleRatio, img.SubsampleRatio)
	}

	r := img.Rect
	if r.Empty() {
		return nil, fmt.Errorf("invalid frame size %dx%d", r.Dx(), r.Dy())
	}
	if r.Dx()%2 != 0 || r.Dy()%2 != 0 || r.Min.X%2 != 0 || r.Min.Y%2 != 0 {
		return nil, fmt.Errorf("%w: %v", ErrOddSize, r)
	}

	yi := img.YOffset(r.Min.X, r.Min.Y)
	ci := img.COffset(r.Min.X, r.Min.Y)
	return &Planar{
		Y:        img.Y[yi:],
		Cb:       img.Cb[ci:],
		Cr:       img.Cr[ci:],
		YStride:  img.YStride,
		CbStride: img.CStride,
		CrStride: img.CStride,
		Width:    r.Dx(),
		Height:   r.Dy(),
	}, nil
}

func (p *Planar) Plane(n int) []byte {
	switch n {
	case 0:
		return p.Y
	case 1:
		return p.Cb
	case 2:
		return p.Cr
	}
	panic(fmt.Sprintf("yuv: plane %d out of range", n))
}

func (p *Planar) Stride(n int) int {
	switch n {
	case 0:
		return p.YStride
	case 1:
		return p.CbStride
	case 2:
		return p.CrStride
	}
	panic(fmt.Sprintf("yuv: plane %d out of range", n))
}

func (p *Planar) Size() (int, int) {
	return p.Width, p.Height
}

func (p *Planar) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// Fill sets every logical pixel of the frame to c. Padding bytes are left
// alone.
func (p *Planar) Fill(c Color) {
	fillPlane(p.Y, p.YStride, p.Width, p.Height, c.Y)
	fillPlane(p.Cb, p.CbStride, p.Width/2, p.Height/2, c.Cb)
	fillPlane(p.Cr, p.CrStride, p.Width/2, p.Height/2, c.Cr)
}

func fillPlane(plane []byte, stride, width, rows int, v byte) {
	for row := range rows {
		line := plane[row*stride : row*stride+width]
		for i := range line {
			line[i] = v
		}
	}
}

// YCbCr returns the frame as an image.YCbCr. The planes are shared when both
// chroma planes use the same stride, otherwise they are copied.
func (p *Planar) YCbCr() *image.YCbCr {
	if p.CbStride == p.CrStride {
		return &image.YCbCr{
			Y:              p.Y,
			Cb:             p.Cb,
			Cr:             p.Cr,
			YStride:        p.YStride,
			CStride:        p.CbStride,
			SubsampleRatio: image.YCbCrSubsampleRatio420,
			Rect:           p.Bounds(),
		}
	}

	img := image.NewYCbCr(p.Bounds(), image.YCbCrSubsampleRatio420)
	for row := range p.Height {
		copy(img.Y[row*img.YStride:], p.Y[row*p.YStride:row*p.YStride+p.Width])
	}
	cw := p.Width / 2
	for row := range p.Height / 2 {
		copy(img.Cb[row*img.CStride:], p.Cb[row*p.CbStride:row*p.CbStride+cw])
		copy(img.Cr[row*img.CStride:], p.Cr[row*p.CrStride:row*p.CrStride+cw])
	}
	return img
}

// WriteTo writes the frame as packed I420: all luma rows, then Cb rows, then
// Cr rows, without stride padding.
func (p *Planar) WriteTo(w io.Writer) (int64, error) {
	var total int64
	planes := []struct {
		name   string
		data   []byte
		stride int
		width  int
		rows   int
	}{
		{"Y", p.Y, p.YStride, p.Width, p.Height},
		{"Cb", p.Cb, p.CbStride, p.Width / 2, p.Height / 2},
		{"Cr", p.Cr, p.CrStride, p.Width / 2, p.Height / 2},
	}

	for _, pl := range planes {
		n, err := writePlane(w, pl.data, pl.stride, pl.width, pl.rows)
		total += n
		if err != nil {
			return total, fmt.Errorf("could not write %s plane: %w", pl.name, err)
		}
	}

	return total, nil
}

func writePlane(w io.Writer, plane []byte, stride, width, rows int) (int64, error) {
	if stride == width {
		return writeBytes(w, plane[:width*rows])
	}

	var total int64
	for row := range rows {
		n, err := writeBytes(w, plane[row*stride:row*stride+width])
		total += n
		if err != nil {
			return total, fmt.Errorf("row %d: %w", row, err)
		}
	}
	return total, nil
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	} else if n != len(b) {
		return int64(n), fmt.Errorf("wrote only %d/%d bytes: %w", n, len(b), io.ErrShortWrite)
	}
	return int64(n), nil
}
