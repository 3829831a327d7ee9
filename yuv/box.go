package yuv

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

var ErrOutOfBounds = errors.New("box out of bounds")

// planes caches a frame's planes and strides for the duration of one draw.
type planes struct {
	y, cb, cr    []byte
	ys, cbs, crs int
}

func planesOf(f Frame) planes {
	return planes{
		y:   f.Plane(0),
		cb:  f.Plane(1),
		cr:  f.Plane(2),
		ys:  f.Stride(0),
		cbs: f.Stride(1),
		crs: f.Stride(2),
	}
}

// set writes one luma sample and the chroma samples of the 2x2 block
// containing it.
func (p *planes) set(c Color, x, y int) {
	p.y[x+y*p.ys] = c.Y
	p.cb[x/2+(y/2)*p.cbs] = c.Cb
	p.cr[x/2+(y/2)*p.crs] = c.Cr
}

// DrawBox fills the rectangle [x, x+width) x [y, y+height) of f with c.
//
// The rectangle must lie inside the frame, and its chroma coordinates inside
// the half resolution chroma planes. No bounds are checked: a box crossing
// the right edge spills into the next row, and one past the last row panics
// on the slice index. Use DrawBoxChecked or DrawRect when the geometry is
// not trusted.
func DrawBox(f Frame, x, y, width, height uint, c Color) {
	if width == 0 || height == 0 {
		return
	}

	p := planesOf(f)
	for j := range height {
		for i := range width {
			p.set(c, int(x+i), int(y+j))
		}
	}
}

// DrawBoxChecked is DrawBox with validation. Nothing is written when the box
// does not fit; the returned error wraps ErrOutOfBounds.
func DrawBoxChecked(f Frame, x, y, width, height uint, c Color) error {
	if width == 0 || height == 0 {
		return nil
	}

	if err := checkBox(f, x, y, width, height); err != nil {
		return err
	}

	DrawBox(f, x, y, width, height, c)
	return nil
}

func checkBox(f Frame, x, y, width, height uint) error {
	x1, y1 := x+width, y+height
	if x1 < x || y1 < y {
		return fmt.Errorf("%w: box %d,%d %dx%d overflows", ErrOutOfBounds, x, y, width, height)
	}

	if s, ok := f.(Sized); ok {
		w, h := s.Size()
		if x1 > uint(max(w, 0)) || y1 > uint(max(h, 0)) {
			return fmt.Errorf("%w: box %d,%d %dx%d in %dx%d frame", ErrOutOfBounds, x, y, width, height, w, h)
		}
	}

	// last pixel of the box, in each plane's own coordinates
	lastX, lastY := x1-1, y1-1
	for n, pos := range [3][2]uint{{lastX, lastY}, {lastX / 2, lastY / 2}, {lastX / 2, lastY / 2}} {
		if !fits(f.Plane(n), f.Stride(n), pos[0], pos[1]) {
			return fmt.Errorf("%w: box %d,%d %dx%d exceeds plane %d", ErrOutOfBounds, x, y, width, height, n)
		}
	}

	return nil
}

func fits(plane []byte, stride int, x, y uint) bool {
	size := uint(len(plane))
	if stride <= 0 || x >= uint(stride) || y >= size {
		return false
	}
	if y > 0 && uint(stride) > size/y {
		return false
	}
	return x+y*uint(stride) < size
}

// DrawRect clips r to the frame and fills what remains with c. It returns
// the rectangle actually drawn, which is empty when r misses the frame.
func DrawRect(f SizedFrame, r image.Rectangle, c Color) image.Rectangle {
	w, h := f.Size()
	r = r.Canon().Intersect(image.Rect(0, 0, w, h))
	if r.Empty() {
		return image.Rectangle{}
	}

	DrawBox(f, uint(r.Min.X), uint(r.Min.Y), uint(r.Dx()), uint(r.Dy()), c)
	return r
}

// Box is a rectangle given by its top-left corner and size.
type Box struct {
	X, Y          uint
	Width, Height uint
}

func (b Box) Rect() image.Rectangle {
	return image.Rect(int(b.X), int(b.Y), int(b.X+b.Width), int(b.Y+b.Height))
}

func (b Box) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", b.X, b.Y, b.Width, b.Height)
}

// ParseBox reads a box written as "x,y,width,height".
func ParseBox(s string) (Box, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return Box{}, fmt.Errorf("invalid box %q, should be x,y,width,height", s)
	}

	var vals [4]uint
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 31)
		if err != nil {
			return Box{}, fmt.Errorf("could not read box field %d of %q: %w", i, s, err)
		}
		vals[i] = uint(v)
	}

	return Box{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}
