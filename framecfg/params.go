package framecfg

import (
	"fmt"

	"yuvbox/yuv"
)

// Params are the frame geometry flags shared by the commands.
type Params struct {
	Width           int       `help:"Frame width in pixels, must be even" default:"320" group:"frame"`
	Height          int       `help:"Frame height in pixels, must be even" default:"240" group:"frame"`
	Align           int       `help:"Round plane row pitch up to a multiple of this many bytes" default:"0" group:"frame"`
	Background      string    `help:"Background color as Y,Cb,Cr or black, gray, white" default:"16,128,128" group:"frame"`
	BackgroundColor yuv.Color `kong:"-"`
}

func (p *Params) Check() error {
	switch {
	case p.Width <= 0 || p.Width%2 != 0:
		return fmt.Errorf("invalid frame width: %d", p.Width)
	case p.Height <= 0 || p.Height%2 != 0:
		return fmt.Errorf("invalid frame height: %d", p.Height)
	case p.Align < 0:
		return fmt.Errorf("invalid stride alignment: %d", p.Align)
	}

	var err error
	if p.BackgroundColor, err = yuv.ParseColor(p.Background); err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}
	return nil
}

// NewFrame allocates a frame filled with the background color.
func (p *Params) NewFrame() (*yuv.Planar, error) {
	frame, err := yuv.NewPlanar(p.Width, p.Height, p.Align)
	if err != nil {
		return nil, err
	}
	frame.Fill(p.BackgroundColor)
	return frame, nil
}

// Fits reports whether b lies entirely inside the frame.
func (p *Params) Fits(b yuv.Box) bool {
	return b.X+b.Width <= uint(p.Width) && b.Y+b.Height <= uint(p.Height) &&
		b.X <= uint(p.Width) && b.Y <= uint(p.Height)
}
