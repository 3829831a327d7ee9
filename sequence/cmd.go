package sequence

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"

	"yuvbox/framecfg"
	"yuvbox/output"
	"yuvbox/parallel"
	"yuvbox/yuv"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	framecfg.Params

	Frames  int    `help:"Number of frames to render" default:"60"`
	Box     string `help:"Box position in the first frame as x,y,width,height" default:"0,0,32,32"`
	DX      int    `name:"dx" help:"Horizontal box movement per frame, wrapping around the frame" default:"4"`
	DY      int    `name:"dy" help:"Vertical box movement per frame, wrapping around the frame" default:"0"`
	Color   string `help:"Box color in the first frame as Y,Cb,Cr or black, gray, white" default:"235,128,128" group:"color"`
	FadeTo  string `help:"Box color in the last frame. Components are interpolated linearly" group:"color"`
	Workers int    `help:"Number of frames rendered concurrently, 0 for one per CPU" default:"0"`
	Out     string `help:"Destination file for the raw I420 stream" default:"sequence.yuv" type:"path"`
	Force   bool   `help:"Overwrite an existing destination" default:"false"`

	StartBox  yuv.Box   `kong:"-"`
	FromColor yuv.Color `kong:"-"`
	ToColor   yuv.Color `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if err := c.Params.Check(); err != nil {
		return err
	}

	if c.Frames < 1 {
		return fmt.Errorf("invalid number of frames: %d", c.Frames)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid number of workers: %d", c.Workers)
	}

	var err error
	if c.StartBox, err = yuv.ParseBox(c.Box); err != nil {
		return err
	}
	if !c.Params.Fits(c.StartBox) {
		return fmt.Errorf("box %s does not fit a %dx%d frame", c.StartBox, c.Width, c.Height)
	}

	if c.FromColor, err = yuv.ParseColor(c.Color); err != nil {
		return err
	}
	c.ToColor = c.FromColor
	if c.FadeTo != "" {
		if c.ToColor, err = yuv.ParseColor(c.FadeTo); err != nil {
			return fmt.Errorf("invalid fade color: %w", err)
		}
	}

	return nil
}

func (c *CLICmd) Run(logger *slog.Logger) error {
	workers := c.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool := parallel.Start(workers)
	defer pool.Close()

	// one frame per worker, reused for every batch
	batch := make([]*yuv.Planar, min(workers, c.Frames))
	for i := range batch {
		var err error
		if batch[i], err = yuv.NewPlanar(c.Width, c.Height, c.Align); err != nil {
			return fmt.Errorf("could not allocate frame: %w", err)
		}
	}

	var written int64
	err := output.Write(c.Out, c.Force, func(w io.Writer) error {
		for start := 0; start < c.Frames; start += len(batch) {
			n := min(len(batch), c.Frames-start)
			for k := range n {
				frame, index := batch[k], start+k
				pool.Go(func() { c.render(frame, index) })
			}
			pool.Flush()

			for k := range n {
				m, err := batch[k].WriteTo(w)
				written += m
				if err != nil {
					return fmt.Errorf("could not write frame %d: %w", start+k, err)
				}
			}
			logger.Debug("batch written", "first", start, "frames", n)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not save sequence: %w", err)
	}

	logger.Info("stats", "frames", c.Frames, "bytes", written, "workers", workers, "file", c.Out,
		"width", c.Width, "height", c.Height)
	return nil
}

func (c *CLICmd) render(frame *yuv.Planar, index int) {
	frame.Fill(c.BackgroundColor)
	b := c.boxAt(index)
	yuv.DrawBox(frame, b.X, b.Y, b.Width, b.Height, c.colorAt(index))
}

// boxAt moves the start box by index steps. Positions wrap within the range
// that keeps the whole box inside the frame.
func (c *CLICmd) boxAt(index int) yuv.Box {
	b := c.StartBox
	b.X = wrap(int(b.X)+index*c.DX, c.Width-int(b.Width)+1)
	b.Y = wrap(int(b.Y)+index*c.DY, c.Height-int(b.Height)+1)
	return b
}

func wrap(pos, span int) uint {
	pos %= span
	if pos < 0 {
		pos += span
	}
	return uint(pos)
}

func (c *CLICmd) colorAt(index int) yuv.Color {
	if c.Frames == 1 || c.FromColor == c.ToColor {
		return c.FromColor
	}

	t := float64(index) / float64(c.Frames-1)
	return yuv.MakeColor(
		lerp(c.FromColor.Y, c.ToColor.Y, t),
		lerp(c.FromColor.Cb, c.ToColor.Cb, t),
		lerp(c.FromColor.Cr, c.ToColor.Cr, t),
	)
}

func lerp(from, to uint8, t float64) uint8 {
	return uint8(math.Round(float64(from) + (float64(to)-float64(from))*t))
}
