package still

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"yuvbox/framecfg"
	"yuvbox/output"
	"yuvbox/palette"
	"yuvbox/yuv"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	framecfg.Params

	Box     []string `help:"Box to draw as x,y,width,height. Repeat for more boxes" sep:"none" required:""`
	Color   string   `help:"Box color as Y,Cb,Cr or black, gray, white" default:"235,128,128" group:"color"`
	Palette string   `help:"Palette name (bw, gray4, smpte) or PAL file in RIFF format. Boxes cycle through its colors" group:"color"`
	Base    string   `help:"Picture scaled to the frame size and used instead of the background color"`
	Mode    string   `help:"How boxes are bounded: checked fails on boxes outside the frame, clip draws what is inside, raw trusts the geometry" enum:"checked,clip,raw" default:"checked"`
	Format  string   `help:"Output format. yuv writes packed I420" enum:"yuv,png,jpeg,gif,bmp,tiff" default:"png"`
	Scale   int      `help:"Integer upscale factor for picture formats" default:"1"`
	Out     string   `help:"Destination file" default:"frame" type:"path"`
	Force   bool     `help:"Overwrite an existing destination" default:"false"`

	Boxes  []yuv.Box   `kong:"-"`
	Colors []yuv.Color `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if err := c.Params.Check(); err != nil {
		return err
	}

	c.Boxes = c.Boxes[:0]
	for _, s := range c.Box {
		b, err := yuv.ParseBox(s)
		if err != nil {
			return err
		}
		if c.Mode == "raw" && !c.Params.Fits(b) {
			return fmt.Errorf("box %s does not fit a %dx%d frame", b, c.Width, c.Height)
		}
		c.Boxes = append(c.Boxes, b)
	}

	if c.Palette != "" {
		pal, err := palette.LoadPalette(c.Palette)
		if err != nil {
			return err
		}
		c.Colors = palette.YUV(pal)
	} else {
		col, err := yuv.ParseColor(c.Color)
		if err != nil {
			return err
		}
		c.Colors = []yuv.Color{col}
	}

	if c.Scale < 1 {
		return fmt.Errorf("invalid scale: %d", c.Scale)
	}

	if filepath.Ext(c.Out) == "" {
		c.Out = fmt.Sprintf("%s.%s", c.Out, c.Format)
	}

	return nil
}

func (c *CLICmd) Run(logger *slog.Logger) error {
	frame, err := c.NewFrame()
	if err != nil {
		return fmt.Errorf("could not allocate frame: %w", err)
	}

	if c.Base != "" {
		if err := loadBase(logger.With("file", c.Base), frame, c.Base); err != nil {
			return err
		}
	}

	var drawn, skipped int
	for i, b := range c.Boxes {
		col := c.Colors[i%len(c.Colors)]
		boxLog := logger.With("box", b.String(), "color", col.String())

		switch c.Mode {
		case "checked":
			if err := yuv.DrawBoxChecked(frame, b.X, b.Y, b.Width, b.Height, col); err != nil {
				return fmt.Errorf("could not draw box %d: %w", i, err)
			}
		case "clip":
			r := yuv.DrawRect(frame, b.Rect(), col)
			if r.Empty() {
				skipped++
				boxLog.Warn("box outside frame, skipped")
				continue
			}
			boxLog = boxLog.With("clipped", r.String())
		case "raw":
			yuv.DrawBox(frame, b.X, b.Y, b.Width, b.Height, col)
		}
		drawn++
		boxLog.Debug("box drawn")
	}

	err = output.Write(c.Out, c.Force, func(w io.Writer) error {
		return encode(w, frame, c.Format, c.Scale)
	})
	if err != nil {
		return fmt.Errorf("could not save frame: %w", err)
	}

	logger.Info("stats", "boxes", drawn, "skipped", skipped, "file", c.Out,
		"format", strings.ToUpper(c.Format), "width", c.Width, "height", c.Height)
	return nil
}
