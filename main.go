package main

import (
	"log/slog"
	"os"

	"yuvbox/sequence"
	"yuvbox/still"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Verbose bool `help:"Log every drawn box and written batch" short:"v"`

	Still    still.CLICmd    `cmd:"" help:"Draw boxes into a single YUV 4:2:0 frame and save it"`
	Sequence sequence.CLICmd `cmd:"" help:"Render a moving box as a raw I420 frame sequence"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("yuvbox"),
		kong.Description("Solid box drawing for planar YUV 4:2:0 frames."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	err := kctx.Run(logger)
	kctx.FatalIfErrorf(err)
}
