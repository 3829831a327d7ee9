package framecfg

import (
	"testing"

	"yuvbox/yuv"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"ok", Params{Width: 320, Height: 240, Background: "16,128,128"}, false},
		{"named", Params{Width: 2, Height: 2, Background: "white"}, false},
		{"odd width", Params{Width: 3, Height: 2, Background: "black"}, true},
		{"zero height", Params{Width: 2, Height: 0, Background: "black"}, true},
		{"negative align", Params{Width: 2, Height: 2, Align: -1, Background: "black"}, true},
		{"bad background", Params{Width: 2, Height: 2, Background: "red"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Check()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewFrame(t *testing.T) {
	p := Params{Width: 4, Height: 2, Align: 8, Background: "30,40,50"}
	if err := p.Check(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frame, err := p.NewFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame.YStride != 8 {
		t.Errorf("expected stride 8, got %d", frame.YStride)
	}
	if got := frame.YCbCr().YCbCrAt(3, 1); got.Y != 30 || got.Cb != 40 || got.Cr != 50 {
		t.Errorf("unexpected background %v", got)
	}
}

func TestFits(t *testing.T) {
	p := Params{Width: 8, Height: 6}
	tests := []struct {
		box  yuv.Box
		want bool
	}{
		{yuv.Box{X: 0, Y: 0, Width: 8, Height: 6}, true},
		{yuv.Box{X: 7, Y: 5, Width: 1, Height: 1}, true},
		{yuv.Box{X: 7, Y: 5, Width: 2, Height: 1}, false},
		{yuv.Box{X: 9, Y: 0, Width: 0, Height: 0}, false},
	}

	for _, tt := range tests {
		if got := p.Fits(tt.box); got != tt.want {
			t.Errorf("%v: expected %v, got %v", tt.box, tt.want, got)
		}
	}
}
