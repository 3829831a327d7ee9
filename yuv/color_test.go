package yuv

import (
	"image/color"
	"testing"
)

func TestMakeColor(t *testing.T) {
	c := MakeColor(255, 128, 64)
	if c.Y != 255 || c.Cb != 128 || c.Cr != 64 {
		t.Errorf("expected 255,128,64, got %v", c)
	}
	if c != (Color{Y: 255, Cb: 128, Cr: 64}) {
		t.Errorf("expected structural equality, got %#v", c)
	}
}

func TestColorRGBA(t *testing.T) {
	c := MakeColor(235, 128, 128)
	r, g, b, a := c.RGBA()
	wr, wg, wb, wa := color.YCbCr{Y: 235, Cb: 128, Cr: 128}.RGBA()
	if r != wr || g != wg || b != wb || a != wa {
		t.Errorf("expected %d,%d,%d,%d, got %d,%d,%d,%d", wr, wg, wb, wa, r, g, b, a)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "200,10,20", want: MakeColor(200, 10, 20)},
		{in: " 16, 128 ,128", want: MakeColor(16, 128, 128)},
		{in: "White", want: White},
		{in: "grey", want: Gray},
		{in: "black", want: Black},
		{in: "256,0,0", wantErr: true},
		{in: "1,2", wantErr: true},
		{in: "1,2,3,4", wantErr: true},
		{in: "#ffffff", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
