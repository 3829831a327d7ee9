package yuv

import (
	"bytes"
	"errors"
	"image"
	"io"
	"testing"
)

func TestNewPlanar(t *testing.T) {
	tests := []struct {
		name        string
		w, h, align int
		wantYStride int
		wantCStride int
		wantErr     error
		wantAnyErr  bool
	}{
		{name: "tight", w: 6, h: 4, wantYStride: 6, wantCStride: 3},
		{name: "aligned", w: 6, h: 4, align: 16, wantYStride: 16, wantCStride: 16},
		{name: "already aligned", w: 32, h: 2, align: 16, wantYStride: 32, wantCStride: 16},
		{name: "odd width", w: 5, h: 4, wantErr: ErrOddSize},
		{name: "odd height", w: 4, h: 3, wantErr: ErrOddSize},
		{name: "zero", w: 0, h: 4, wantAnyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewPlanar(tt.w, tt.h, tt.align)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			case tt.wantAnyErr:
				if err == nil {
					t.Fatal("expected error")
				}
				return
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}

			if f.YStride != tt.wantYStride || f.CbStride != tt.wantCStride || f.CrStride != tt.wantCStride {
				t.Errorf("expected strides %d/%d, got %d/%d/%d",
					tt.wantYStride, tt.wantCStride, f.YStride, f.CbStride, f.CrStride)
			}
			if len(f.Y) != tt.wantYStride*tt.h || len(f.Cb) != tt.wantCStride*tt.h/2 {
				t.Errorf("unexpected plane sizes %d/%d", len(f.Y), len(f.Cb))
			}
			if w, h := f.Size(); w != tt.w || h != tt.h {
				t.Errorf("expected size %dx%d, got %dx%d", tt.w, tt.h, w, h)
			}
		})
	}
}

func TestFromYCbCr(t *testing.T) {
	img := image.NewYCbCr(image.Rect(0, 0, 8, 4), image.YCbCrSubsampleRatio420)
	f, err := FromYCbCr(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	DrawBox(f, 2, 2, 2, 2, MakeColor(90, 80, 70))

	got := img.YCbCrAt(3, 3)
	if got.Y != 90 || got.Cb != 80 || got.Cr != 70 {
		t.Errorf("expected draw through shared planes, got %v", got)
	}
	if other := img.YCbCrAt(0, 0); other.Y != 0 || other.Cb != 0 {
		t.Errorf("unexpected write outside box: %v", other)
	}
}

func TestFromYCbCrSubImage(t *testing.T) {
	img := image.NewYCbCr(image.Rect(0, 0, 8, 8), image.YCbCrSubsampleRatio420)
	sub := img.SubImage(image.Rect(4, 2, 8, 6)).(*image.YCbCr)

	f, err := FromYCbCr(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w, h := f.Size(); w != 4 || h != 4 {
		t.Fatalf("expected 4x4, got %dx%d", w, h)
	}

	DrawBox(f, 0, 0, 1, 1, MakeColor(1, 2, 3))
	if got := img.YCbCrAt(4, 2); got.Y != 1 || got.Cb != 2 || got.Cr != 3 {
		t.Errorf("expected origin of sub image to map to 4,2, got %v", got)
	}
}

func TestFromYCbCrRejects(t *testing.T) {
	img422 := image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio422)
	if _, err := FromYCbCr(img422); !errors.Is(err, ErrSubsampleRatio) {
		t.Errorf("expected ErrSubsampleRatio, got %v", err)
	}

	odd := image.NewYCbCr(image.Rect(0, 0, 5, 4), image.YCbCrSubsampleRatio420)
	if _, err := FromYCbCr(odd); !errors.Is(err, ErrOddSize) {
		t.Errorf("expected ErrOddSize, got %v", err)
	}
}

func TestPlanarYCbCr(t *testing.T) {
	f := newFrame(t, 4, 2, 8)
	f.Fill(MakeColor(10, 20, 30))

	img := f.YCbCr()
	if img.Rect != image.Rect(0, 0, 4, 2) {
		t.Fatalf("unexpected bounds %v", img.Rect)
	}
	if got := img.YCbCrAt(3, 1); got.Y != 10 || got.Cb != 20 || got.Cr != 30 {
		t.Errorf("unexpected pixel %v", got)
	}

	// mismatched chroma strides force a copy
	f.Cr = make([]byte, 2)
	f.CrStride = 2
	f.Cr[1] = 99
	img = f.YCbCr()
	if got := img.YCbCrAt(2, 0); got.Cb != 20 || got.Cr != 99 {
		t.Errorf("unexpected copied pixel %v", got)
	}
}

func TestWriteTo(t *testing.T) {
	f := newFrame(t, 4, 2, 8)
	DrawBox(f, 0, 0, 2, 2, MakeColor(1, 2, 3))
	DrawBox(f, 2, 0, 2, 2, MakeColor(4, 5, 6))

	var buf bytes.Buffer
	n, err := f.WriteTo(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []byte{
		1, 1, 4, 4,
		1, 1, 4, 4,
		2, 5,
		3, 6,
	}
	if n != int64(len(want)) || !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("expected %v (%d bytes), got %v (%d bytes)", want, len(want), buf.Bytes(), n)
	}
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

func TestWriteToShort(t *testing.T) {
	f := newFrame(t, 4, 2, 0)
	if _, err := f.WriteTo(shortWriter{}); !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("expected io.ErrShortWrite, got %v", err)
	}
}

func TestFill(t *testing.T) {
	f := newFrame(t, 2, 2, 4)
	f.Fill(Gray)

	if want := []byte{125, 125, 0, 0, 125, 125, 0, 0}; !bytes.Equal(f.Y, want) {
		t.Errorf("expected %v, got %v", want, f.Y)
	}
}
