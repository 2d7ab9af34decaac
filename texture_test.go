// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import (
	"image"
	"image/color"
	"testing"
)

func TestPackUnpackPixelsRGBA8888(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 128})
	img.Set(0, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	img.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	data, err := packPixels(img, FormatRGBA8888)
	if err != nil {
		t.Fatal(err)
	}
	got, err := unpackPixels(data, 2, 2, FormatRGBA8888)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			want := img.NRGBAAt(x, y)
			have := got.NRGBAAt(x, y)
			if want != have {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, have, want)
			}
		}
	}
}

func TestPackUnpackPixelsGray8(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 77, G: 77, B: 77, A: 255})
	data, err := packPixels(img, FormatGRAY8)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 1 || data[0] != 77 {
		t.Fatalf("packed gray8 = %v, want [77]", data)
	}
	got, err := unpackPixels(data, 1, 1, FormatGRAY8)
	if err != nil {
		t.Fatal(err)
	}
	p := got.NRGBAAt(0, 0)
	if p.R != 77 || p.G != 77 || p.B != 77 || p.A != 255 {
		t.Fatalf("unpacked gray8 = %+v", p)
	}
}

func TestUnpackPixelsRejectsUnknownFormat(t *testing.T) {
	if _, err := unpackPixels([]byte{1, 2, 3, 4}, 1, 1, 0xff); err != ErrNotImage {
		t.Fatalf("got %v, want ErrNotImage", err)
	}
}

func TestComposeChainOffsetsByHeaderPosition(t *testing.T) {
	mkEntry := func(x, y int32, w, h uint16, val byte) *Entry {
		img := image.NewNRGBA(image.Rect(0, 0, int(w), int(h)))
		for i := range img.Pix {
			img.Pix[i] = val
		}
		data, size, _ := EncodeTexture(img, FormatRGBA8888, 0)
		return &Entry{
			Header: &Header{X: x, Y: y, Width: w, Height: h},
			Thtx:   &ThtxHeader{Format: FormatRGBA8888, W: w, H: h, Size: size},
			Data:   data,
		}
	}

	chain := []*Entry{
		mkEntry(0, 0, 2, 2, 0x11),
		mkEntry(2, 0, 2, 2, 0x22),
	}
	canvas, err := ComposeChain(chain, 0)
	if err != nil {
		t.Fatal(err)
	}
	if canvas.Bounds().Dx() != 4 || canvas.Bounds().Dy() != 2 {
		t.Fatalf("canvas bounds = %v, want 4x2", canvas.Bounds())
	}
	if canvas.NRGBAAt(0, 0).R != 0x11 {
		t.Fatalf("left half = %+v, want R=0x11", canvas.NRGBAAt(0, 0))
	}
	if canvas.NRGBAAt(3, 0).R != 0x22 {
		t.Fatalf("right half = %+v, want R=0x22", canvas.NRGBAAt(3, 0))
	}
}
