// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/draw"
	"image/png"

	"github.com/gabriel-vasile/mimetype"
)

// DecodeTexture turns one entry's thtx payload into a canonical NRGBA
// image. For wire versions >= 19 the payload is a verbatim PNG or JPEG
// file (sniffed via mimetype rather than trusted blindly, since thtx's
// format/size fields are meaningless on those wire versions); for earlier
// wire versions the payload is a raw pixel buffer in t.Format and is
// unpacked by the matching pixel-format converter.
func DecodeTexture(t *ThtxHeader, data []byte, wireVersion int) (*image.NRGBA, error) {
	if IsTH19OrNewer(wireVersion) {
		mt := mimetype.Detect(data)
		if !mt.Is("image/png") && !mt.Is("image/jpeg") {
			return nil, ErrNotImage
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, ErrNotImage
		}
		out := image.NewNRGBA(img.Bounds())
		draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
		return out, nil
	}
	return unpackPixels(data, int(t.W), int(t.H), t.Format)
}

// EncodeTexture is the inverse of DecodeTexture. On wire versions >= 19 it
// always emits PNG (thanm.c's writer does the same, regardless of the
// source payload's original container, since re-compression of an
// already-lossy JPEG would compound artifacts).
func EncodeTexture(img *image.NRGBA, format uint16, wireVersion int) ([]byte, uint32, error) {
	if IsTH19OrNewer(wireVersion) {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, 0, err
		}
		return buf.Bytes(), uint32(buf.Len()), nil
	}
	data, err := packPixels(img, format)
	if err != nil {
		return nil, 0, err
	}
	return data, uint32(len(data)), nil
}

// ComposeChain draws every entry in chain into one canvas at its header's
// (X, Y) offset, for the case where a single rt_textureslot is assembled
// from several low/high-resolution or partial-coverage sub-entries.
// Entries are drawn in order, so later entries paint over earlier ones in
// any overlap.
func ComposeChain(chain []*Entry, wireVersion int) (*image.NRGBA, error) {
	var maxW, maxH int
	for _, e := range chain {
		w := int(e.Header.X) + int(e.Header.Width)
		h := int(e.Header.Y) + int(e.Header.Height)
		if w > maxW {
			maxW = w
		}
		if h > maxH {
			maxH = h
		}
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, maxW, maxH))

	firstFormat := uint16(0)
	for i, e := range chain {
		if e.Thtx == nil {
			continue
		}
		if i == 0 {
			firstFormat = e.Thtx.Format
		} else if e.Thtx.Format != firstFormat && !IsTH19OrNewer(wireVersion) {
			return nil, ErrChainFormatMismatch
		}
		img, err := DecodeTexture(e.Thtx, e.Data, wireVersion)
		if err != nil {
			return nil, err
		}
		origin := image.Pt(int(e.Header.X), int(e.Header.Y))
		draw.Draw(canvas, image.Rectangle{Min: origin, Max: origin.Add(img.Bounds().Size())}, img, image.Point{}, draw.Src)
	}
	return canvas, nil
}

// DecomposeChain is the inverse of ComposeChain: it crops canvas to each
// entry's declared (X, Y, Width, Height) rectangle and re-encodes it as
// that entry's texture payload, in place.
func DecomposeChain(canvas *image.NRGBA, chain []*Entry, wireVersion int) error {
	for _, e := range chain {
		if e.Thtx == nil {
			continue
		}
		rect := image.Rect(int(e.Header.X), int(e.Header.Y),
			int(e.Header.X)+int(e.Header.Width), int(e.Header.Y)+int(e.Header.Height))
		sub := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		draw.Draw(sub, sub.Bounds(), canvas, rect.Min, draw.Src)

		data, size, err := EncodeTexture(sub, e.Thtx.Format, wireVersion)
		if err != nil {
			return err
		}
		e.Data = data
		e.Thtx.Size = size
		e.Thtx.W = uint16(rect.Dx())
		e.Thtx.H = uint16(rect.Dy())
	}
	return nil
}

// unpackPixels converts a raw pixel buffer in one of the thtx pixel
// formats into a canonical NRGBA image.
func unpackPixels(data []byte, w, h int, format uint16) (*image.NRGBA, error) {
	bpp := int(formatBpp(format))
	if bpp == 0 {
		return nil, ErrNotImage
	}
	if len(data) < w*h*bpp {
		return nil, ErrOutsideBoundary
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := data[(y*w+x)*bpp : (y*w+x)*bpp+bpp]
			r, g, b, a := unpackPixel(src, format)
			o := out.PixOffset(x, y)
			out.Pix[o] = r
			out.Pix[o+1] = g
			out.Pix[o+2] = b
			out.Pix[o+3] = a
		}
	}
	return out, nil
}

func unpackPixel(src []byte, format uint16) (r, g, b, a byte) {
	switch format {
	case FormatBGRA8888:
		return src[2], src[1], src[0], src[3]
	case FormatRGBA8888:
		return src[0], src[1], src[2], src[3]
	case FormatRGB565:
		v := binary.LittleEndian.Uint16(src)
		r5 := byte(v>>11) & 0x1f
		g6 := byte(v>>5) & 0x3f
		b5 := byte(v) & 0x1f
		return expand5(r5), expand6(g6), expand5(b5), 0xff
	case FormatARGB4444:
		v := binary.LittleEndian.Uint16(src)
		a4 := byte(v>>12) & 0xf
		r4 := byte(v>>8) & 0xf
		g4 := byte(v>>4) & 0xf
		b4 := byte(v) & 0xf
		return expand4(r4), expand4(g4), expand4(b4), expand4(a4)
	case FormatGRAY8:
		return src[0], src[0], src[0], 0xff
	default:
		return 0, 0, 0, 0
	}
}

// packPixels is the inverse of unpackPixels.
func packPixels(img *image.NRGBA, format uint16) ([]byte, error) {
	bpp := int(formatBpp(format))
	if bpp == 0 {
		return nil, ErrNotImage
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h*bpp)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			r, g, bl, a := img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3]
			dst := out[(y*w+x)*bpp : (y*w+x)*bpp+bpp]
			packPixel(dst, format, r, g, bl, a)
		}
	}
	return out, nil
}

func packPixel(dst []byte, format uint16, r, g, b, a byte) {
	switch format {
	case FormatBGRA8888:
		dst[0], dst[1], dst[2], dst[3] = b, g, r, a
	case FormatRGBA8888:
		dst[0], dst[1], dst[2], dst[3] = r, g, b, a
	case FormatRGB565:
		v := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
		binary.LittleEndian.PutUint16(dst, v)
	case FormatARGB4444:
		v := uint16(a>>4)<<12 | uint16(r>>4)<<8 | uint16(g>>4)<<4 | uint16(b>>4)
		binary.LittleEndian.PutUint16(dst, v)
	case FormatGRAY8:
		dst[0] = r
	}
}

func expand5(v byte) byte { return byte(uint16(v)*255/31) }
func expand6(v byte) byte { return byte(uint16(v)*255/63) }
func expand4(v byte) byte { return byte(uint16(v)*255/15) }
