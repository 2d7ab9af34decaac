// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

// DefaultVal marks a header or thtx field that a text-spec author left
// unspecified, asking ApplyDefaults to derive it from the entry's source
// image. It mirrors thanm.c's use of an out-of-range sentinel (-1 cast to
// unsigned) for the same purpose.
const DefaultVal = ^uint32(0)

// DefaultVal16 is DefaultVal's 16-bit-field counterpart: width/height/thtx
// dimensions are u16 on the wire, so their sentinel is the 16-bit all-ones
// value, not a truncation of the 32-bit one.
const DefaultVal16 = ^uint16(0)

// nextPow2 returns the smallest power of two >= n, or 1 if n == 0.
func nextPow2(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	p := uint32(1)
	for p < n {
		p <<= 1
	}
	return p
}

// ApplyDefaults fills DefaultVal-marked fields of e from source's decoded
// image dimensions, per spec.md §4.6: width/height take the image's exact
// pixel dimensions, while the thtx sub-header's w/h are rounded up to the
// next power of two (the texture atlas convention the runtime expects).
// source must be a PNG or JPEG payload; any other format is ErrNotImage.
func ApplyDefaults(e *Entry, source []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(source))
	if err != nil {
		return ErrNotImage
	}

	w, h := uint16(cfg.Width), uint16(cfg.Height)
	if e.Header.Width == DefaultVal16 {
		e.Header.Width = w
	}
	if e.Header.Height == DefaultVal16 {
		e.Header.Height = h
	}

	if e.Thtx == nil {
		return nil
	}
	if e.Thtx.W == DefaultVal16 {
		e.Thtx.W = uint16(nextPow2(uint32(cfg.Width)))
	}
	if e.Thtx.H == DefaultVal16 {
		e.Thtx.H = uint16(nextPow2(uint32(cfg.Height)))
	}
	if e.Thtx.Size == DefaultVal {
		e.Thtx.Size = uint32(e.Thtx.W) * uint32(e.Thtx.H) * formatBpp(e.Thtx.Format)
	}
	return nil
}
