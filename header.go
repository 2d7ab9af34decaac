// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import (
	"bytes"
	"encoding/binary"
)

// headerWireSize is the fixed on-disk size, in bytes, of both the early and
// the v>=7 header layouts. The two layouts reorder fields but keep the
// same overall size.
const headerWireSize = 56

// Header is the canonical, layout-independent in-memory representation of
// an entry's header. decodeHeader folds either on-disk layout into this
// shape; encodeHeader projects it back out to whichever layout Version
// requires.
type Header struct {
	// Version is the version discriminant; must be one of {0,2,3,4,7,8}.
	Version uint16

	// HasData is true iff the entry carries a thtx sub-header and texture
	// payload.
	HasData bool

	Sprites uint16
	Scripts uint16

	// RTTextureSlot is only meaningful for the early (pre-v7) layout; it is
	// always zero once a header has been identified as v>=7 on the wire.
	RTTextureSlot uint32

	Format uint16

	// ColorKey is only meaningful for the early (pre-v7) layout.
	ColorKey uint16

	Width, Height uint16

	NameOffset uint32
	X, Y       int32

	MemoryPriority uint32
	ThtxOffset     uint32
	NextOffset     uint32

	// LowResScale is only ever nonzero for Version==8.
	LowResScale uint16

	// JpegQuality is only ever nonzero for wire versions >= 19.
	JpegQuality uint32

	// WMax, HMax are only ever nonzero for wire versions >= 19.
	WMax, HMax uint16

	// wasV7Wire records which on-disk layout this header was read from, so
	// encodeHeader round-trips it byte-for-byte.
	wasV7Wire bool

	// v7Reserved carries the v7-layout reserved span (bytes 6..12) through
	// a decode/encode cycle verbatim. It is unused data on the wire, but
	// must be replayed rather than zeroed: decodeHeader's own layout
	// heuristic inspects bytes 8..12 of whatever gets written back out, so
	// zeroing this span on encode would make a re-decode of our own output
	// misdetect a v7 entry as early-layout.
	v7Reserved [6]byte
}

// earlyWireHeader is the pre-v7 on-disk layout.
type earlyWireHeader struct {
	Version        uint16
	HasData        uint16
	Sprites        uint16
	Scripts        uint16
	RTTextureSlot  uint32
	Format         uint16
	ColorKey       uint16
	Width          uint16
	Height         uint16
	NameOffset     uint32
	X              int32
	Y              int32
	MemoryPriority uint32
	ThtxOffset     uint32
	NextOffset     uint32
	LowResScale    uint16
	Pad0           uint16
	JpegQuality    uint32
	WMax           uint16
	HMax           uint16
}

// v7WireHeader is the on-disk layout used starting with the version that
// replaced rt_textureslot/colorkey with a dedicated reserved span and
// moved sprites/scripts later in the struct. decodeHeader picks this
// layout whenever bytes 8..12 (RTTextureSlot under the early reading)
// come back nonzero.
type v7WireHeader struct {
	Version        uint16
	HasData        uint16
	Format         uint16
	Reserved1      uint32
	Reserved2      uint16
	Width          uint16
	Height         uint16
	NameOffset     uint32
	X              int32
	Y              int32
	Sprites        uint16
	Scripts        uint16
	MemoryPriority uint32
	ThtxOffset     uint32
	NextOffset     uint32
	LowResScale    uint16
	Pad0           uint16
	JpegQuality    uint32
	WMax           uint16
	HMax           uint16
}

// decodeHeader reads a header at the given offset, applying the v>=7
// reorder heuristic from spec.md §3/§4.2.a: if rt_textureslot != 0 or
// scripts > 65535, the entry is v>=7 and must be reinterpreted under the
// v7 layout, matching thanm.c's anm_read_file condition for running
// convert_header_to_old. The scripts > 65535 half never fires on a
// 16-bit Scripts field, so the operative test is rt_textureslot (bytes
// [offset+8, offset+12) under the early reading) read nonzero.
func decodeHeader(buf []byte, offset uint32, wireVersion int) (*Header, uint32, error) {
	raw, err := readBytes(buf, offset, headerWireSize)
	if err != nil {
		return nil, 0, err
	}

	if !isZero(raw[8:12]) {
		var w v7WireHeader
		if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &w); err != nil {
			return nil, 0, err
		}
		h := &Header{
			Version:        w.Version,
			HasData:        w.HasData != 0,
			Sprites:        w.Sprites,
			Scripts:        w.Scripts,
			RTTextureSlot:  0,
			Format:         w.Format,
			ColorKey:       0,
			Width:          w.Width,
			Height:         w.Height,
			NameOffset:     w.NameOffset,
			X:              w.X,
			Y:              w.Y,
			MemoryPriority: w.MemoryPriority,
			ThtxOffset:     w.ThtxOffset,
			NextOffset:     w.NextOffset,
			LowResScale:    w.LowResScale,
			JpegQuality:    w.JpegQuality,
			WMax:           w.WMax,
			HMax:           w.HMax,
			wasV7Wire:      true,
		}
		copy(h.v7Reserved[:], raw[6:12])
		if err := h.validate(wireVersion); err != nil {
			return nil, 0, err
		}
		return h, headerWireSize, nil
	}

	var w earlyWireHeader
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &w); err != nil {
		return nil, 0, err
	}
	h := &Header{
		Version:        w.Version,
		HasData:        w.HasData != 0,
		Sprites:        w.Sprites,
		Scripts:        w.Scripts,
		RTTextureSlot:  w.RTTextureSlot,
		Format:         w.Format,
		ColorKey:       w.ColorKey,
		Width:          w.Width,
		Height:         w.Height,
		NameOffset:     w.NameOffset,
		X:              w.X,
		Y:              w.Y,
		MemoryPriority: w.MemoryPriority,
		ThtxOffset:     w.ThtxOffset,
		NextOffset:     w.NextOffset,
		LowResScale:    w.LowResScale,
		JpegQuality:    w.JpegQuality,
		WMax:           w.WMax,
		HMax:           w.HMax,
		wasV7Wire:      false,
	}
	if err := h.validate(wireVersion); err != nil {
		return nil, 0, err
	}
	return h, headerWireSize, nil
}

// validate checks the structural invariants spec.md §4.2.b demands. These
// are fatal: a violation means the buffer isn't a well-formed archive.
// wireVersion (not h.Version) gates the TH19-only fields, since header
// version 8 is reused verbatim across wire versions 18 through 20.
func (h *Header) validate(wireVersion int) error {
	switch h.Version {
	case 0, 2, 3, 4, 7, 8:
	default:
		return ErrBadVersion
	}
	if h.LowResScale != 0 && h.Version != 8 {
		return ErrBadLowResScale
	}
	if h.LowResScale > 1 {
		return ErrBadLowResScale
	}
	if h.JpegQuality != 0 && !IsTH19OrNewer(wireVersion) {
		return ErrBadJpegQuality
	}
	if (h.WMax != 0 || h.HMax != 0) && !IsTH19OrNewer(wireVersion) {
		return ErrBadMaxDims
	}
	return nil
}

// encodeHeader serializes h in the on-disk layout recorded in wasV7Wire, so
// a decode/encode round trip reproduces identical bytes. serialize.go passes
// headers through unchanged, so a Header built in memory (wasV7Wire false)
// is written in the early layout whatever its Version.
func encodeHeader(h *Header) []byte {
	buf := new(bytes.Buffer)
	if h.wasV7Wire {
		w := v7WireHeader{
			Version:        h.Version,
			HasData:        boolToUint16(h.HasData),
			Format:         h.Format,
			Width:          h.Width,
			Height:         h.Height,
			NameOffset:     h.NameOffset,
			X:              h.X,
			Y:              h.Y,
			Sprites:        h.Sprites,
			Scripts:        h.Scripts,
			MemoryPriority: h.MemoryPriority,
			ThtxOffset:     h.ThtxOffset,
			NextOffset:     h.NextOffset,
			LowResScale:    h.LowResScale,
			JpegQuality:    h.JpegQuality,
			WMax:           h.WMax,
			HMax:           h.HMax,
		}
		binary.Write(buf, binary.LittleEndian, &w)
		out := buf.Bytes()
		copy(out[6:12], h.v7Reserved[:])
		return out
	}
	w := earlyWireHeader{
		Version:        h.Version,
		HasData:        boolToUint16(h.HasData),
		Sprites:        h.Sprites,
		Scripts:        h.Scripts,
		RTTextureSlot:  h.RTTextureSlot,
		Format:         h.Format,
		ColorKey:       h.ColorKey,
		Width:          h.Width,
		Height:         h.Height,
		NameOffset:     h.NameOffset,
		X:              h.X,
		Y:              h.Y,
		MemoryPriority: h.MemoryPriority,
		ThtxOffset:     h.ThtxOffset,
		NextOffset:     h.NextOffset,
		LowResScale:    h.LowResScale,
		JpegQuality:    h.JpegQuality,
		WMax:           h.WMax,
		HMax:           h.HMax,
	}
	binary.Write(buf, binary.LittleEndian, &w)
	return buf.Bytes()
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

func boolToUint16(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}
