// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func encodeEarlyForTest(t *testing.T, w earlyWireHeader) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, &w); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodeV7ForTest(t *testing.T, w v7WireHeader) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, &w); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeHeaderEarlyLayout(t *testing.T) {
	// RTTextureSlot (bytes 8..12) must be zero here: that span is exactly
	// what decodeHeader probes, and nonzero would route this fixture into
	// the v7 branch instead. Scripts sits outside the probed span, so it's
	// free to take an ordinary nonzero value.
	raw := encodeEarlyForTest(t, earlyWireHeader{
		Version:       0,
		HasData:       1,
		Sprites:       2,
		Scripts:       3,
		RTTextureSlot: 0,
		Format:        1,
		ColorKey:      7,
		Width:         64,
		Height:        64,
		NameOffset:    56,
		ThtxOffset:    200,
	})
	h, size, err := decodeHeader(raw, 0, 18)
	if err != nil {
		t.Fatal(err)
	}
	if size != headerWireSize {
		t.Fatalf("size = %d, want %d", size, headerWireSize)
	}
	if h.Version != 0 || h.Sprites != 2 || h.Scripts != 3 || h.ColorKey != 7 || h.RTTextureSlot != 0 {
		t.Fatalf("decoded header mismatch: %+v", h)
	}
	if h.wasV7Wire {
		t.Fatal("expected early layout, got wasV7Wire=true")
	}
}

func TestDecodeHeaderV7Layout(t *testing.T) {
	// Reserved2 nonzero forces bytes 8..12 nonzero, which is what routes
	// this fixture into the v7 branch.
	raw := encodeV7ForTest(t, v7WireHeader{
		Version:    8,
		HasData:    1,
		Format:     1,
		Reserved2:  1,
		Width:      128,
		Height:     128,
		NameOffset: 56,
		Sprites:    5,
		Scripts:    1,
		ThtxOffset: 300,
	})
	h, _, err := decodeHeader(raw, 0, 18)
	if err != nil {
		t.Fatal(err)
	}
	if !h.wasV7Wire {
		t.Fatal("expected v7 layout, got wasV7Wire=false")
	}
	if h.Sprites != 5 || h.Scripts != 1 || h.RTTextureSlot != 0 {
		t.Fatalf("decoded header mismatch: %+v", h)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	raw := encodeV7ForTest(t, v7WireHeader{
		Version:     8,
		HasData:     1,
		Format:      1,
		Reserved2:   1,
		Width:       128,
		Height:      128,
		NameOffset:  56,
		Sprites:     5,
		Scripts:     1,
		ThtxOffset:  300,
		LowResScale: 1,
	})
	h, _, err := decodeHeader(raw, 0, 18)
	if err != nil {
		t.Fatal(err)
	}
	out := encodeHeader(h)
	if !bytes.Equal(out, raw) {
		t.Fatalf("round trip mismatch:\n got %v\nwant %v", out, raw)
	}
}

func TestHeaderValidateRejectsBadVersion(t *testing.T) {
	raw := encodeEarlyForTest(t, earlyWireHeader{Version: 99})
	if _, _, err := decodeHeader(raw, 0, 18); err != ErrBadVersion {
		t.Fatalf("got %v, want ErrBadVersion", err)
	}
}

func TestHeaderValidateRejectsLowResScaleOffV8(t *testing.T) {
	raw := encodeEarlyForTest(t, earlyWireHeader{Version: 0, LowResScale: 1})
	if _, _, err := decodeHeader(raw, 0, 18); err != ErrBadLowResScale {
		t.Fatalf("got %v, want ErrBadLowResScale", err)
	}
}

func TestHeaderValidateRejectsJpegQualityBelowTH19(t *testing.T) {
	raw := encodeV7ForTest(t, v7WireHeader{Version: 8, Reserved1: 1, JpegQuality: 90})
	if _, _, err := decodeHeader(raw, 0, 18); err != ErrBadJpegQuality {
		t.Fatalf("got %v, want ErrBadJpegQuality", err)
	}
}
