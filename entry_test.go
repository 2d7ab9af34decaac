// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import "testing"

func TestThtxRoundTrip(t *testing.T) {
	th := &ThtxHeader{Format: FormatRGBA8888, W: 2, H: 2, Size: 16}
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	wire := encodeThtx(th, data)

	got, payload, err := decodeThtx(wire, 0, 18)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *th {
		t.Fatalf("got %+v, want %+v", got, th)
	}
	if string(payload) != string(data) {
		t.Fatalf("payload mismatch")
	}
}

func TestThtxBadMagic(t *testing.T) {
	buf := []byte("XXXX")
	buf = putUint16(buf, 0)
	buf = putUint16(buf, 0)
	buf = putUint16(buf, 0)
	buf = putUint32(buf, 0)
	buf = putUint32(buf, 0)
	if _, _, err := decodeThtx(buf, 0, 18); err != ErrThtxMagic {
		t.Fatalf("got %v, want ErrThtxMagic", err)
	}
}

func TestThtxSizeTooSmall(t *testing.T) {
	th := &ThtxHeader{Format: FormatRGBA8888, W: 4, H: 4, Size: 4}
	wire := encodeThtx(th, []byte{1, 2, 3, 4})
	if _, _, err := decodeThtx(wire, 0, 18); err != ErrThtxSize {
		t.Fatalf("got %v, want ErrThtxSize", err)
	}
}

func TestThtxSizeSkippedForTH19(t *testing.T) {
	th := &ThtxHeader{Format: FormatRGBA8888, W: 256, H: 256, Size: 4}
	wire := encodeThtx(th, []byte{1, 2, 3, 4})
	if _, _, err := decodeThtx(wire, 0, 19); err != nil {
		t.Fatalf("got %v, want nil (size check skipped on wire>=19)", err)
	}
}

func TestFormatBpp(t *testing.T) {
	tests := []struct {
		format uint16
		want   uint32
	}{
		{FormatBGRA8888, 4},
		{FormatRGBA8888, 4},
		{FormatRGB565, 2},
		{FormatARGB4444, 2},
		{FormatGRAY8, 1},
		{0xff, 0},
	}
	for _, tt := range tests {
		if got := formatBpp(tt.format); got != tt.want {
			t.Errorf("formatBpp(%d) = %d, want %d", tt.format, got, tt.want)
		}
	}
}
