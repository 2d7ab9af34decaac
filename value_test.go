// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import "testing"

func TestEncodedSize(t *testing.T) {
	tests := []struct {
		tag  byte
		want uint32
	}{
		{'s', 2},
		{'S', 4},
		{'f', 4},
		{'o', 4},
		{'t', 4},
		{'n', 4},
		{'N', 4},
	}
	for _, tt := range tests {
		if got := EncodedSize(tt.tag); got != tt.want {
			t.Errorf("EncodedSize(%q) = %d, want %d", tt.tag, got, tt.want)
		}
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	var buf []byte
	buf = putUint32(buf, 0xdeadbeef)
	buf = putInt32(buf, -42)
	buf = putUint16(buf, 0xbeef)
	buf = putInt16(buf, -7)
	buf = putFloat32(buf, 3.5)

	var off uint32
	u32, err := readUint32(buf, off)
	if err != nil || u32 != 0xdeadbeef {
		t.Fatalf("readUint32 = %x, %v", u32, err)
	}
	off += 4
	i32, err := readInt32(buf, off)
	if err != nil || i32 != -42 {
		t.Fatalf("readInt32 = %d, %v", i32, err)
	}
	off += 4
	u16, err := readUint16(buf, off)
	if err != nil || u16 != 0xbeef {
		t.Fatalf("readUint16 = %x, %v", u16, err)
	}
	off += 2
	i16, err := readInt16(buf, off)
	if err != nil || i16 != -7 {
		t.Fatalf("readInt16 = %d, %v", i16, err)
	}
	off += 2
	f32, err := readFloat32(buf, off)
	if err != nil || f32 != 3.5 {
		t.Fatalf("readFloat32 = %v, %v", f32, err)
	}
}

func TestReadOutsideBoundary(t *testing.T) {
	buf := []byte{1, 2, 3}
	if _, err := readUint32(buf, 0); err != ErrOutsideBoundary {
		t.Fatalf("readUint32 past end: got %v, want ErrOutsideBoundary", err)
	}
	if _, err := readUint32(buf, 10); err != ErrOutsideBoundary {
		t.Fatalf("readUint32 with out-of-range offset: got %v, want ErrOutsideBoundary", err)
	}
}

func TestReadNullPaddedString(t *testing.T) {
	buf := []byte("hello\x00\x00\x00")
	s, err := readNullPaddedString(buf, 0, uint32(len(buf)))
	if err != nil {
		t.Fatal(err)
	}
	if s != "hello" {
		t.Fatalf("got %q, want %q", s, "hello")
	}
}

func TestPutNullPadded(t *testing.T) {
	got := putNullPadded(nil, "ab", 4)
	want := []byte{'a', 'b', 0, 0}
	if string(got) != string(want) {
		t.Fatalf("putNullPadded(\"ab\", 4) = %v, want %v", got, want)
	}

	got = putNullPadded(nil, "abcd", 4)
	want = []byte{'a', 'b', 'c', 'd', 0, 0, 0, 0}
	if string(got) != string(want) {
		t.Fatalf("putNullPadded(\"abcd\", 4) = %v, want %v", got, want)
	}
}
