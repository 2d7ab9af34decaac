// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import (
	"encoding/binary"
	"math"
)

// EncodedSize returns the wire size, in bytes, of a single value of the
// given parameter type tag. 's' is 2 bytes; every other known tag ('S',
// 'f', 'o', 't', 'n', 'N') is 4 bytes.
func EncodedSize(typeTag byte) uint32 {
	if typeTag == 's' {
		return 2
	}
	return 4
}

// readUint32 reads a little-endian uint32 at offset, bounds-checked against
// the buffer length.
func readUint32(buf []byte, offset uint32) (uint32, error) {
	if offset > uint32(len(buf)) || uint32(len(buf))-offset < 4 {
		return 0, ErrOutsideBoundary
	}
	return binary.LittleEndian.Uint32(buf[offset:]), nil
}

// readInt32 reads a little-endian int32 at offset.
func readInt32(buf []byte, offset uint32) (int32, error) {
	v, err := readUint32(buf, offset)
	return int32(v), err
}

// readUint16 reads a little-endian uint16 at offset.
func readUint16(buf []byte, offset uint32) (uint16, error) {
	if offset > uint32(len(buf)) || uint32(len(buf))-offset < 2 {
		return 0, ErrOutsideBoundary
	}
	return binary.LittleEndian.Uint16(buf[offset:]), nil
}

// readInt16 reads a little-endian int16 at offset.
func readInt16(buf []byte, offset uint32) (int16, error) {
	v, err := readUint16(buf, offset)
	return int16(v), err
}

// readUint8 reads a single byte at offset.
func readUint8(buf []byte, offset uint32) (uint8, error) {
	if offset >= uint32(len(buf)) {
		return 0, ErrOutsideBoundary
	}
	return buf[offset], nil
}

// readFloat32 reads a little-endian IEEE-754 float32 at offset.
func readFloat32(buf []byte, offset uint32) (float32, error) {
	v, err := readUint32(buf, offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// readBytes returns a bounds-checked slice [offset:offset+size) of buf.
// The returned slice aliases buf.
func readBytes(buf []byte, offset, size uint32) ([]byte, error) {
	if offset > uint32(len(buf)) || uint32(len(buf))-offset < size {
		return nil, ErrOutsideBoundary
	}
	return buf[offset : offset+size], nil
}

// readNullPaddedString reads at most maxLen bytes starting at offset and
// returns the portion before the first NUL. maxLen is a scan cap, not a
// requirement that the buffer actually hold that many bytes: a name can be
// NUL-terminated well before the caller's generous upper bound.
func readNullPaddedString(buf []byte, offset, maxLen uint32) (string, error) {
	if offset > uint32(len(buf)) {
		return "", ErrOutsideBoundary
	}
	if avail := uint32(len(buf)) - offset; maxLen > avail {
		maxLen = avail
	}
	b, err := readBytes(buf, offset, maxLen)
	if err != nil {
		return "", err
	}
	for i, c := range b {
		if c == 0 {
			return string(b[:i]), nil
		}
	}
	return string(b), nil
}

// putUint32 appends a little-endian uint32 to dst.
func putUint32(dst []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(dst, tmp[:]...)
}

// putInt32 appends a little-endian int32 to dst.
func putInt32(dst []byte, v int32) []byte {
	return putUint32(dst, uint32(v))
}

// putUint16 appends a little-endian uint16 to dst.
func putUint16(dst []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(dst, tmp[:]...)
}

// putInt16 appends a little-endian int16 to dst.
func putInt16(dst []byte, v int16) []byte {
	return putUint16(dst, uint16(v))
}

// putFloat32 appends a little-endian IEEE-754 float32 to dst.
func putFloat32(dst []byte, v float32) []byte {
	return putUint32(dst, math.Float32bits(v))
}

// putNullPadded appends s to dst, NUL-padded up to a multiple of align
// bytes (at least one trailing NUL byte).
func putNullPadded(dst []byte, s string, align uint32) []byte {
	paddedLen := uint32(len(s)) + 1
	if paddedLen%align != 0 {
		paddedLen += align - paddedLen%align
	}
	dst = append(dst, []byte(s)...)
	for uint32(len(s)) < paddedLen {
		dst = append(dst, 0)
		s += "\x00"
	}
	return dst
}
