// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

// spriteExtraFloats is the number of extra trailing float32 fields carried
// by sprites on wire versions >= 19 (th19_unk0..th19_unk4).
const spriteExtraFloats = 5

// spriteDefaultExtras are the default values of the five extra floats, used
// by the text emitter to decide whether a th19_unkN field needs printing.
var spriteDefaultExtras = [spriteExtraFloats]float32{0, 0, 1, 1, 0}

// Sprite is a named rectangle within an entry's image, referenced by
// 'n'-typed instruction parameters.
type Sprite struct {
	ID         uint32
	X, Y, W, H float32

	// Extra holds th19_unk0..th19_unk4, populated only for wire versions >= 19.
	Extra [spriteExtraFloats]float32
}

// spriteWireSize returns the on-disk size of one sprite record for the
// given wire version.
func spriteWireSize(wireVersion int) uint32 {
	if IsTH19OrNewer(wireVersion) {
		return 4 + 4*4 + 4*spriteExtraFloats
	}
	return 4 + 4*4
}

// decodeSprite reads one sprite record at offset.
func decodeSprite(buf []byte, offset uint32, wireVersion int) (*Sprite, error) {
	id, err := readUint32(buf, offset)
	if err != nil {
		return nil, err
	}
	x, err := readFloat32(buf, offset+4)
	if err != nil {
		return nil, err
	}
	y, err := readFloat32(buf, offset+8)
	if err != nil {
		return nil, err
	}
	w, err := readFloat32(buf, offset+12)
	if err != nil {
		return nil, err
	}
	h, err := readFloat32(buf, offset+16)
	if err != nil {
		return nil, err
	}
	s := &Sprite{ID: id, X: x, Y: y, W: w, H: h}
	if IsTH19OrNewer(wireVersion) {
		for i := 0; i < spriteExtraFloats; i++ {
			v, err := readFloat32(buf, offset+20+uint32(i)*4)
			if err != nil {
				return nil, err
			}
			s.Extra[i] = v
		}
	}
	return s, nil
}

// encodeSprite appends the wire bytes for s to dst.
func encodeSprite(dst []byte, s *Sprite, wireVersion int) []byte {
	dst = putUint32(dst, s.ID)
	dst = putFloat32(dst, s.X)
	dst = putFloat32(dst, s.Y)
	dst = putFloat32(dst, s.W)
	dst = putFloat32(dst, s.H)
	if IsTH19OrNewer(wireVersion) {
		for _, v := range s.Extra {
			dst = putFloat32(dst, v)
		}
	}
	return dst
}
