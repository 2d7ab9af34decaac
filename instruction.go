// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import "fmt"

// Param is a single instruction operand.
type Param struct {
	// TypeTag is one of {S,s,f,o,t,n,N}.
	TypeTag byte

	// IsVar is true when the value names a machine register/variable
	// rather than a literal; derived from the matching param_mask bit.
	IsVar bool

	// IntValue holds the value for every TypeTag except 'f'.
	IntValue int32

	// FloatValue holds the value when TypeTag == 'f'.
	FloatValue float32
}

// Instruction is the tagged union {Instr, TimeMarker, Label} spec.md §3
// describes. The typed instruction stream produced by decode, and consumed
// by the text emitter and the serializer, is a []Instruction.
type Instruction interface {
	isInstruction()
}

// Instr is a decoded opcode with its time and typed parameter list.
type Instr struct {
	OpcodeID           uint16
	Time               int16
	ByteOffsetInScript uint32
	ByteSize           uint32
	ParamMask          uint32
	Params             []Param
}

// TimeMarker is inserted whenever the decoded time changes mid-script.
type TimeMarker struct {
	Time int16
}

// Label is inserted as the target of any 'o'-typed parameter. Time is the
// running time in effect at ByteOffsetInScript, which is what a 't'-typed
// parameter referencing this same position resolves to on serialization
// (spec.md §4.5: "o" resolves to the label's byte offset, "t" to its
// recorded time).
type Label struct {
	ByteOffsetInScript uint32
	Time               int16
}

func (*Instr) isInstruction()      {}
func (*TimeMarker) isInstruction() {}
func (*Label) isInstruction()      {}

// rawInstrHeaderSize returns the fixed header size of a raw wire
// instruction: 4 bytes for wire version 0, 8 bytes for wire version >= 2.
func rawInstrHeaderSize(wireVersion int) uint32 {
	if wireVersion == 0 {
		return 4
	}
	return 8
}

// rawInstr holds one instruction as read straight off the wire, before
// format lookup and parameter decoding.
type rawInstr struct {
	Opcode    uint16
	Time      int16
	ParamMask uint32
	Payload   []byte
	Size      uint32
}

// isSentinelRaw reports whether a raw instruction is the version-
// appropriate end-of-script terminator.
func isSentinelRaw(wireVersion int, opcode uint16, time int16, payloadLen int) bool {
	if wireVersion == 0 {
		return opcode == 0 && time == 0 && payloadLen == 0
	}
	return opcode == SentinelOpcode
}

// decodeRawInstr reads one raw instruction at offset within a script whose
// data ends (exclusive) at limit. It does not interpret the payload.
func decodeRawInstr(buf []byte, offset, limit uint32, wireVersion int) (*rawInstr, error) {
	hdrSize := rawInstrHeaderSize(wireVersion)
	if offset+hdrSize > limit {
		return nil, ErrOutsideBoundary
	}

	if wireVersion == 0 {
		t, err := readInt16(buf, offset)
		if err != nil {
			return nil, err
		}
		opcode, err := readUint8(buf, offset+2)
		if err != nil {
			return nil, err
		}
		payloadLen, err := readUint8(buf, offset+3)
		if err != nil {
			return nil, err
		}
		if offset+4+uint32(payloadLen) > limit {
			return nil, ErrOutsideBoundary
		}
		payload, err := readBytes(buf, offset+4, uint32(payloadLen))
		if err != nil {
			return nil, err
		}
		return &rawInstr{
			Opcode:  uint16(opcode),
			Time:    t,
			Payload: payload,
			Size:    4 + uint32(payloadLen),
		}, nil
	}

	opcode, err := readUint16(buf, offset)
	if err != nil {
		return nil, err
	}
	totalLen, err := readUint16(buf, offset+2)
	if err != nil {
		return nil, err
	}
	t, err := readInt16(buf, offset+4)
	if err != nil {
		return nil, err
	}
	mask, err := readUint16(buf, offset+6)
	if err != nil {
		return nil, err
	}
	// The end-of-script sentinel is written with length == 0 (encodeSentinel,
	// matching thanm.c's writer), not the 8-byte header size; any other
	// sub-8 length is a malformed record.
	size := uint32(totalLen)
	if size == 0 {
		size = rawInstrHeaderSize(2)
	} else if size < 8 {
		return nil, ErrOutsideBoundary
	}
	if offset+size > limit {
		return nil, ErrOutsideBoundary
	}
	payload, err := readBytes(buf, offset+8, size-8)
	if err != nil {
		return nil, err
	}
	return &rawInstr{
		Opcode:    opcode,
		Time:      t,
		ParamMask: uint32(mask),
		Payload:   payload,
		Size:      size,
	}, nil
}

// decodeParams splits payload into Params according to format, applying
// is_var bits from paramMask. If format is "", payload is decoded as a
// sequence of 'S' parameters (the unknown-opcode fallback).
func decodeParams(payload []byte, format string, paramMask uint32) ([]Param, error) {
	if format == "" && len(payload) > 0 {
		n := len(payload) / 4
		params := make([]Param, 0, n)
		for i := 0; i < n; i++ {
			v, err := readInt32(payload, uint32(i*4))
			if err != nil {
				return nil, err
			}
			params = append(params, Param{
				TypeTag:  'S',
				IsVar:    paramMask&(1<<uint(i)) != 0,
				IntValue: v,
			})
		}
		return params, nil
	}

	params := make([]Param, 0, len(format))
	var off uint32
	for i := 0; i < len(format); i++ {
		tag := format[i]
		isVar := paramMask&(1<<uint(i)) != 0
		switch tag {
		case 'f':
			v, err := readFloat32(payload, off)
			if err != nil {
				return nil, err
			}
			params = append(params, Param{TypeTag: tag, IsVar: isVar, FloatValue: v})
			off += 4
		case 's':
			v, err := readInt16(payload, off)
			if err != nil {
				return nil, err
			}
			params = append(params, Param{TypeTag: tag, IsVar: isVar, IntValue: int32(v)})
			off += 2
		case 'S', 'o', 't', 'n', 'N':
			v, err := readInt32(payload, off)
			if err != nil {
				return nil, err
			}
			params = append(params, Param{TypeTag: tag, IsVar: isVar, IntValue: v})
			off += 4
		default:
			return nil, fmt.Errorf("anm: unknown parameter type tag %q", tag)
		}
	}
	return params, nil
}

// encodeParams is the inverse of decodeParams: it appends the wire bytes
// for params to dst and returns the accumulated param_mask.
func encodeParams(dst []byte, params []Param) ([]byte, uint32) {
	var mask uint32
	for i, p := range params {
		if p.IsVar {
			mask |= 1 << uint(i)
		}
		switch p.TypeTag {
		case 'f':
			dst = putFloat32(dst, p.FloatValue)
		case 's':
			dst = putInt16(dst, int16(p.IntValue))
		default:
			dst = putInt32(dst, p.IntValue)
		}
	}
	return dst, mask
}

// instrByteSize computes the total wire size (header + params) an Instr
// will occupy when encoded under wireVersion.
func instrByteSize(wireVersion int, params []Param) uint32 {
	size := rawInstrHeaderSize(wireVersion)
	for _, p := range params {
		size += EncodedSize(p.TypeTag)
	}
	return size
}

// encodeInstr renders one Instr to wire bytes under wireVersion. Params'
// 'o'/'t'/'n'/'N' IntValue fields must already hold resolved wire values
// (byte offsets, times, ids) by the time this is called.
func encodeInstr(in *Instr, wireVersion int) []byte {
	payload, mask := encodeParams(nil, in.Params)
	if wireVersion == 0 {
		out := make([]byte, 0, 4+len(payload))
		out = putInt16(out, in.Time)
		out = append(out, byte(in.OpcodeID), byte(len(payload)))
		out = append(out, payload...)
		return out
	}
	out := make([]byte, 0, 8+len(payload))
	out = putUint16(out, in.OpcodeID)
	out = putUint16(out, uint16(8+len(payload)))
	out = putInt16(out, in.Time)
	out = putUint16(out, uint16(mask))
	out = append(out, payload...)
	return out
}

// encodeSentinel returns the version-appropriate end-of-script terminator.
func encodeSentinel(wireVersion int) []byte {
	if wireVersion == 0 {
		return []byte{0, 0, 0, 0}
	}
	return []byte{0xff, 0xff, 0, 0, 0, 0, 0, 0}
}
