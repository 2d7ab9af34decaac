// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import "testing"

func TestDecodeRawInstrV0(t *testing.T) {
	// time=5, opcode=3, payload len=4, one S param = 0x2a
	buf := []byte{5, 0, 3, 4, 0x2a, 0, 0, 0}
	raw, err := decodeRawInstr(buf, 0, uint32(len(buf)), 0)
	if err != nil {
		t.Fatal(err)
	}
	if raw.Opcode != 3 || raw.Time != 5 || raw.Size != 8 {
		t.Fatalf("raw = %+v", raw)
	}
	if len(raw.Payload) != 4 {
		t.Fatalf("payload len = %d, want 4", len(raw.Payload))
	}
}

func TestDecodeRawInstrV2Plus(t *testing.T) {
	// opcode=9, total_len=12, time=1, mask=0, payload=4 bytes
	buf := []byte{9, 0, 12, 0, 1, 0, 0, 0, 0x7b, 0, 0, 0}
	raw, err := decodeRawInstr(buf, 0, uint32(len(buf)), 2)
	if err != nil {
		t.Fatal(err)
	}
	if raw.Opcode != 9 || raw.Time != 1 || raw.Size != 12 {
		t.Fatalf("raw = %+v", raw)
	}
}

func TestIsSentinelRaw(t *testing.T) {
	if !isSentinelRaw(0, 0, 0, 0) {
		t.Fatal("v0 sentinel not detected")
	}
	if isSentinelRaw(0, 1, 0, 0) {
		t.Fatal("v0 false positive")
	}
	if !isSentinelRaw(2, SentinelOpcode, 0, 0) {
		t.Fatal("v2 sentinel not detected")
	}
}

func TestDecodeParamsUnknownOpcodeFallback(t *testing.T) {
	payload := []byte{1, 0, 0, 0, 2, 0, 0, 0}
	params, err := decodeParams(payload, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(params) != 2 || params[0].TypeTag != 'S' || params[0].IntValue != 1 {
		t.Fatalf("params = %+v", params)
	}
}

func TestDecodeParamsFormatString(t *testing.T) {
	var payload []byte
	payload = putFloat32(payload, 1.5)
	payload = putInt32(payload, 42)
	params, err := decodeParams(payload, "fS", 0b10)
	if err != nil {
		t.Fatal(err)
	}
	if len(params) != 2 {
		t.Fatalf("got %d params, want 2", len(params))
	}
	if params[0].TypeTag != 'f' || params[0].FloatValue != 1.5 || params[0].IsVar {
		t.Fatalf("param 0 = %+v", params[0])
	}
	if params[1].TypeTag != 'S' || params[1].IntValue != 42 || !params[1].IsVar {
		t.Fatalf("param 1 = %+v", params[1])
	}
}

func TestEncodeInstrRoundTripV2(t *testing.T) {
	in := &Instr{
		OpcodeID: 9,
		Time:     3,
		Params: []Param{
			{TypeTag: 'S', IntValue: 7},
		},
	}
	wire := encodeInstr(in, 2)
	raw, err := decodeRawInstr(wire, 0, uint32(len(wire)), 2)
	if err != nil {
		t.Fatal(err)
	}
	if raw.Opcode != 9 || raw.Time != 3 {
		t.Fatalf("raw = %+v", raw)
	}
	params, err := decodeParams(raw.Payload, "S", raw.ParamMask)
	if err != nil {
		t.Fatal(err)
	}
	if params[0].IntValue != 7 {
		t.Fatalf("params = %+v", params)
	}
}

func TestEncodeSentinel(t *testing.T) {
	s0 := encodeSentinel(0)
	if !isSentinelRaw(0, 0, 0, 0) || len(s0) != 4 {
		t.Fatalf("v0 sentinel = %v", s0)
	}
	s2 := encodeSentinel(2)
	raw, err := decodeRawInstr(s2, 0, uint32(len(s2)), 2)
	if err != nil {
		t.Fatal(err)
	}
	if !isSentinelRaw(2, raw.Opcode, raw.Time, len(raw.Payload)) {
		t.Fatal("v2 sentinel round trip failed")
	}
}
