// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import "testing"

func TestSerializeRoundTripMinimal(t *testing.T) {
	orig := buildMinimalArchive(t)
	a, err := OpenBytes(orig, &Options{WireVersion: 0})
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Parse(); err != nil {
		t.Fatal(err)
	}

	out, err := Serialize(a)
	if err != nil {
		t.Fatal(err)
	}

	b, err := OpenBytes(out, &Options{WireVersion: 0})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Parse(); err != nil {
		t.Fatalf("re-parsing serialized output: %v", err)
	}
	if len(b.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(b.Entries))
	}
	if b.Entries[0].Name != "@dummy" {
		t.Fatalf("name = %q, want @dummy", b.Entries[0].Name)
	}
}

func TestSerializeScriptResolvesJumpOffsets(t *testing.T) {
	s := &Script{
		Instructions: []Instruction{
			&Instr{OpcodeID: 1, Params: []Param{{TypeTag: 'n', IntValue: 0}}},
			&Label{ByteOffsetInScript: 8},
			&Instr{OpcodeID: 1, Params: []Param{{TypeTag: 'n', IntValue: 1}}},
			&Instr{OpcodeID: 5, Params: []Param{{TypeTag: 'o', IntValue: 8}}},
		},
	}
	out, err := serializeScript(s, 0)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := decodeRawInstr(out, 16, uint32(len(out)), 0)
	if err != nil {
		t.Fatal(err)
	}
	params, err := decodeParams(raw.Payload, "o", raw.ParamMask)
	if err != nil {
		t.Fatal(err)
	}
	if params[0].IntValue != 8 {
		t.Fatalf("resolved jump offset = %d, want 8", params[0].IntValue)
	}
}

func TestSerializeScriptResolvesTimeTargets(t *testing.T) {
	s := &Script{
		Instructions: []Instruction{
			&Instr{OpcodeID: 1, Params: []Param{{TypeTag: 'n', IntValue: 0}}},
			&Label{ByteOffsetInScript: 8, Time: 42},
			&Instr{OpcodeID: 1, Params: []Param{{TypeTag: 'n', IntValue: 1}}},
			&Instr{OpcodeID: 5, Params: []Param{{TypeTag: 't', IntValue: 8}}},
		},
	}
	out, err := serializeScript(s, 0)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := decodeRawInstr(out, 16, uint32(len(out)), 0)
	if err != nil {
		t.Fatal(err)
	}
	params, err := decodeParams(raw.Payload, "t", raw.ParamMask)
	if err != nil {
		t.Fatal(err)
	}
	if params[0].IntValue != 42 {
		t.Fatalf("resolved time target = %d, want the label's recorded time 42, not its byte offset", params[0].IntValue)
	}
}

func TestSerializeScriptUnresolvedJumpErrors(t *testing.T) {
	s := &Script{
		Instructions: []Instruction{
			&Instr{OpcodeID: 5, Params: []Param{{TypeTag: 'o', IntValue: 99}}},
		},
	}
	if _, err := serializeScript(s, 0); err != ErrUnresolvedLabel {
		t.Fatalf("got %v, want ErrUnresolvedLabel", err)
	}
}
