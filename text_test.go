// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import (
	"strings"
	"testing"
)

func TestEmitTextMinimal(t *testing.T) {
	buf := buildMinimalArchive(t)
	a, err := OpenBytes(buf, &Options{WireVersion: 0})
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Parse(); err != nil {
		t.Fatal(err)
	}

	text, err := EmitText(a, &TextOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"entry entry0 {",
		`name: "@dummy"`,
		"hasData: false",
		"script script0",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("emitted text missing %q:\n%s", want, text)
		}
	}
}

func TestEmitInstrUsesMnemonicFromNameMap(t *testing.T) {
	nm := NewNameMap()
	nm.mnemonics[5] = "jump"
	nm.intVars[3] = "counter"

	in := &Instr{
		OpcodeID: 5,
		Params: []Param{
			{TypeTag: 'o', IntValue: 16},
			{TypeTag: 'S', IsVar: true, IntValue: 3},
		},
	}
	var b strings.Builder
	if err := emitInstr(&b, in, nm); err != nil {
		t.Fatal(err)
	}
	got := b.String()
	want := "jump(offset16, $counter);"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmitScriptOmitsIDWhenSequential(t *testing.T) {
	prevScriptID := int64(-1)
	var b strings.Builder
	s := &Script{RealIndex: 0, OffsetRecord: ScriptOffsetRecord{ID: 0}}
	if err := emitScript(&b, s, &prevScriptID, &TextOptions{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "script script0 {") {
		t.Fatalf("got %q, want sequential id omitted", b.String())
	}
}

func TestEmitScriptEmitsIDWhenNonSequential(t *testing.T) {
	prevScriptID := int64(-1)
	var b strings.Builder
	s := &Script{RealIndex: 0, OffsetRecord: ScriptOffsetRecord{ID: 3}}
	if err := emitScript(&b, s, &prevScriptID, &TextOptions{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "script3 script0 {") {
		t.Fatalf("got %q, want id 3 emitted", b.String())
	}
}

func TestEmitInstrRendersTimeTargetAsPlainLiteral(t *testing.T) {
	in := &Instr{
		OpcodeID: 5,
		Params: []Param{
			{TypeTag: 't', IntValue: 16},
		},
	}
	var b strings.Builder
	if err := emitInstr(&b, in, nil); err != nil {
		t.Fatal(err)
	}
	got := b.String()
	want := "ins_5(16);"
	if got != want {
		t.Fatalf("got %q, want %q (a 't' param is a plain literal, not offset16)", got, want)
	}
}

func TestEmitInstrFallsBackToOpcodeID(t *testing.T) {
	in := &Instr{OpcodeID: 42}
	var b strings.Builder
	if err := emitInstr(&b, in, nil); err != nil {
		t.Fatal(err)
	}
	if b.String() != "ins_42();" {
		t.Fatalf("got %q, want ins_42();", b.String())
	}
}

func TestFormatFloat(t *testing.T) {
	if got := formatFloat(3); got != "3" {
		t.Errorf("formatFloat(3) = %q, want \"3\"", got)
	}
	if got := formatFloat(1.5); got != "1.5" {
		t.Errorf("formatFloat(1.5) = %q, want \"1.5\"", got)
	}
}

func TestUniqueFilename(t *testing.T) {
	got := uniqueFilename("ability/dummy.png", "th18", 2)
	want := "dummy@th18@2.png"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
