// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	alog "github.com/saferwall-community/anmtool/log"
)

// NameMap resolves opcode ids to mnemonics and register ids to variable
// names for the text emitter, and the reverse for a text assembler. It is
// built once at startup and is read-only for the remainder of execution.
type NameMap struct {
	mnemonics map[uint16]string
	opcodes   map[string]uint16

	intVars   map[int32]string
	floatVars map[int32]string
	intRegs   map[string]int32
	floatRegs map[string]int32
}

// NewNameMap returns an empty map; use LoadOpcodeMap/LoadVarMap to populate
// it, or build one directly for tests.
func NewNameMap() *NameMap {
	return &NameMap{
		mnemonics: map[uint16]string{},
		opcodes:   map[string]uint16{},
		intVars:   map[int32]string{},
		floatVars: map[int32]string{},
		intRegs:   map[string]int32{},
		floatRegs: map[string]int32{},
	}
}

// Mnemonic returns the mnemonic for opcodeID, if known.
func (m *NameMap) Mnemonic(opcodeID uint16) (string, bool) {
	if m == nil {
		return "", false
	}
	s, ok := m.mnemonics[opcodeID]
	return s, ok
}

// VarName returns the variable name for a register id, if known. isFloat
// selects the float-register namespace ('%name') vs the int-register
// namespace ('$name').
func (m *NameMap) VarName(reg int32, isFloat bool) (string, bool) {
	if m == nil {
		return "", false
	}
	if isFloat {
		s, ok := m.floatVars[reg]
		return s, ok
	}
	s, ok := m.intVars[reg]
	return s, ok
}

// OpcodeID is the reverse of Mnemonic, used by a text assembler.
func (m *NameMap) OpcodeID(mnemonic string) (uint16, bool) {
	if m == nil {
		return 0, false
	}
	id, ok := m.opcodes[mnemonic]
	return id, ok
}

// RegisterID is the reverse of VarName.
func (m *NameMap) RegisterID(name string, isFloat bool) (int32, bool) {
	if m == nil {
		return 0, false
	}
	if isFloat {
		id, ok := m.floatRegs[name]
		return id, ok
	}
	id, ok := m.intRegs[name]
	return id, ok
}

// LoadOpcodeMap reads a line-oriented "id mnemonic" file into m. Corrupt
// lines are logged and skipped, matching spec.md §6's Name-map format.
func (m *NameMap) LoadOpcodeMap(r io.Reader, logger *alog.Helper) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			logNameMapError(logger, line, text)
			continue
		}
		id, err := strconv.ParseUint(fields[0], 10, 16)
		if err != nil {
			logNameMapError(logger, line, text)
			continue
		}
		m.mnemonics[uint16(id)] = fields[1]
		m.opcodes[fields[1]] = uint16(id)
	}
	return sc.Err()
}

// LoadVarMap reads a line-oriented "reg name [type]" file into m, where
// type is "int" (default) or "float".
func (m *NameMap) LoadVarMap(r io.Reader, logger *alog.Helper) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			logNameMapError(logger, line, text)
			continue
		}
		reg, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			logNameMapError(logger, line, text)
			continue
		}
		isFloat := len(fields) >= 3 && fields[2] == "float"
		if isFloat {
			m.floatVars[int32(reg)] = fields[1]
			m.floatRegs[fields[1]] = int32(reg)
		} else {
			m.intVars[int32(reg)] = fields[1]
			m.intRegs[fields[1]] = int32(reg)
		}
	}
	return sc.Err()
}

func logNameMapError(logger *alog.Helper, line int, text string) {
	if logger == nil {
		return
	}
	logger.Warnf("namemap: skipping corrupt line %d: %q", line, text)
}
