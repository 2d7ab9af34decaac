// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

// ScriptOffsetRecord is the external {id, byte_offset} pair read from an
// entry's script offset table. id is the author-assigned number used
// textually; it is preserved verbatim and never used as an internal
// cross-reference key (RealIndex is used for that instead).
type ScriptOffsetRecord struct {
	ID     int32
	Offset uint32
}

// Script is an ordered list of animation instructions sharing a time axis.
type Script struct {
	// RealIndex is monotonic across the whole archive in decode order; it
	// is the number callers use to reference a script ('N'-typed params).
	RealIndex int

	OffsetRecord ScriptOffsetRecord

	Instructions []Instruction

	// NoSentinel is true when the on-disk instruction stream was
	// terminated by the next script/texture boundary rather than by the
	// version-appropriate sentinel.
	NoSentinel bool

	// Labels lists, in ascending order, every distinct byte offset a
	// jump-type parameter targets (including a possible one-past-end
	// target). It is a read-only index into Instructions' inline Label
	// nodes, rebuilt by the label pass.
	Labels []uint32

	// Anomalies accumulates non-fatal diagnostics (unknown opcode,
	// truncated script) produced while decoding this script.
	Anomalies []string
}

const scriptOffsetRecordSize = 8 // {id: i32, offset: u32}

// decodeScript decodes one script's instruction stream starting at
// scriptOffset (absolute, within buf) up to limit (absolute, exclusive).
func decodeScript(buf []byte, scriptOffset, limit uint32, wireVersion int, headerVersion uint16) (*Script, error) {
	s := &Script{}
	var cursor uint32 = scriptOffset
	var runningTime int16

	for {
		hdrSize := rawInstrHeaderSize(wireVersion)
		if cursor+hdrSize > limit {
			s.NoSentinel = true
			s.Anomalies = append(s.Anomalies, AnoTruncatedScript)
			break
		}

		raw, err := decodeRawInstr(buf, cursor, limit, wireVersion)
		if err != nil {
			s.NoSentinel = true
			s.Anomalies = append(s.Anomalies, AnoTruncatedScript)
			break
		}

		if isSentinelRaw(wireVersion, raw.Opcode, raw.Time, len(raw.Payload)) {
			break
		}

		format, ok := FindFormat(wireVersion, headerVersion, raw.Opcode)
		if !ok {
			s.Anomalies = append(s.Anomalies, AnoUnknownOpcode)
			format = ""
		}

		params, err := decodeParams(raw.Payload, format, raw.ParamMask)
		if err != nil {
			return nil, err
		}

		if raw.Time != runningTime {
			s.Instructions = append(s.Instructions, &TimeMarker{Time: raw.Time})
			runningTime = raw.Time
		}

		s.Instructions = append(s.Instructions, &Instr{
			OpcodeID:           raw.Opcode,
			Time:               raw.Time,
			ByteOffsetInScript: cursor - scriptOffset,
			ByteSize:           raw.Size,
			ParamMask:          raw.ParamMask,
			Params:             params,
		})

		cursor += raw.Size
	}

	if err := s.insertLabels(); err != nil {
		return nil, err
	}
	return s, nil
}

// insertLabels runs the label-insertion pass from spec.md §4.3: every
// 'o'- or 't'-typed parameter's target offset gets a Label node inserted
// immediately before the instruction at that offset, or appended at the
// very end if the target is exactly the one-past-end boundary. Offsets
// that match neither are reported as malformed. Each inserted Label also
// records the running time in effect at its offset, so a 't'-typed
// parameter pointing at the same offset can later resolve to that time
// instead of to the offset itself (spec.md §4.5).
func (s *Script) insertLabels() error {
	targets := map[uint32]bool{}
	var ordered []uint32
	for _, inst := range s.Instructions {
		in, ok := inst.(*Instr)
		if !ok {
			continue
		}
		for _, p := range in.Params {
			if p.TypeTag != 'o' && p.TypeTag != 't' {
				continue
			}
			off := uint32(p.IntValue)
			if !targets[off] {
				targets[off] = true
				ordered = append(ordered, off)
			}
		}
	}
	if len(ordered) == 0 {
		return nil
	}

	var lastEnd uint32
	var finalTime int16
	var hasInstr bool
	var runningTime int16
	for _, inst := range s.Instructions {
		switch in := inst.(type) {
		case *TimeMarker:
			runningTime = in.Time
		case *Instr:
			lastEnd = in.ByteOffsetInScript + in.ByteSize
			finalTime = runningTime
			hasInstr = true
		}
	}

	out := make([]Instruction, 0, len(s.Instructions)+len(ordered))
	inserted := map[uint32]bool{}
	runningTime = 0
	for _, inst := range s.Instructions {
		switch in := inst.(type) {
		case *TimeMarker:
			runningTime = in.Time
		case *Instr:
			if targets[in.ByteOffsetInScript] && !inserted[in.ByteOffsetInScript] {
				out = append(out, &Label{ByteOffsetInScript: in.ByteOffsetInScript, Time: runningTime})
				inserted[in.ByteOffsetInScript] = true
			}
		}
		out = append(out, inst)
	}
	for _, off := range ordered {
		if inserted[off] {
			continue
		}
		if hasInstr && off == lastEnd {
			out = append(out, &Label{ByteOffsetInScript: off, Time: finalTime})
			inserted[off] = true
			continue
		}
		return ErrUnresolvedLabel
	}

	s.Instructions = out
	labels := append([]uint32(nil), ordered...)
	sortUint32s(labels)
	s.Labels = labels
	return nil
}

func sortUint32s(s []uint32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
