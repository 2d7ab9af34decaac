// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

// entryAlign is the byte alignment applied between consecutive entries.
// original_source/thanm.c does not expose this constant directly (it is
// folded into the writer's running cursor arithmetic), so this value is a
// design choice: 4-byte alignment keeps every fixed-width field in the
// header naturally aligned without introducing padding thanm itself
// wouldn't produce for the common case of already-4-byte-sized entries.
const entryAlign = 4

// Serialize lays out and writes every entry in a, in order, producing a
// byte-exact archive image per spec.md §4.5. It resolves every 'o'
// jump-style parameter against the label positions the current
// instruction stream implies and every 't' parameter against those
// labels' recorded times, recomputing offsets from scratch rather than
// trusting any stale ByteOffsetInScript left over from decode.
func Serialize(a *Archive) ([]byte, error) {
	var out []byte
	for i, e := range a.Entries {
		isLast := i == len(a.Entries)-1
		body, err := serializeEntry(e, a.opts.WireVersion, isLast)
		if err != nil {
			return nil, err
		}
		out = append(out, body...)
	}
	return out, nil
}

// serializeEntry renders one entry, including its header's next_offset,
// which points past this entry's aligned size (or is 0 for the last
// entry in the archive).
func serializeEntry(e *Entry, wireVersion int, isLast bool) ([]byte, error) {
	h := *e.Header

	spriteTableOff := uint32(headerWireSize)
	scriptTableOff := spriteTableOff + uint32(len(e.Sprites))*4
	dataOff := scriptTableOff + uint32(len(e.Scripts))*scriptOffsetRecordSize

	spriteOffsets := make([]uint32, len(e.Sprites))
	var spriteData []byte
	cursor := dataOff
	for i, sp := range e.Sprites {
		spriteOffsets[i] = cursor
		spriteData = append(spriteData, encodeSprite(nil, sp, wireVersion)...)
		cursor += spriteWireSize(wireVersion)
	}

	scriptOffsets := make([]uint32, len(e.Scripts))
	var scriptData []byte
	for i, s := range e.Scripts {
		scriptOffsets[i] = cursor
		body, err := serializeScript(s, wireVersion)
		if err != nil {
			return nil, err
		}
		scriptData = append(scriptData, body...)
		cursor += uint32(len(body))
	}

	nameOff := cursor
	nameBytes := putNullPadded(nil, e.Name, 1)
	cursor += uint32(len(nameBytes))

	var name2Bytes []byte
	var name2Off uint32
	if e.Name2 != "" {
		name2Off = cursor
		name2Bytes = putNullPadded(nil, e.Name2, 1)
		cursor += uint32(len(name2Bytes))
	}

	var thtxOff uint32
	var thtxBytes []byte
	if h.HasData {
		thtxOff = cursor
		thtxBytes = encodeThtx(e.Thtx, e.Data)
		cursor += uint32(len(thtxBytes))
	}

	h.NameOffset = nameOff
	if h.Version == 0 && name2Off != 0 {
		h.Y = int32(name2Off)
	}
	h.ThtxOffset = thtxOff

	entrySize := cursor
	if entrySize%entryAlign != 0 {
		entrySize += entryAlign - entrySize%entryAlign
	}
	if isLast {
		h.NextOffset = 0
	} else {
		h.NextOffset = entrySize
	}

	out := make([]byte, 0, entrySize)
	out = append(out, encodeHeader(&h)...)
	for _, off := range spriteOffsets {
		out = putUint32(out, off)
	}
	for i, off := range scriptOffsets {
		out = putInt32(out, e.Scripts[i].OffsetRecord.ID)
		out = putUint32(out, off)
	}
	out = append(out, spriteData...)
	out = append(out, scriptData...)
	out = append(out, nameBytes...)
	out = append(out, name2Bytes...)
	out = append(out, thtxBytes...)
	for uint32(len(out)) < entrySize {
		out = append(out, 0)
	}
	return out, nil
}

// serializeScript recomputes byte offsets for every instruction in s and
// encodes the whole stream, resolving 'o' parameters against the Label
// positions recorded in s.Instructions and 't' parameters against those
// same Labels' recorded times. A Label's ByteOffsetInScript is its old
// (decode-time) position; oldToNew translates that to the position the
// label lands on in this encoding, which lets a caller freely insert or
// remove instructions ahead of a jump target between decode and
// re-encode. labelTime is keyed the same way but never needs translating,
// since a recorded time carries forward unchanged regardless of how the
// byte layout shifts.
func serializeScript(s *Script, wireVersion int) ([]byte, error) {
	oldToNew := map[uint32]uint32{}
	labelTime := map[uint32]int16{}
	var cursor uint32
	var lastTime int16
	for _, inst := range s.Instructions {
		switch v := inst.(type) {
		case *Label:
			oldToNew[v.ByteOffsetInScript] = cursor
			labelTime[v.ByteOffsetInScript] = v.Time
		case *Instr:
			cursor += instrByteSize(wireVersion, v.Params)
			lastTime = v.Time
		case *TimeMarker:
			lastTime = v.Time
		}
	}
	// A target equal to one-past-the-end of the stream (the trailing-label
	// case from insertLabels) resolves to the sentinel's position and the
	// script's final running time.
	endOfStream := cursor
	endOfStreamTime := lastTime

	var out []byte
	var runningTime int16
	var pendingTime int16
	haveTime := false
	for _, inst := range s.Instructions {
		switch v := inst.(type) {
		case *Label:
			continue
		case *TimeMarker:
			pendingTime = v.Time
			haveTime = true
		case *Instr:
			resolved := make([]Param, len(v.Params))
			for i, p := range v.Params {
				resolved[i] = p
				switch p.TypeTag {
				case 'o':
					newOff, ok := oldToNew[uint32(p.IntValue)]
					if !ok && uint32(p.IntValue) == endOfStream {
						newOff = endOfStream
						ok = true
					}
					if !ok {
						return nil, ErrUnresolvedLabel
					}
					resolved[i].IntValue = int32(newOff)
				case 't':
					t, ok := labelTime[uint32(p.IntValue)]
					if !ok && uint32(p.IntValue) == endOfStream {
						t = endOfStreamTime
						ok = true
					}
					if !ok {
						return nil, ErrUnresolvedLabel
					}
					resolved[i].IntValue = int32(t)
				}
			}
			t := v.Time
			if haveTime {
				t = pendingTime
				haveTime = false
			}
			runningTime = t
			out = append(out, encodeInstr(&Instr{
				OpcodeID: v.OpcodeID,
				Time:     runningTime,
				Params:   resolved,
			}, wireVersion)...)
		}
	}
	if !s.NoSentinel {
		out = append(out, encodeSentinel(wireVersion)...)
	}
	return out, nil
}
