// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import (
	"fmt"
	"path"
	"strconv"
	"strings"
)

// TextOptions configures EmitText's output. Parsing this format back into
// an Archive is out of scope here: spec.md treats the text-spec grammar
// itself as an externally-defined concern, so only the emitter side is
// implemented.
type TextOptions struct {
	Names *NameMap

	// PrintOffsets precedes every instruction with a comment giving the sum
	// of the byte sizes of the instructions before it in its script, and its
	// decoded ByteOffsetInScript. Both are script-relative; no absolute
	// position in the archive is printed.
	PrintOffsets bool

	// UniqueFilenames synthesizes a "<stem>@<archiveStem>@<index><ext>"
	// filename per entry instead of using the bare embedded name.
	UniqueFilenames bool

	// ArchiveStem is the source archive's filename, sans extension, used
	// only when UniqueFilenames is set.
	ArchiveStem string
}

// EmitText renders a to the text-spec format described in spec.md §4.4.
func EmitText(a *Archive, opts *TextOptions) (string, error) {
	if opts == nil {
		opts = &TextOptions{}
	}
	var b strings.Builder
	for i, e := range a.Entries {
		if err := emitEntry(&b, e, i, a.opts.WireVersion, opts); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func emitEntry(b *strings.Builder, e *Entry, index int, wireVersion int, opts *TextOptions) error {
	h := e.Header
	fmt.Fprintf(b, "entry entry%d {\n", index)
	fmt.Fprintf(b, "    version: %d\n", h.Version)
	fmt.Fprintf(b, "    name: %q\n", e.Name)
	if opts.UniqueFilenames {
		fmt.Fprintf(b, "    filename: %q\n", uniqueFilename(e.Name, opts.ArchiveStem, index))
	}
	if e.Name2 != "" {
		fmt.Fprintf(b, "    name2: %q\n", e.Name2)
	}
	fmt.Fprintf(b, "    format: %d\n", h.Format)
	fmt.Fprintf(b, "    width: %d\n", h.Width)
	fmt.Fprintf(b, "    height: %d\n", h.Height)
	if h.X != 0 {
		fmt.Fprintf(b, "    xOffset: %d\n", h.X)
	}
	if h.Y != 0 && e.Name2 == "" {
		fmt.Fprintf(b, "    yOffset: %d\n", h.Y)
	}
	if h.Version < 7 {
		fmt.Fprintf(b, "    colorKey: %d\n", h.ColorKey)
	}
	if h.Version >= 1 {
		fmt.Fprintf(b, "    memoryPriority: %d\n", h.MemoryPriority)
	}
	if h.Version == 8 {
		fmt.Fprintf(b, "    lowResScale: %d\n", h.LowResScale)
	}
	if IsTH19OrNewer(wireVersion) && h.JpegQuality != 0 {
		fmt.Fprintf(b, "    jpeg_quality: %d\n", h.JpegQuality)
	}
	fmt.Fprintf(b, "    hasData: %t\n", h.HasData)
	if h.HasData && e.Thtx != nil {
		fmt.Fprintf(b, "    THTXFormat: %d\n", e.Thtx.Format)
		fmt.Fprintf(b, "    THTXWidth: %d\n", e.Thtx.W)
		fmt.Fprintf(b, "    THTXHeight: %d\n", e.Thtx.H)
		if !IsTH19OrNewer(wireVersion) {
			fmt.Fprintf(b, "    THTXSize: %d\n", e.Thtx.Size)
		}
		fmt.Fprintf(b, "    THTXZero: %d\n", e.Thtx.Zero)
	}
	if IsTH19OrNewer(wireVersion) {
		fmt.Fprintf(b, "    w_max: %d\n", h.WMax)
		fmt.Fprintf(b, "    h_max: %d\n", h.HMax)
	}

	prevID := int64(-1)
	for _, sp := range e.Sprites {
		emitSprite(b, sp, &prevID, wireVersion)
	}

	prevScriptID := int64(-1)
	for _, s := range e.Scripts {
		if err := emitScript(b, s, &prevScriptID, opts); err != nil {
			return err
		}
	}

	b.WriteString("}\n")
	return nil
}

func emitSprite(b *strings.Builder, sp *Sprite, prevID *int64, wireVersion int) {
	b.WriteString("    sprite")
	if int64(sp.ID) != *prevID+1 {
		fmt.Fprintf(b, "%d", sp.ID)
	}
	*prevID = int64(sp.ID)
	fmt.Fprintf(b, " { x: %s, y: %s, w: %s, h: %s",
		formatFloat(sp.X), formatFloat(sp.Y), formatFloat(sp.W), formatFloat(sp.H))
	if IsTH19OrNewer(wireVersion) {
		for i, v := range sp.Extra {
			if v != spriteDefaultExtras[i] {
				fmt.Fprintf(b, ", th19_unk%d: %s", i, formatFloat(v))
			}
		}
	}
	b.WriteString(" }\n")
}

func emitScript(b *strings.Builder, s *Script, prevScriptID *int64, opts *TextOptions) error {
	b.WriteString("    script")
	if int64(s.OffsetRecord.ID) != *prevScriptID+1 {
		fmt.Fprintf(b, "%d", s.OffsetRecord.ID)
	}
	*prevScriptID = int64(s.OffsetRecord.ID)
	fmt.Fprintf(b, " script%d ", s.RealIndex)
	if s.NoSentinel {
		b.WriteString("[[no_sentinel]] ")
	}
	b.WriteString("{\n")

	var runningTime int16
	var cursor uint32
	forceAbsNext := false
	for _, inst := range s.Instructions {
		switch v := inst.(type) {
		case *Label:
			fmt.Fprintf(b, "        offset%d:\n", v.ByteOffsetInScript)
		case *TimeMarker:
			if v.Time < 0 || forceAbsNext {
				fmt.Fprintf(b, "        %d:\n", v.Time)
				forceAbsNext = v.Time < 0
			} else {
				fmt.Fprintf(b, "        +%d: // %d\n", v.Time-runningTime, v.Time)
				forceAbsNext = false
			}
			runningTime = v.Time
		case *Instr:
			if opts.PrintOffsets {
				fmt.Fprintf(b, "        // at %d, rel %d\n", cursor, v.ByteOffsetInScript)
			}
			b.WriteString("        ")
			if err := emitInstr(b, v, opts.Names); err != nil {
				return err
			}
			b.WriteString("\n")
			cursor += v.ByteSize
		}
	}
	b.WriteString("    }\n")
	return nil
}

func emitInstr(b *strings.Builder, in *Instr, nm *NameMap) error {
	mnemonic := fmt.Sprintf("ins_%d", in.OpcodeID)
	if nm != nil {
		if name, ok := nm.Mnemonic(in.OpcodeID); ok {
			mnemonic = name
		}
	}
	b.WriteString(mnemonic)
	b.WriteByte('(')
	for i, p := range in.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(renderParam(p, nm))
	}
	b.WriteString(");")
	return nil
}

func renderParam(p Param, nm *NameMap) string {
	if p.IsVar {
		isFloat := p.TypeTag == 'f'
		if nm != nil {
			if name, ok := nm.VarName(p.IntValue, isFloat); ok {
				if isFloat {
					return "%" + name
				}
				return "$" + name
			}
		}
		return fmt.Sprintf("[%d]", p.IntValue)
	}
	switch p.TypeTag {
	case 'f':
		return formatFloat(p.FloatValue)
	case 'o':
		return "offset" + offsetIdent(p.IntValue)
	case 'n':
		if p.IntValue < 0 {
			return strconv.FormatInt(int64(p.IntValue), 10)
		}
		return fmt.Sprintf("sprite%d", p.IntValue)
	case 'N':
		if p.IntValue < 0 {
			return strconv.FormatInt(int64(p.IntValue), 10)
		}
		return fmt.Sprintf("script%d", p.IntValue)
	default:
		return strconv.FormatInt(int64(p.IntValue), 10)
	}
}

// offsetIdent renders an offsetN literal's integer suffix, replacing '-'
// with 'M' so a negative offset still reads as a single identifier.
func offsetIdent(v int32) string {
	s := strconv.FormatInt(int64(v), 10)
	return strings.Replace(s, "-", "M", 1)
}

func formatFloat(v float32) string {
	if v == float32(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func uniqueFilename(name, archiveStem string, index int) string {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(path.Base(name), ext)
	return fmt.Sprintf("%s@%s@%d%s", stem, archiveStem, index, ext)
}
