// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	alog "github.com/saferwall-community/anmtool/log"
)

// Options configures how an Archive is decoded.
type Options struct {
	// WireVersion is the game/format version (e.g. 18, 185, 19, 20) used
	// to select opcode tables and gate wire-≥19 behavior. It is distinct
	// from each entry's header version discriminant.
	WireVersion int

	// Force is recorded on the Archive but Serialize does not read it: an
	// unresolved 'o' or 't' target always makes Serialize return
	// ErrUnresolvedLabel, with no placeholder value and no diagnostic.
	Force bool

	// PrintOffsets is recorded on the Archive but not read by this package;
	// EmitText takes the setting from TextOptions.PrintOffsets.
	PrintOffsets bool

	// UniqueFilenames is recorded on the Archive but not read by this
	// package; EmitText takes the setting from TextOptions.UniqueFilenames.
	UniqueFilenames bool

	// Logger backs the Archive's logger (a no-op logger when nil). Decoding
	// does not write to it: non-fatal diagnostics are collected in the
	// Anomalies fields of the Archive, its entries and its scripts.
	Logger alog.Logger
}

// Archive is a decoded ANM archive: an ordered chain of entries plus an
// interned name set.
type Archive struct {
	Entries   []*Entry
	Anomalies []string

	data []byte
	// mapped is non-nil when data came from a memory-mapped file; Close
	// unmaps it exactly once. Entries decoded from a mapping still copy
	// every scalar field out during decode, so there is no cross-entry
	// aliasing hazard to track beyond this one buffer.
	mapped mmap.MMap
	f      *os.File

	names map[string]string

	opts   *Options
	logger *alog.Helper
}

// OpenFile memory-maps name and decodes it as an ANM archive.
func OpenFile(name string, opts *Options) (*Archive, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	a := newArchive(opts)
	a.data = data
	a.mapped = data
	a.f = f
	return a, nil
}

// OpenBytes decodes an in-memory buffer as an ANM archive. The archive
// does not take ownership of data beyond holding a reference to it.
func OpenBytes(data []byte, opts *Options) (*Archive, error) {
	a := newArchive(opts)
	a.data = data
	return a, nil
}

func newArchive(opts *Options) *Archive {
	a := &Archive{names: make(map[string]string)}
	if opts != nil {
		o := *opts
		a.opts = &o
	} else {
		a.opts = &Options{}
	}
	var logger alog.Logger
	if a.opts.Logger != nil {
		logger = a.opts.Logger
	} else {
		logger = alog.NewNopLogger()
	}
	a.logger = alog.NewHelper(logger)
	return a
}

// Close releases resources. If the archive was opened via OpenFile, the
// mapping is unmapped and the file descriptor closed, exactly once.
func (a *Archive) Close() error {
	if a.mapped != nil {
		_ = a.mapped.Unmap()
		a.mapped = nil
	}
	if a.f != nil {
		return a.f.Close()
	}
	return nil
}

// intern returns a shared instance of s from the archive's name set.
func (a *Archive) intern(s string) string {
	if v, ok := a.names[s]; ok {
		return v
	}
	a.names[s] = s
	return s
}

// Parse walks the entry chain and populates Entries. It stops fatally on
// any structural violation (§7); unknown opcodes and truncated scripts are
// recorded as diagnostics instead.
func (a *Archive) Parse() error {
	if len(a.data) < headerWireSize {
		return ErrTooSmall
	}

	var base uint32
	realIndex := 0
	for {
		entry, nextOffset, err := a.decodeEntry(base, &realIndex)
		if err != nil {
			return err
		}
		a.Entries = append(a.Entries, entry)
		a.Anomalies = append(a.Anomalies, entry.Anomalies...)

		if nextOffset == 0 {
			break
		}
		base += nextOffset
	}
	return nil
}

// decodeEntry decodes the entry at base and returns it along with its
// header's next_offset (relative to base; zero means "no more entries").
func (a *Archive) decodeEntry(base uint32, realIndex *int) (*Entry, uint32, error) {
	wireVersion := a.opts.WireVersion

	h, _, err := decodeHeader(a.data, base, wireVersion)
	if err != nil {
		return nil, 0, err
	}

	entry := &Entry{Header: h}

	name, err := readNullPaddedString(a.data, base+h.NameOffset, 1<<20)
	if err != nil {
		return nil, 0, err
	}
	entry.Name = a.intern(name)

	if h.Version == 0 && h.Y != 0 {
		name2, err := readNullPaddedString(a.data, base+uint32(h.Y), 1<<20)
		if err == nil {
			entry.Name2 = a.intern(name2)
		}
	}

	// Sprite offset table: Sprites uint32 little-endian offsets, relative
	// to the entry base.
	spriteOffsetsStart := base + headerWireSize
	for i := uint16(0); i < h.Sprites; i++ {
		off, err := readUint32(a.data, spriteOffsetsStart+uint32(i)*4)
		if err != nil {
			return nil, 0, err
		}
		sp, err := decodeSprite(a.data, base+off, wireVersion)
		if err != nil {
			return nil, 0, err
		}
		entry.Sprites = append(entry.Sprites, sp)
	}

	scriptOffsetsStart := spriteOffsetsStart + uint32(h.Sprites)*4
	type scriptHead struct {
		rec ScriptOffsetRecord
	}
	heads := make([]scriptHead, 0, h.Scripts)
	for i := uint16(0); i < h.Scripts; i++ {
		recOff := scriptOffsetsStart + uint32(i)*scriptOffsetRecordSize
		id, err := readInt32(a.data, recOff)
		if err != nil {
			return nil, 0, err
		}
		off, err := readUint32(a.data, recOff+4)
		if err != nil {
			return nil, 0, err
		}
		heads = append(heads, scriptHead{rec: ScriptOffsetRecord{ID: id, Offset: off}})
	}

	fileSize := uint32(len(a.data))
	for i, sh := range heads {
		limit := fileSize
		if i+1 < len(heads) {
			limit = base + heads[i+1].rec.Offset
		} else if h.HasData {
			limit = base + h.ThtxOffset
		} else if h.NextOffset != 0 {
			limit = base + h.NextOffset
		}

		s, err := decodeScript(a.data, base+sh.rec.Offset, limit, wireVersion, h.Version)
		if err != nil {
			return nil, 0, err
		}
		s.OffsetRecord = sh.rec
		s.RealIndex = *realIndex
		*realIndex++
		entry.Scripts = append(entry.Scripts, s)
		entry.Anomalies = append(entry.Anomalies, s.Anomalies...)
	}

	if h.HasData {
		if len(entry.Name) == 0 || entry.Name[0] == '@' {
			return nil, 0, ErrDataInvariant
		}
		thtx, data, err := decodeThtx(a.data, base+h.ThtxOffset, wireVersion)
		if err != nil {
			return nil, 0, err
		}
		entry.Thtx = thtx
		entry.Data = data
	} else {
		if h.ThtxOffset != 0 {
			return nil, 0, ErrDataInvariant
		}
		if len(entry.Name) == 0 || entry.Name[0] != '@' {
			return nil, 0, ErrDataInvariant
		}
	}

	return entry, h.NextOffset, nil
}
