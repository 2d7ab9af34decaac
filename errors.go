// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

import "errors"

// Structural, I/O and image-format errors. These are fatal: the caller
// should abort the current archive/entry rather than attempt to continue.
var (
	// ErrTooSmall is returned when the buffer is smaller than any possible
	// entry header.
	ErrTooSmall = errors.New("anm: buffer too small for an entry header")

	// ErrBadVersion is returned when the header version discriminant is not
	// one of {0,2,3,4,7,8}.
	ErrBadVersion = errors.New("anm: unsupported header version")

	// ErrBadHasData is returned when has_data is not 0 or 1.
	ErrBadHasData = errors.New("anm: has_data field is neither 0 nor 1")

	// ErrBadLowResScale is returned when lowresscale is set on a header
	// whose version isn't 8.
	ErrBadLowResScale = errors.New("anm: lowresscale set on non-v8 header")

	// ErrBadJpegQuality is returned when jpeg_quality is nonzero on a
	// header whose wire version is below 19.
	ErrBadJpegQuality = errors.New("anm: jpeg_quality set below wire version 19")

	// ErrBadMaxDims is returned when w_max/h_max are nonzero below wire
	// version 19.
	ErrBadMaxDims = errors.New("anm: w_max/h_max set below wire version 19")

	// ErrThtxMagic is returned when a thtx sub-header's magic isn't "THTX".
	ErrThtxMagic = errors.New("anm: thtx sub-header magic mismatch")

	// ErrThtxSize is returned when w*h*Bpp exceeds the declared thtx size.
	ErrThtxSize = errors.New("anm: thtx pixel data exceeds declared size")

	// ErrDataInvariant is returned when has_data/thtx/name[0]=='@' disagree.
	ErrDataInvariant = errors.New("anm: has_data/thtx/name invariant violated")

	// ErrUnresolvedLabel is returned when an 'o' or 't' parameter's target
	// offset does not land on any instruction boundary or the one-past-end
	// boundary of the script.
	ErrUnresolvedLabel = errors.New("anm: jump target does not land on an instruction boundary")

	// ErrUnresolvedName reports a sprite or script name reference that
	// cannot be found in a symbol table. Nothing in this package returns it:
	// Serialize resolves no names, only 'o'/'t' label targets.
	ErrUnresolvedName = errors.New("anm: unresolved sprite/script name reference")

	// ErrNotImage is returned when a texture payload was expected to be a
	// PNG or JPEG but matched neither.
	ErrNotImage = errors.New("anm: payload is not a recognized PNG or JPEG")

	// ErrNoSuchEntryName is returned when no entry in the archive carries
	// the requested name.
	ErrNoSuchEntryName = errors.New("anm: no entry with that name")

	// ErrChainFormatMismatch is returned when composing a chain whose
	// members don't all share the same pixel format expectations.
	ErrChainFormatMismatch = errors.New("anm: chain members disagree on pixel format")

	// ErrOutsideBoundary is returned when reading data beyond the mapped
	// buffer's limits.
	ErrOutsideBoundary = errors.New("anm: reading data outside boundary")
)

// Diagnostic kinds, used to tag entries appended to Archive.Anomalies and
// Script.Anomalies. These never stop decoding.
const (
	// AnoUnknownOpcode is reported when an opcode has no known format and
	// the decoder falls back to S* parameter decoding.
	AnoUnknownOpcode = "unknown opcode, decoded as raw S* parameters"

	// AnoTruncatedScript is reported when the next instruction's header
	// would cross the script's byte limit.
	AnoTruncatedScript = "script truncated before sentinel, no_sentinel set"

	// AnoUnresolvedSymbol tags an unresolved-symbol diagnostic. Nothing in
	// this package reports it: Serialize fails with ErrUnresolvedLabel on an
	// unresolved target instead of writing a placeholder.
	AnoUnresolvedSymbol = "unresolved symbol, serialized as placeholder zero"
)
