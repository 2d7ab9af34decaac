// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package anm

// SentinelOpcode is the opcode id of the v>=2 end-of-script terminator
// format entry. It never appears as a real decoded instruction.
const SentinelOpcode uint16 = 0xffff

// th18WireVersions lists the wire versions whose header_version==8 archives
// consult th18PatchFormats before falling back to v8Formats.
var th18WireVersions = map[int]bool{
	18:  true,
	185: true,
	19:  true,
	20:  true,
}

// FindFormat returns the parameter format string for opcodeID under the
// given wire version and header version, and whether it was found. For
// header_version==8 and a wire version in th18WireVersions, th18PatchFormats
// is consulted first; an entry there short-circuits the base v8 lookup
// exactly as anm_find_format does (opcode 439 changes signature to "Sff"
// starting with TH18).
func FindFormat(wireVersion int, headerVersion uint16, opcodeID uint16) (string, bool) {
	switch headerVersion {
	case 0:
		f, ok := v0Formats[opcodeID]
		return f, ok
	case 2:
		f, ok := v2Formats[opcodeID]
		return f, ok
	case 3:
		f, ok := v3Formats[opcodeID]
		return f, ok
	case 4, 7:
		f, ok := v4pFormats[opcodeID]
		return f, ok
	case 8:
		if th18WireVersions[wireVersion] {
			if f, ok := th18PatchFormats[opcodeID]; ok {
				return f, true
			}
		}
		f, ok := v8Formats[opcodeID]
		return f, ok
	default:
		return "", false
	}
}

// IsTH19OrNewer mirrors thanm.c's TH19_OR_NEWER macro: wire versions from
// 19 to 99, or 200 and above, use the "new" ANM shape (extra sprite
// floats, w_max/h_max header fields, PNG/JPEG texture payloads). The
// 100-199 range is reserved and treated as pre-19.
func IsTH19OrNewer(wireVersion int) bool {
	return wireVersion >= 19 && (wireVersion < 100 || wireVersion >= 200)
}
