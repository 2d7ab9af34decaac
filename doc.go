// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package anm implements a bidirectional codec for versioned ANM archives:
// binary containers used by a family of 2D shooting games to bundle image
// metadata, a sprite atlas, one or more bytecoded animation scripts, and
// optionally a texture payload.
//
// Archive decodes a mapped or in-memory buffer into a typed entry/sprite/
// script tree; Serialize re-lays-out that tree and writes version-correct
// bytes. The text emitter renders the tree as a diff-friendly spec; the
// grammar that parses that spec back into a tree is an external concern —
// this package only defines the AST the parser must produce.
package anm
