// Package rendertest provides a font for tests that covers every piece of
// the default catalog.
package rendertest

import _ "embed"

//go:generate go run gen.go

// Font is a TrueType font with units per em 1000. Each glyph is a solid
// 600x600 square centered on the em box (so a glyph drawn by the renderer
// covers its slot center) plus a small bar that differs per glyph.
//
//go:embed pieces.ttf
var Font []byte
