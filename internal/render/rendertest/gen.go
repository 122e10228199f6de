//go:build ignore

// gen writes pieces.ttf: a TrueType font with one glyph per default catalog
// piece. Every glyph is a solid square centered on the em box plus a small
// bar whose x position depends on the glyph, so each piece draws differently.
package main

import (
	"bytes"
	"encoding/binary"
	"log"
	"os"
	"sort"

	"github.com/DoyleJ11/xiangqi-picker/internal/catalog"
)

const (
	unitsPerEm = 1000
	ascent     = 880
	descent    = -120
	advance    = 1000
)

type point struct{ x, y int16 }

func rect(x0, y0, x1, y1 int16) []point {
	return []point{{x0, y0}, {x0, y1}, {x1, y1}, {x1, y0}}
}

func put(buf *bytes.Buffer, vs ...any) {
	for _, v := range vs {
		if err := binary.Write(buf, binary.BigEndian, v); err != nil {
			log.Fatal(err)
		}
	}
}

func pad4(buf *bytes.Buffer) {
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
}

func simpleGlyph(contours ...[]point) []byte {
	var pts []point
	for _, c := range contours {
		pts = append(pts, c...)
	}
	minX, minY, maxX, maxY := pts[0].x, pts[0].y, pts[0].x, pts[0].y
	for _, p := range pts {
		minX, maxX = min(minX, p.x), max(maxX, p.x)
		minY, maxY = min(minY, p.y), max(maxY, p.y)
	}

	var b bytes.Buffer
	put(&b, int16(len(contours)), minX, minY, maxX, maxY)
	end := -1
	for _, c := range contours {
		end += len(c)
		put(&b, uint16(end))
	}
	put(&b, uint16(0)) // no instructions
	for range pts {
		b.WriteByte(1) // on curve, int16 deltas
	}
	var prev point
	for _, p := range pts {
		put(&b, p.x-prev.x)
		prev.x = p.x
	}
	for _, p := range pts {
		put(&b, p.y-prev.y)
		prev.y = p.y
	}
	return b.Bytes()
}

func main() {
	entries := catalog.Default()

	glyphs := [][]byte{nil} // .notdef
	for i := range entries {
		x := int16(60 + 60*i)
		glyphs = append(glyphs, simpleGlyph(rect(200, 80, 800, 680), rect(x, 720, x+50, 860)))
	}
	numGlyphs := uint16(len(glyphs))

	var glyf, loca bytes.Buffer
	for _, g := range glyphs {
		put(&loca, uint32(glyf.Len()))
		glyf.Write(g)
		pad4(&glyf)
	}
	put(&loca, uint32(glyf.Len()))

	var head bytes.Buffer
	put(&head, uint32(0x00010000), uint32(0x00010000), uint32(0), uint32(0x5F0F3CF5), uint16(0x000B), uint16(unitsPerEm))
	head.Write(make([]byte, 16)) // created, modified
	put(&head, int16(0), int16(descent), int16(advance), int16(ascent))
	put(&head, uint16(0), uint16(8), int16(2), int16(1), int16(0))

	var hhea bytes.Buffer
	put(&hhea, uint32(0x00010000), int16(ascent), int16(descent), int16(0))
	put(&hhea, uint16(advance), int16(0), int16(0), int16(890))
	put(&hhea, int16(1), int16(0), int16(0))
	hhea.Write(make([]byte, 8))
	put(&hhea, int16(0), numGlyphs)

	var hmtx bytes.Buffer
	for range glyphs {
		put(&hmtx, uint16(advance), int16(0))
	}

	var maxp bytes.Buffer
	put(&maxp, uint32(0x00010000), numGlyphs, uint16(8), uint16(2))
	maxp.Write(make([]byte, 22))

	type group struct{ cp, gid uint32 }
	var groups []group
	for i, e := range entries {
		groups = append(groups, group{uint32([]rune(e.Token.Glyph)[0]), uint32(i + 1)})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].cp < groups[j].cp })

	var cmap bytes.Buffer
	put(&cmap, uint16(0), uint16(1), uint16(3), uint16(10), uint32(12))
	put(&cmap, uint16(12), uint16(0), uint32(16+12*len(groups)), uint32(0), uint32(len(groups)))
	for _, g := range groups {
		put(&cmap, g.cp, g.cp, g.gid)
	}

	var post bytes.Buffer
	put(&post, uint32(0x00030000), uint32(0), int16(-100), int16(50), uint32(0))
	post.Write(make([]byte, 16))

	// sorted by tag
	tables := []struct {
		tag  string
		data []byte
	}{
		{"cmap", cmap.Bytes()},
		{"glyf", glyf.Bytes()},
		{"head", head.Bytes()},
		{"hhea", hhea.Bytes()},
		{"hmtx", hmtx.Bytes()},
		{"loca", loca.Bytes()},
		{"maxp", maxp.Bytes()},
		{"post", post.Bytes()},
	}

	var out, body bytes.Buffer
	n := uint16(len(tables))
	put(&out, uint32(0x00010000), n, uint16(128), uint16(3), n*16-128)
	offset := 12 + 16*len(tables)
	for _, t := range tables {
		out.WriteString(t.tag)
		put(&out, uint32(0), uint32(offset+body.Len()), uint32(len(t.data)))
		body.Write(t.data)
		pad4(&body)
	}
	out.Write(body.Bytes())

	if err := os.WriteFile("pieces.ttf", out.Bytes(), 0o644); err != nil {
		log.Fatal(err)
	}
}
