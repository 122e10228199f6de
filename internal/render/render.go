package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/DoyleJ11/xiangqi-picker/internal/catalog"
	"github.com/DoyleJ11/xiangqi-picker/internal/engine"
)

const maxSize = 8192

var ErrRender = errors.New("render failed")

var (
	// ErrNoFont is returned by New when Config.Font is empty.
	ErrNoFont = errors.New("no font configured")
	// ErrMissingGlyph is returned when the font cannot draw a piece.
	ErrMissingGlyph = errors.New("font has no glyph")

	errNoSurface = errors.New("renderer not initialized")
)

// RenderError reports a failure to create, draw or encode the surface.
// It matches ErrRender under errors.Is.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() []error { return []error{ErrRender, e.Err} }

// Renderer draws a selection snapshot onto a plus-shaped layout.
// It holds no per-render state and is safe for concurrent use.
type Renderer struct {
	cfg  Config
	font *opentype.Font
}

func New(cfg Config, opts ...Option) (*Renderer, error) {
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Size <= 0 || cfg.Size > maxSize {
		return nil, &RenderError{Op: "surface", Err: fmt.Errorf("size %d outside 1..%d", cfg.Size, maxSize)}
	}
	if len(cfg.Font) == 0 {
		return nil, &RenderError{Op: "font", Err: ErrNoFont}
	}
	f, err := opentype.Parse(cfg.Font)
	if err != nil {
		return nil, &RenderError{Op: "font", Err: err}
	}
	var buf sfnt.Buffer
	for _, e := range catalog.Default() {
		if err := checkGlyph(f, &buf, e.Token.Glyph); err != nil {
			return nil, &RenderError{Op: "font", Err: err}
		}
	}
	return &Renderer{cfg: cfg, font: f}, nil
}

// checkGlyph fails when any rune of glyph maps to the font's notdef glyph.
func checkGlyph(f *opentype.Font, buf *sfnt.Buffer, glyph string) error {
	for _, r := range glyph {
		idx, err := f.GlyphIndex(buf, r)
		if err != nil {
			return fmt.Errorf("glyph %q: %w", r, err)
		}
		if idx == 0 {
			return fmt.Errorf("%w %q", ErrMissingGlyph, r)
		}
	}
	return nil
}

// Position returns the center of slot in pixels for an image of edge size.
func Position(slot engine.Slot, size int) (x, y float64) {
	s := float64(size) / Canvas
	c := Canvas / 2
	cell := Canvas / 3
	switch slot {
	case engine.SlotLeft:
		return (c - cell) * s, c * s
	case engine.SlotRight:
		return (c + cell) * s, c * s
	case engine.SlotTop:
		return c * s, (c - cell) * s
	case engine.SlotBottom:
		return c * s, (c + cell) * s
	default:
		return c * s, c * s
	}
}

// Draw paints snap into a new image. Empty slots draw nothing.
func (r *Renderer) Draw(snap engine.Snapshot) (*image.RGBA, error) {
	if r.font == nil || r.cfg.Size <= 0 {
		return nil, &RenderError{Op: "surface", Err: errNoSurface}
	}
	size := r.cfg.Size
	scale := float64(size) / Canvas
	cell := Canvas / 3 * scale

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(orDefault(r.cfg.Background, color.White)), image.Point{}, draw.Src)

	if r.cfg.Frame {
		cx, cy := Position(engine.SlotCenter, size)
		w := r.cfg.FrameWidth * scale / 2
		fc := orDefault(r.cfg.FrameColor, color.Black)
		fillRect(img, cx-w, cy-cell, cx+w, cy+cell, fc)
		fillRect(img, cx-cell, cy-w, cx+cell, cy+w, fc)
	}

	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    r.cfg.GlyphSize * scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, &RenderError{Op: "font", Err: err}
	}
	defer face.Close()

	var buf sfnt.Buffer
	for _, sv := range snap.Slots {
		if !sv.Occupied {
			continue
		}
		if err := checkGlyph(r.font, &buf, sv.Glyph); err != nil {
			return nil, &RenderError{Op: "glyph", Err: err}
		}
	}

	for _, sv := range snap.Slots {
		if !sv.Occupied {
			continue
		}
		x, y := Position(sv.Slot, size)
		fill := r.badgeFill(sv.Team)
		switch r.cfg.Style {
		case StyleGrid:
			h := cell / 2
			fillRect(img, x-h, y-h, x+h, y+h, fill)
			strokeRect(img, x-h, y-h, x+h, y+h, r.cfg.FrameWidth*scale, orDefault(r.cfg.FrameColor, color.Black))
		default:
			fillCircle(img, x, y, r.cfg.BadgeRadius*cell, fill)
		}
		drawGlyph(img, face, sv.Glyph, x, y, r.teamColor(sv.Team))
	}
	return img, nil
}

// Render draws snap and encodes it as PNG. On error no bytes are returned.
func (r *Renderer) Render(snap engine.Snapshot) ([]byte, error) {
	img, err := r.Draw(snap)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, &RenderError{Op: "encode", Err: err}
	}
	return buf.Bytes(), nil
}

func (r *Renderer) badgeFill(t catalog.Team) color.Color {
	if c, ok := r.cfg.BadgeFill[t]; ok {
		return c
	}
	return color.Transparent
}

func (r *Renderer) teamColor(t catalog.Team) color.Color {
	if c, ok := r.cfg.TeamColor[t]; ok {
		return c
	}
	return color.Black
}

func drawGlyph(dst draw.Image, face font.Face, glyph string, cx, cy float64, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	adv := d.MeasureString(glyph)
	m := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(cx*64) - adv/2,
		Y: fixed.Int26_6(cy*64) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(glyph)
}

func orDefault(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}
