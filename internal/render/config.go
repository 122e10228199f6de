package render

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/DoyleJ11/xiangqi-picker/internal/catalog"
)

// Canvas is the edge length of the canonical drawing space. All geometry in
// Config is expressed in canonical units and scaled by Size/Canvas.
const Canvas = 1024.0

type Style int

const (
	// StyleBadge draws a translucent circle behind each glyph.
	StyleBadge Style = iota
	// StyleGrid draws a filled, outlined cell behind each glyph.
	StyleGrid
)

func (s Style) String() string {
	switch s {
	case StyleBadge:
		return "badge"
	case StyleGrid:
		return "grid"
	default:
		return fmt.Sprintf("style(%d)", int(s))
	}
}

func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "badge", "":
		return StyleBadge, nil
	case "grid":
		return StyleGrid, nil
	default:
		return 0, fmt.Errorf("unknown render style %q", s)
	}
}

type Config struct {
	// Size is the output edge length in pixels; the image is square.
	Size       int
	Background color.Color

	Frame      bool
	FrameColor color.Color
	FrameWidth float64

	Style Style
	// BadgeRadius is a fraction of one cell (Canvas/3).
	BadgeRadius float64
	BadgeFill   map[catalog.Team]color.Color
	TeamColor   map[catalog.Team]color.Color

	GlyphSize float64
	// Font holds TTF or OTF data. It must cover every catalog glyph.
	Font []byte
}

func DefaultConfig() Config {
	return Config{
		Size:        1024,
		Background:  color.White,
		Frame:       true,
		FrameColor:  color.RGBA{0xcc, 0xcc, 0xcc, 0xff},
		FrameWidth:  2,
		Style:       StyleBadge,
		BadgeRadius: 1.0 / 3.0,
		BadgeFill: map[catalog.Team]color.Color{
			catalog.TeamRed:   color.NRGBA{255, 200, 200, 128},
			catalog.TeamBlack: color.NRGBA{200, 200, 200, 128},
		},
		TeamColor: map[catalog.Team]color.Color{
			catalog.TeamRed:   color.RGBA{255, 0, 0, 255},
			catalog.TeamBlack: color.Black,
		},
		GlyphSize: 100,
	}
}

type Option func(*Config)

func WithSize(px int) Option {
	return func(c *Config) { c.Size = px }
}

func WithStyle(s Style) Option {
	return func(c *Config) { c.Style = s }
}

func WithFrame(on bool) Option {
	return func(c *Config) { c.Frame = on }
}

func WithFont(data []byte) Option {
	return func(c *Config) { c.Font = data }
}

// ReadFont loads font data from path. An empty path returns nil data.
func ReadFont(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return data, nil
}
