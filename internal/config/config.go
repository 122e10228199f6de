package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/DoyleJ11/xiangqi-picker/internal/render"
)

type Config struct {
	HTTPAddr  string `env:"PICKER_HTTP_ADDR" envDefault:":8080"`
	LogLevel  string `env:"PICKER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"PICKER_LOG_FORMAT" envDefault:"json"`

	// LogFile is used by the terminal picker, which cannot log to the screen.
	LogFile string `env:"PICKER_LOG_FILE" envDefault:"picker.log"`

	ExportDir       string `env:"PICKER_EXPORT_DIR" envDefault:"."`
	ExportSize      int    `env:"PICKER_EXPORT_SIZE" envDefault:"1024"`
	ExportStyle     string `env:"PICKER_EXPORT_STYLE" envDefault:"badge"`
	ExportFrame     bool   `env:"PICKER_EXPORT_FRAME" envDefault:"true"`
	FontPath        string `env:"PICKER_FONT_PATH"`
	DefaultFileName string `env:"PICKER_DEFAULT_FILENAME" envDefault:"象棋选择_高分辨率.png"`
}

// Load reads an optional .env file from the working directory, then parses
// the environment. Variables already set win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := render.ParseStyle(c.ExportStyle); err != nil {
		return Config{}, err
	}
	return c, nil
}

// RenderConfig builds the renderer configuration, reading the font file if
// one is configured.
func (c Config) RenderConfig() (render.Config, error) {
	style, err := render.ParseStyle(c.ExportStyle)
	if err != nil {
		return render.Config{}, err
	}
	font, err := render.ReadFont(c.FontPath)
	if err != nil {
		return render.Config{}, err
	}
	rc := render.DefaultConfig()
	rc.Size = c.ExportSize
	rc.Style = style
	rc.Frame = c.ExportFrame
	rc.Font = font
	return rc, nil
}

// NewRenderer builds the export renderer from the configuration. A font that
// cannot draw the catalog is reported together with the variable that
// selects the font.
func (c Config) NewRenderer() (*render.Renderer, error) {
	rc, err := c.RenderConfig()
	if err != nil {
		return nil, err
	}
	rd, err := render.New(rc)
	if errors.Is(err, render.ErrNoFont) || errors.Is(err, render.ErrMissingGlyph) {
		return nil, fmt.Errorf("%w (set PICKER_FONT_PATH to a TTF or OTF font with CJK glyphs)", err)
	}
	return rd, err
}
