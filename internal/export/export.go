package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/multierr"
	"golang.org/x/text/unicode/norm"

	"github.com/DoyleJ11/xiangqi-picker/internal/engine"
	"github.com/DoyleJ11/xiangqi-picker/internal/render"
)

// DefaultFileName is used when the user leaves the name empty.
const DefaultFileName = "象棋选择_高分辨率.png"

// FileName turns user input into a safe PNG file name.
func FileName(name, fallback string) string {
	if fallback == "" {
		fallback = DefaultFileName
	}
	name = norm.NFC.String(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
	name = strings.Trim(name, ". ")
	if name == "" {
		name = fallback
	}
	if !strings.EqualFold(filepath.Ext(name), ".png") {
		name += ".png"
	}
	return name
}

// Save writes data to dir/name through a temp file and rename, so a failed
// write never leaves a partial file under the final name.
func Save(dir, name string, data []byte) (path string, err error) {
	tmp, err := os.CreateTemp(dir, ".export-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, removeIfExists(tmp.Name()))
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return "", multierr.Append(fmt.Errorf("write %s: %w", tmp.Name(), err), tmp.Close())
	}
	if err = tmp.Sync(); err != nil {
		return "", multierr.Append(fmt.Errorf("sync %s: %w", tmp.Name(), err), tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	path = filepath.Join(dir, name)
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename to %s: %w", path, err)
	}
	return path, nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exporter renders a snapshot and saves it under a user-chosen name.
type Exporter struct {
	Renderer *render.Renderer
	Dir      string
	Fallback string
}

// Export renders snap and writes it to disk, returning the final path.
// A render failure never touches the filesystem.
func (x Exporter) Export(snap engine.Snapshot, name string) (string, error) {
	data, err := x.Renderer.Render(snap)
	if err != nil {
		return "", err
	}
	dir := x.Dir
	if dir == "" {
		dir = "."
	}
	return Save(dir, FileName(name, x.Fallback), data)
}
