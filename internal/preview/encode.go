package preview

import (
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
)

// Ext returns the file extension for a preview format.
func Ext(format string) string {
	if format == "tga" {
		return ".tga"
	}
	return ".webp"
}

// Encode writes img as "webp" (the default) or "tga".
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "", "webp":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return errors.Wrap(err, "preview: webp encode")
		}
	case "tga":
		if err := tga.Encode(w, img); err != nil {
			return errors.Wrap(err, "preview: tga encode")
		}
	default:
		return errors.Errorf("preview: unknown format %q", format)
	}
	return nil
}

// WriteFile encodes img to path, creating parent directories.
func WriteFile(path string, img image.Image, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "preview")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "preview")
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
