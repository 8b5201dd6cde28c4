// Package imaging reads and writes the images colr samples and renders.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/image/webp"
)

// decoders maps a lower-case file extension to its decoder.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".webp": webp.Decode,
}

// ErrUnsupportedFormat is returned for image files whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported image format (supported: png, jpg, jpeg, webp)")

// Supported reports whether path has an extension Load can decode.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load reads a PNG, JPEG or WEBP image from disk, picking the decoder by
// extension. The path is normalized with ExpandPath first.
func Load(path string) (image.Image, error) {
	path = ExpandPath(path)
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// SavePNG writes an image to disk as PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(ExpandPath(path))
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := EncodePNG(f, img); err != nil {
		return err
	}
	return f.Close()
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory and makes
// relative paths absolute.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	home := "~/"
	if runtime.GOOS == "windows" && strings.HasPrefix(path, `~\`) {
		home = `~\`
	}
	if path == "~" || strings.HasPrefix(path, home) {
		if dir, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(dir, path[1:])
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Clean(path)
}
