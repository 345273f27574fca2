package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by Save for file extensions other than .ppm and .png
var ErrUnsupportedFormat = errors.New("unsupported image format")

// WritePPM writes img as a plain-text PPM (P3): a header of "P3", "width height"
// and "255", then one "r g b" line per pixel, top scanline first, left to right.
func WritePPM(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("failed to write PPM pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM output: %w", err)
	}
	return nil
}

// WritePNG writes img as a PNG
func WritePNG(w io.Writer, img *image.RGBA) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// Save writes img to path, choosing the format from the file extension.
// Parent directories are created as needed.
func Save(path string, img *image.RGBA) error {
	var encode func(io.Writer, *image.RGBA) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		encode = WritePPM
	case ".png":
		encode = WritePNG
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := encode(file, img); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
