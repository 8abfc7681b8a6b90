// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging re-encodes uploaded project images in their original
// format and renders bounded previews. Only JPEG, PNG and GIF are handled.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	"golang.org/x/image/draw"
)

const (
	// MaxPixels caps the number of pixels to prevent memory bombs.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	MaxPixels = 100_000_000

	// PreviewWidth and PreviewHeight bound the preview shown before saving.
	PreviewWidth  = 200
	PreviewHeight = 120

	jpegQuality = 90
)

// Format is a supported raster format.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
	GIF  Format = "gif"
)

// ErrUnsupported is returned for extensions outside jpg, jpeg, png and gif.
var ErrUnsupported = errors.New("unsupported image format")

// FormatFromExt maps a file extension (with or without the dot, any case)
// to a Format.
func FormatFromExt(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	return "image/" + string(f)
}

// decode checks the dimensions before fully decoding the image.
func decode(data []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Check for image bombs.
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, MaxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Reencode decodes data and encodes it again as format. The input may be
// any of the supported formats regardless of the target.
func Reencode(data []byte, format Format) ([]byte, error) {
	img, err := decode(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case JPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case PNG:
		err = png.Encode(&buf, img)
	case GIF:
		err = gif.Encode(&buf, img, nil)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// FitWithin returns the largest size with the aspect ratio of w×h that fits
// inside maxW×maxH. Images that already fit are not upscaled.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	ratio := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(math.Round(float64(w)*ratio)))
	nh := max(1, int(math.Round(float64(h)*ratio)))
	return nw, nh
}

// Preview renders data as a PNG bounded to maxW×maxH, preserving the
// aspect ratio.
func Preview(data []byte, maxW, maxH int) ([]byte, error) {
	img, err := decode(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := FitWithin(bounds.Dx(), bounds.Dy(), maxW, maxH)

	// Resize using CatmullRom (high quality).
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
