// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package assets persists project images. A chosen file is re-encoded in
// its original format, written under a random UUID name to a Sink, and
// referenced afterwards by the public URL the Sink returns.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"folioadmin/internal/imaging"
)

// MaxUploadSize is the largest image file accepted (20 MB).
const MaxUploadSize = 20 << 20

// ErrTooLarge is returned when an image exceeds MaxUploadSize.
var ErrTooLarge = errors.New("image exceeds upload size limit")

// AllowedExtensions lists the file extensions offered by file pickers.
var AllowedExtensions = []string{"jpg", "jpeg", "png", "gif"}

// Sink stores an encoded image under name and returns its public URL.
// Both *LocalSink and *storage.Client satisfy it.
type Sink interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Handler turns uploaded files into stored images.
type Handler struct {
	sink    Sink
	newName func() string
}

// New creates a Handler writing to sink.
func New(sink Sink) *Handler {
	return &Handler{sink: sink, newName: uuid.NewString}
}

// AllowedExtension reports whether filename has an accepted image extension.
func AllowedExtension(filename string) bool {
	_, err := imaging.FormatFromExt(filepath.Ext(filename))
	return err == nil
}

// Persist re-encodes the image read from r in the format implied by
// originalName's extension and stores it as <uuid>.<ext>. It returns the
// public URL of the stored file.
func (h *Handler) Persist(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	format, err := imaging.FormatFromExt(ext)
	if err != nil {
		return "", err
	}

	data, err := readLimited(r)
	if err != nil {
		return "", err
	}

	encoded, err := imaging.Reencode(data, format)
	if err != nil {
		return "", fmt.Errorf("reencode %s: %w", originalName, err)
	}

	name := h.newName() + "." + ext
	url, err := h.sink.Put(ctx, name, format.ContentType(), encoded)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return url, nil
}

// Preview returns a PNG of the image read from r bounded to the preview
// size. Nothing is stored.
func (h *Handler) Preview(r io.Reader) ([]byte, error) {
	data, err := readLimited(r)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(data, imaging.PreviewWidth, imaging.PreviewHeight)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
