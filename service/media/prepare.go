package media

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Rendition is one prepared variant of a source image, ready for upload.
type Rendition struct {
	Name   string
	Reader io.Reader
}

// Options configures product-image preparation. Zero values mean: keep the
// original size, emit a 200px thumbnail, no webp variant.
type Options struct {
	MaxWidth  int
	ThumbSize int
	WebP      bool
	Quality   float32 // webp quality, 0 means 85
}

// PrepareImage decodes a product image and produces the upload renditions:
// the (optionally downscaled) original, a square thumbnail, and optionally a
// webp variant. Images are prepared locally so the backend only ever stores
// finished files.
func PrepareImage(name string, r io.Reader, opts Options) ([]Rendition, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	if opts.ThumbSize <= 0 {
		opts.ThumbSize = 200
	}

	main := src
	if opts.MaxWidth > 0 && src.Bounds().Dx() > opts.MaxWidth {
		main = imaging.Resize(src, opts.MaxWidth, 0, imaging.Lanczos)
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))

	var out []Rendition

	mainBuf, err := encodeJPEG(main)
	if err != nil {
		return nil, err
	}
	out = append(out, Rendition{Name: base + ".jpg", Reader: mainBuf})

	thumb := imaging.Thumbnail(src, opts.ThumbSize, opts.ThumbSize, imaging.Lanczos)
	thumbBuf, err := encodeJPEG(thumb)
	if err != nil {
		return nil, err
	}
	out = append(out, Rendition{Name: base + "_thumb.jpg", Reader: thumbBuf})

	if opts.WebP {
		quality := opts.Quality
		if quality <= 0 {
			quality = 85
		}
		var buf bytes.Buffer
		if err := webp.Encode(&buf, main, &webp.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode webp: %w", err)
		}
		out = append(out, Rendition{Name: base + ".webp", Reader: &buf})
	}

	return out, nil
}

func encodeJPEG(img image.Image) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return &buf, nil
}
