// Package imageproc resizes and re-encodes uploaded images.
package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // webp decoder
)

const (
	FormatJPEG = "jpeg"
	FormatWebP = "webp"
	FormatPNG  = "png"
)

const (
	DefaultQuality   = 85
	DefaultMaxWidth  = 1920
	DefaultMaxHeight = 1080
	DefaultMaxPixels = 16383 * 16383
)

// ErrTooManyPixels is returned before decoding when the source dimensions
// exceed Options.MaxPixels.
var ErrTooManyPixels = errors.New("imageproc: image dimensions exceed pixel limit")

type Options struct {
	Quality   int
	MaxWidth  int
	MaxHeight int
	Format    string
	// MaxPixels bounds width*height of the source image.
	MaxPixels int64
}

// Normalize replaces out-of-range values with defaults.
func (o Options) Normalize() Options {
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.MaxHeight <= 0 {
		o.MaxHeight = DefaultMaxHeight
	}
	if o.MaxPixels <= 0 {
		o.MaxPixels = DefaultMaxPixels
	}
	switch o.Format {
	case FormatJPEG, FormatWebP, FormatPNG:
	default:
		o.Format = FormatJPEG
	}
	return o
}

type Result struct {
	Data        []byte
	Width       int
	Height      int
	Format      string
	Ext         string
	ContentType string
}

// Compress decodes r, shrinks it to fit inside MaxWidth x MaxHeight keeping
// the aspect ratio (never enlarging) and re-encodes it in opts.Format.
// Sources larger than MaxPixels are rejected from their header alone.
func Compress(r io.Reader, opts Options) (*Result, error) {
	opts = opts.Normalize()
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > opts.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}
	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() > opts.MaxWidth || b.Dy() > opts.MaxHeight {
		img = imaging.Fit(img, opts.MaxWidth, opts.MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	res := &Result{Format: opts.Format}
	switch opts.Format {
	case FormatWebP:
		err = webp.Encode(&buf, img, &webp.Options{Quality: float32(opts.Quality)})
		res.Ext, res.ContentType = ".webp", "image/webp"
	case FormatPNG:
		err = imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
		res.Ext, res.ContentType = ".png", "image/png"
	default:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(opts.Quality))
		res.Ext, res.ContentType = ".jpg", "image/jpeg"
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", opts.Format, err)
	}
	res.Data = buf.Bytes()
	res.Width, res.Height = dims(img)
	return res, nil
}

func dims(img image.Image) (int, int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
