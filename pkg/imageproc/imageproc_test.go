package imageproc

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encoded(t *testing.T, w, h int, f imaging.Format) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, f))
	return buf.Bytes()
}

func TestCompressShrinksLargeJPEG(t *testing.T) {
	src := encoded(t, 5000, 3000, imaging.JPEG)

	res, err := Compress(bytes.NewReader(src), Options{})
	require.NoError(t, err)
	assert.Equal(t, 1800, res.Width)
	assert.Equal(t, 1080, res.Height)
	assert.Equal(t, ".jpg", res.Ext)
	assert.Less(t, len(res.Data), len(src))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, cfg.Width, 1920)
}

func TestCompressNeverEnlarges(t *testing.T) {
	src := encoded(t, 100, 50, imaging.PNG)
	res, err := Compress(bytes.NewReader(src), Options{Format: FormatPNG})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Width)
	assert.Equal(t, 50, res.Height)
	assert.Equal(t, "image/png", res.ContentType)
}

func TestCompressWebP(t *testing.T) {
	src := encoded(t, 640, 480, imaging.PNG)
	res, err := Compress(bytes.NewReader(src), Options{Format: FormatWebP, Quality: 70, MaxWidth: 320})
	require.NoError(t, err)
	assert.Equal(t, 320, res.Width)
	assert.Equal(t, 240, res.Height)
	assert.Equal(t, ".webp", res.Ext)

	_, format, err := image.DecodeConfig(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, "webp", format)
}

func TestCompressRejectsGarbage(t *testing.T) {
	_, err := Compress(bytes.NewReader([]byte("not an image")), Options{})
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	o := Options{Quality: 150, Format: "gif"}.Normalize()
	assert.Equal(t, Options{Quality: 85, MaxWidth: 1920, MaxHeight: 1080, Format: FormatJPEG, MaxPixels: DefaultMaxPixels}, o)
}

// pngHeader returns a PNG whose IHDR declares w x h without any pixel data.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	chunk := func(typ string, data []byte) {
		_ = binary.Write(&buf, binary.BigEndian, uint32(len(data)))
		body := append([]byte(typ), data...)
		buf.Write(body)
		_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(body))
	}
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 0 // grayscale
	chunk("IHDR", ihdr)
	chunk("IEND", nil)
	return buf.Bytes()
}

func TestCompressRejectsOversizedDimensions(t *testing.T) {
	src := pngHeader(40000, 40000)
	require.Less(t, len(src), 100)

	_, err := Compress(bytes.NewReader(src), Options{})
	assert.ErrorIs(t, err, ErrTooManyPixels)
}

func TestCompressHonoursMaxPixels(t *testing.T) {
	src := encoded(t, 100, 50, imaging.PNG)

	_, err := Compress(bytes.NewReader(src), Options{MaxPixels: 4999})
	assert.ErrorIs(t, err, ErrTooManyPixels)

	res, err := Compress(bytes.NewReader(src), Options{MaxPixels: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Width)
}
