package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func pngFile(t *testing.T, name string, width, height int) ImageFile {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return ImageFile{
		Name:         name,
		MIMEType:     "image/png",
		DeclaredSize: int64(buf.Len()),
		Data:         buf.Bytes(),
	}
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	require.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestCompressRejectsNonImage(t *testing.T) {
	c := NewImageCompressor(DefaultCompressorConfig())

	_, err := c.Compress(ImageFile{Name: "report.pdf", MIMEType: "application/pdf", DeclaredSize: 100, Data: []byte("%PDF")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "report.pdf is not an image")
}

func TestCompressRejectsOversizedBeforeDecoding(t *testing.T) {
	c := NewImageCompressor(DefaultCompressorConfig())

	// Data is not even a valid image: the size check must fire first.
	_, err := c.Compress(ImageFile{
		Name:         "huge.jpg",
		MIMEType:     "image/jpeg",
		DeclaredSize: 11 * 1024 * 1024,
		Data:         []byte("not an image at all"),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "huge.jpg exceeds 10MB limit")
}

func TestCompressSmallImagePassesThroughAtOriginalWidth(t *testing.T) {
	c := NewImageCompressor(DefaultCompressorConfig())

	out, err := c.Compress(pngFile(t, "small.png", 300, 200))
	require.NoError(t, err)

	img := decodeDataURI(t, out)
	require.Equal(t, 300, img.Bounds().Dx())
	require.Equal(t, 200, img.Bounds().Dy())
}

func TestCompressCapsWidthPreservingAspectRatio(t *testing.T) {
	c := NewImageCompressor(DefaultCompressorConfig())

	out, err := c.Compress(pngFile(t, "wide.png", 2400, 1200))
	require.NoError(t, err)

	img := decodeDataURI(t, out)
	require.Equal(t, 1200, img.Bounds().Dx())
	require.Equal(t, 600, img.Bounds().Dy())
}

func TestCompressEscalatesExactlyOnce(t *testing.T) {
	cfg := DefaultCompressorConfig()
	// Force the first pass over the ceiling so the escalation settings kick in.
	cfg.MaxEncodedBytes = 10
	c := NewImageCompressor(cfg)

	out, err := c.Compress(pngFile(t, "big.png", 2400, 1200))
	require.NoError(t, err)

	// Second pass output is accepted even though it is still above the
	// ceiling; its width reflects the stricter settings.
	img := decodeDataURI(t, out)
	require.Equal(t, cfg.RetryWidth, img.Bounds().Dx())
	require.Greater(t, len(out), cfg.MaxEncodedBytes)
}

func TestCompressAllPreservesInputOrder(t *testing.T) {
	c := NewImageCompressor(DefaultCompressorConfig())

	files := []ImageFile{
		pngFile(t, "a.png", 100, 100),
		pngFile(t, "b.png", 200, 100),
		pngFile(t, "c.png", 300, 100),
	}

	out, err := c.CompressAll(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Equal(t, 100, decodeDataURI(t, out[0]).Bounds().Dx())
	require.Equal(t, 200, decodeDataURI(t, out[1]).Bounds().Dx())
	require.Equal(t, 300, decodeDataURI(t, out[2]).Bounds().Dx())
}

func TestCompressAllReportsFailingFile(t *testing.T) {
	c := NewImageCompressor(DefaultCompressorConfig())

	files := []ImageFile{
		pngFile(t, "ok.png", 100, 100),
		{Name: "notes.txt", MIMEType: "text/plain", DeclaredSize: 5, Data: []byte("hello")},
	}

	_, err := c.CompressAll(context.Background(), files)
	require.Error(t, err)
	require.Contains(t, err.Error(), "notes.txt")
}
