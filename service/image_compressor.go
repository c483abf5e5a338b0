package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// Compression policy: one pass at the default settings, and if the encoded
// result is still too large for a Firestore-style document field, exactly one
// more pass at the stricter settings, accepted unconditionally.
type CompressorConfig struct {
	MaxFileBytes    int64 // uploads above this are rejected outright
	MaxWidth        int   // first-pass width cap
	Quality         int   // first-pass JPEG quality
	MaxEncodedBytes int   // encoded-size ceiling that triggers the second pass
	RetryWidth      int   // second-pass width cap
	RetryQuality    int   // second-pass JPEG quality
}

// DefaultCompressorConfig returns the production settings
func DefaultCompressorConfig() CompressorConfig {
	return CompressorConfig{
		MaxFileBytes:    10 * 1024 * 1024,
		MaxWidth:        1200,
		Quality:         80,
		MaxEncodedBytes: 800 * 1024,
		RetryWidth:      800,
		RetryQuality:    60,
	}
}

// ImageFile is one uploaded image before compression
type ImageFile struct {
	Name         string
	MIMEType     string
	DeclaredSize int64
	Data         []byte
}

// ImageCompressor turns uploaded images into base64 data URIs small enough
// to live inside a product record
type ImageCompressor struct {
	cfg CompressorConfig
}

// NewImageCompressor creates an ImageCompressor with the given settings
func NewImageCompressor(cfg CompressorConfig) *ImageCompressor {
	return &ImageCompressor{cfg: cfg}
}

// Compress validates, downscales, and re-encodes one image into a JPEG data URI.
// Errors always name the offending file.
func (c *ImageCompressor) Compress(file ImageFile) (string, error) {
	if !strings.HasPrefix(file.MIMEType, "image/") {
		return "", fmt.Errorf("%s is not an image", file.Name)
	}
	if file.DeclaredSize > c.cfg.MaxFileBytes {
		return "", fmt.Errorf("%s exceeds 10MB limit", file.Name)
	}

	img, format, err := image.Decode(bytes.NewReader(file.Data))
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", file.Name, err)
	}

	log.Printf("📸 Image decoded: name=%s, format=%s, bounds=%v", file.Name, format, img.Bounds())

	encoded, err := c.encodeAt(img, c.cfg.MaxWidth, c.cfg.Quality)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", file.Name, err)
	}

	if len(encoded) > c.cfg.MaxEncodedBytes {
		// Still too large: one escalation to the stricter settings, then accept
		// whatever comes out. This is deliberately not a retry loop.
		log.Printf("🔄 Image still too large (%d bytes), compressing more: name=%s", len(encoded), file.Name)
		encoded, err = c.encodeAt(img, c.cfg.RetryWidth, c.cfg.RetryQuality)
		if err != nil {
			return "", fmt.Errorf("failed to re-encode %s: %w", file.Name, err)
		}
	}

	log.Printf("✓ Image compressed: name=%s, input_size=%d, output_size=%d bytes", file.Name, len(file.Data), len(encoded))
	return encoded, nil
}

// CompressAll compresses several uploads concurrently and returns the results
// in input order. The first failure cancels the remaining work.
func (c *ImageCompressor) CompressAll(ctx context.Context, files []ImageFile) ([]string, error) {
	results := make([]string, len(files))

	g, _ := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			out, err := c.Compress(file)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// encodeAt downscales img so its width does not exceed maxWidth (aspect ratio
// preserved) and encodes it as a JPEG data URI at the given quality.
func (c *ImageCompressor) encodeAt(img image.Image, maxWidth, quality int) (string, error) {
	resized := img
	if img.Bounds().Dx() > maxWidth {
		resized = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return "", err
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
