// Package imgutil loads page images and prepares sub-images for
// recognition. Pages are converted to single-channel grayscale once, up
// front, so every crop shares the same pixel format.
package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/Sarthak-Sidhant/s1r/internal/common"
)

// LoadPage reads and decodes a page image, returning it as grayscale.
// A missing or undecodable file is a fatal pre-condition for page
// processing, so errors here are returned rather than degraded.
func LoadPage(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewAppError("PAGE_OPEN", fmt.Sprintf("open page image %s", path), err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, common.NewAppError("PAGE_DECODE", fmt.Sprintf("decode page image %s", path), err)
	}
	return Grayscale(img), nil
}

// Grayscale converts any decoded image to *image.Gray. Images that are
// already grayscale are returned as-is.
func Grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(b)
	draw.Draw(g, b, img, b.Min, draw.Src)
	return g
}

// Crop returns the sub-image of g covered by r. The result shares
// pixels with g; callers must not write to it.
func Crop(g *image.Gray, r image.Rectangle) *image.Gray {
	return g.SubImage(r.Intersect(g.Bounds())).(*image.Gray)
}

// EncodePNG serializes an image to PNG bytes, the interchange format
// for both recognition engines and persisted artifacts.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
