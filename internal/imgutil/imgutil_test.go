package imgutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestLoadPageGrayscale(t *testing.T) {
	path := writeTestPNG(t, 40, 30)
	g, err := LoadPage(path)
	if err != nil {
		t.Fatalf("LoadPage: %v", err)
	}
	if got := g.Bounds(); got.Dx() != 40 || got.Dy() != 30 {
		t.Fatalf("unexpected bounds: %v", got)
	}
}

func TestLoadPageMissing(t *testing.T) {
	if _, err := LoadPage(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCropWithinBounds(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 100, 100))
	sub := Crop(g, image.Rect(10, 20, 50, 60))
	if b := sub.Bounds(); b != image.Rect(10, 20, 50, 60) {
		t.Fatalf("unexpected crop bounds: %v", b)
	}
	// Crops beyond the image clamp instead of panicking.
	sub = Crop(g, image.Rect(90, 90, 200, 200))
	if b := sub.Bounds(); b != image.Rect(90, 90, 100, 100) {
		t.Fatalf("unexpected clamped bounds: %v", b)
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 8, 8))
	g.SetGray(3, 3, color.Gray{Y: 200})
	data, err := EncodePNG(g)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty png output")
	}
}
