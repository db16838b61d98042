package assets

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/webp"
)

func TestFramePixelsFlips(t *testing.T) {
	// Two rows, bottom row red and top row blue, as glReadPixels returns them
	pix := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	img, err := FramePixels(pix, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top-left = %v, want blue", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom-right = %v, want red", got)
	}

	if _, err := FramePixels(pix, 3, 2); err == nil {
		t.Error("size mismatch should fail")
	}
	if _, err := FramePixels(nil, 0, 0); err == nil {
		t.Error("empty frame should fail")
	}
}

func TestSaveScreenshotIsLossless(t *testing.T) {
	src := toTextureRGBA(striped(5, 4), 0)
	dir := filepath.Join(t.TempDir(), "shots")
	at := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)

	path, err := SaveScreenshot(dir, src, at)
	if err != nil {
		t.Fatalf("SaveScreenshot() = %v", err)
	}
	if !strings.HasSuffix(path, "lair-20240301-123045.000.webp") {
		t.Errorf("path = %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := webp.Decode(f)
	if err != nil {
		t.Fatalf("webp.Decode() = %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("Bounds() = %v, want %v", got.Bounds(), src.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			r1, g1, b1, a1 := got.At(x, y).RGBA()
			r2, g2, b2, a2 := src.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got.At(x, y), src.At(x, y))
			}
		}
	}
}
