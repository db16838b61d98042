package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// FramePixels wraps raw RGBA pixels read back from the framebuffer. GL rows
// run bottom to top; the returned image is flipped to the usual top-down order.
func FramePixels(pix []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return nil, fmt.Errorf("screenshot: %d bytes do not hold a %dx%d RGBA frame", len(pix), width, height)
	}
	img := &image.RGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	flipRows(img)
	return img, nil
}

// SaveScreenshot writes img as a lossless WebP named after the capture time
// into dir, creating dir if needed, and returns the file path.
func SaveScreenshot(dir string, img image.Image, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	path := filepath.Join(dir, "lair-"+at.Format("20060102-150405.000")+".webp")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("screenshot: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}
