package assets

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

var (
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

// LoadTexture decodes a PNG, JPEG or TGA file into RGBA rows ordered bottom
// to top, the way OpenGL expects texture data. Images wider or taller than
// maxSize (when > 0) are scaled down to fit.
func LoadTexture(path string, maxSize int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := decodeImage(path, f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	return toTextureRGBA(img, maxSize), nil
}

// decodeImage picks the decoder from the file extension. TGA has no magic
// number and its registered sniffer accepts anything, so image.Decode cannot
// be trusted once the tga package is linked in. Unknown extensions fall back
// to the PNG and JPEG signatures, then TGA.
func decodeImage(path string, r io.Reader) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".tga":
		return tga.Decode(r)
	}

	br := bufio.NewReader(r)
	head, _ := br.Peek(len(pngMagic))
	switch {
	case bytes.HasPrefix(head, pngMagic):
		return png.Decode(br)
	case bytes.HasPrefix(head, jpegMagic):
		return jpeg.Decode(br)
	default:
		return tga.Decode(br)
	}
}

// toTextureRGBA converts src to RGBA at origin (0,0), scaling and flipping vertically
func toTextureRGBA(src image.Image, maxSize int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		// Images without alpha come out opaque
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}

	flipRows(dst)
	return dst
}

func flipRows(img *image.RGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// Blank returns a 1x1 opaque white texture
func Blank() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}
