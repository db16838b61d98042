package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/leterax/go-lair/pkg/scene"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// striped returns an opaque image whose row y has red value 10*(y+1)
func striped(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(10 * (y + 1)), A: 255})
		}
	}
	return img
}

func writeFile(t *testing.T, dir, name string, encode func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadTexturePNGIsFlipped(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "stripes.png", func(b *bytes.Buffer) error {
		return png.Encode(b, striped(2, 3))
	})

	img, err := LoadTexture(path, 0)
	if err != nil {
		t.Fatalf("LoadTexture() error = %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Fatalf("Bounds() = %v", img.Bounds())
	}

	// The last source row becomes the first texture row
	if got := img.RGBAAt(0, 0).R; got != 30 {
		t.Errorf("row 0 red = %d, want 30", got)
	}
	if got := img.RGBAAt(1, 2).R; got != 10 {
		t.Errorf("row 2 red = %d, want 10", got)
	}
}

func TestLoadTextureKeepsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	src.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 128})

	dir := t.TempDir()
	path := writeFile(t, dir, "cutout.png", func(b *bytes.Buffer) error {
		return png.Encode(b, src)
	})

	img, err := LoadTexture(path, 0)
	if err != nil {
		t.Fatalf("LoadTexture() error = %v", err)
	}
	// Rows are flipped: source (0,0) lands at (0,1)
	if a := img.RGBAAt(0, 1).A; a != 0 {
		t.Errorf("transparent texel alpha = %d, want 0", a)
	}
	if a := img.RGBAAt(1, 0).A; a != 128 {
		t.Errorf("translucent texel alpha = %d, want 128", a)
	}
}

func TestLoadTextureJPEGIsOpaque(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "photo.jpg", func(b *bytes.Buffer) error {
		return jpeg.Encode(b, striped(8, 8), nil)
	})

	img, err := LoadTexture(path, 0)
	if err != nil {
		t.Fatalf("LoadTexture() error = %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if a := img.RGBAAt(x, y).A; a != 255 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 255", x, y, a)
			}
		}
	}
}

func TestLoadTextureTGA(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.tga", plainTGA)

	img, err := LoadTexture(path, 0)
	if err != nil {
		t.Fatalf("LoadTexture() error = %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("Bounds() = %v, want 4x2", img.Bounds())
	}
	if got := img.RGBAAt(3, 1); got.R != 255 || got.G != 0 || got.B != 0 {
		t.Errorf("pixel = %v, want red", got)
	}
}

func plainTGA(b *bytes.Buffer) error {
	// Uncompressed 24-bit true color, 4x2, top-left origin
	b.Write([]byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 2, 0, 24, 0x20})
	for i := 0; i < 4*2; i++ {
		b.Write([]byte{0, 0, 255}) // BGR red
	}
	return nil
}

// The tga package registers a sniffer that matches any input, so every
// format has to reach its own decoder whatever the file is called.
func TestLoadTextureDetectsFormat(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(*bytes.Buffer) error
		wantW  int
	}{
		{"png by extension", "earth.png", func(b *bytes.Buffer) error { return png.Encode(b, striped(2, 2)) }, 2},
		{"upper-case jpeg extension", "STAR.JPEG", func(b *bytes.Buffer) error { return jpeg.Encode(b, striped(3, 3), nil) }, 3},
		{"png without extension", "sky", func(b *bytes.Buffer) error { return png.Encode(b, striped(5, 2)) }, 5},
		{"jpeg with unknown extension", "moon.img", func(b *bytes.Buffer) error { return jpeg.Encode(b, striped(6, 2), nil) }, 6},
		{"tga with unknown extension", "rose.dat", plainTGA, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.encode)
			img, err := LoadTexture(path, 0)
			if err != nil {
				t.Fatalf("LoadTexture(%s) error = %v", tt.file, err)
			}
			if got := img.Bounds().Dx(); got != tt.wantW {
				t.Errorf("width = %d, want %d", got, tt.wantW)
			}
		})
	}
}

func TestLoadTextureScalesDown(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"wide", 64, 16, 32, 32, 8},
		{"tall", 10, 40, 20, 5, 20},
		{"within limit", 16, 16, 32, 16, 16},
		{"unlimited", 64, 64, 0, 64, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toTextureRGBA(striped(tt.w, tt.h), tt.max)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("size = %v, want %dx%d", got.Bounds().Size(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestLoadTextureErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTexture(filepath.Join(dir, "missing.png"), 0); err == nil {
		t.Error("missing file should fail")
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(garbage, 0); err == nil {
		t.Error("undecodable file should fail")
	}
}

func TestLibraryLoadTexturesFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "present.png", func(b *bytes.Buffer) error {
		return png.Encode(b, striped(2, 2))
	})

	lib := NewLibrary(quietLogger())
	lib.AddMaterial("a", DullMaterial().WithTexture("present.png"))
	lib.AddMaterial("b", DullMaterial().WithTexture("absent.png"))
	lib.AddMaterial("c", DullMaterial())

	err := lib.LoadTextures(dir)
	if err == nil {
		t.Fatal("LoadTextures() should report the missing texture")
	}

	if img, ok := lib.Texture("present.png"); !ok || img.Bounds().Dx() != 2 {
		t.Errorf("present.png = %v, %v", img, ok)
	}
	img, ok := lib.Texture("absent.png")
	if !ok {
		t.Fatal("absent.png should be replaced, not dropped")
	}
	if img.Bounds().Dx() != 1 || img.RGBAAt(0, 0) != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("fallback = %v, want 1x1 white", img.RGBAAt(0, 0))
	}
	if len(lib.TextureNames()) != 2 {
		t.Errorf("TextureNames() = %v, want 2 entries", lib.TextureNames())
	}
}

func TestLairLibraryCoversLairScene(t *testing.T) {
	lib := Lair(quietLogger())
	if err := lib.Validate(scene.Lair()); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got := len(lib.TextureNames()); got != 8 {
		t.Errorf("TextureNames() has %d entries, want 8", got)
	}

	sky, _ := lib.Material(scene.MaterialSky)
	if !sky.Unlit || !sky.Background {
		t.Errorf("sky material = %+v, want unlit background", sky)
	}
	glass, _ := lib.Material(scene.MaterialGlass)
	if !glass.Translucent {
		t.Error("glass must be translucent")
	}
}

func TestValidateReportsUnknownRefs(t *testing.T) {
	lib := NewLibrary(quietLogger())
	lib.AddMaterial("m", DullMaterial())

	s := scene.New(scene.Light{}, [4]float32{},
		scene.RenderObject{Geometry: "nope", Material: "m"},
		scene.RenderObject{Geometry: "nope", Material: "missing"},
	)
	if err := lib.Validate(s); err == nil {
		t.Fatal("Validate() should fail for unknown refs")
	}
}
