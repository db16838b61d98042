// Package assets owns the geometry, materials and texture images that scene
// objects reference by name.
package assets

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-lair/pkg/geometry"
	"github.com/leterax/go-lair/pkg/scene"
)

// Material describes how a surface is shaded
type Material struct {
	Ambient   mgl32.Vec4
	Diffuse   mgl32.Vec4
	Specular  mgl32.Vec4
	Emission  mgl32.Vec4
	Shininess float32

	// Texture is a file name inside the texture directory; empty means untextured
	Texture string

	Translucent bool // alpha blended; fully transparent texels are discarded
	Unlit       bool // ignores the scene light
	Background  bool // drawn without writing depth
}

// WithTexture returns a copy of m using the given texture file
func (m Material) WithTexture(name string) Material {
	m.Texture = name
	return m
}

// Library stores assets by name. It is filled once at startup and read-only afterwards.
type Library struct {
	geometries map[scene.GeometryRef]geometry.Mesh
	materials  map[scene.MaterialRef]Material
	textures   map[string]*image.RGBA

	// MaxTextureSize scales larger textures down on load; 0 disables scaling
	MaxTextureSize int

	log *slog.Logger
}

// NewLibrary creates an empty library
func NewLibrary(log *slog.Logger) *Library {
	if log == nil {
		log = slog.Default()
	}
	return &Library{
		geometries: make(map[scene.GeometryRef]geometry.Mesh),
		materials:  make(map[scene.MaterialRef]Material),
		textures:   make(map[string]*image.RGBA),
		log:        log,
	}
}

// AddGeometry registers a mesh under ref
func (l *Library) AddGeometry(ref scene.GeometryRef, mesh geometry.Mesh) {
	l.geometries[ref] = mesh
}

// AddMaterial registers a material under ref
func (l *Library) AddMaterial(ref scene.MaterialRef, m Material) {
	l.materials[ref] = m
}

// Geometry returns the mesh registered under ref
func (l *Library) Geometry(ref scene.GeometryRef) (geometry.Mesh, bool) {
	m, ok := l.geometries[ref]
	return m, ok
}

// Material returns the material registered under ref
func (l *Library) Material(ref scene.MaterialRef) (Material, bool) {
	m, ok := l.materials[ref]
	return m, ok
}

// Texture returns a loaded texture image by file name
func (l *Library) Texture(name string) (*image.RGBA, bool) {
	img, ok := l.textures[name]
	return img, ok
}

// TextureNames returns the texture files referenced by materials, sorted
func (l *Library) TextureNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range l.materials {
		if m.Texture != "" && !seen[m.Texture] {
			seen[m.Texture] = true
			names = append(names, m.Texture)
		}
	}
	sort.Strings(names)
	return names
}

// LoadTextures decodes every texture the materials reference from dir.
// A texture that fails to load is replaced by Blank so rendering can go on;
// the failures are returned joined.
func (l *Library) LoadTextures(dir string) error {
	var errs []error
	for _, name := range l.TextureNames() {
		img, err := LoadTexture(filepath.Join(dir, name), l.MaxTextureSize)
		if err != nil {
			errs = append(errs, err)
			img = Blank()
		} else {
			l.log.Debug("Loaded texture", "name", name, "size", img.Bounds().Size())
		}
		l.textures[name] = img
	}
	return errors.Join(errs...)
}

// Validate checks that every geometry and material the scene references is registered
func (l *Library) Validate(s *scene.Scene) error {
	var errs []error
	for _, ref := range s.Geometries() {
		if _, ok := l.geometries[ref]; !ok {
			errs = append(errs, fmt.Errorf("assets: unknown geometry %q", ref))
		}
	}
	for _, ref := range s.Materials() {
		if _, ok := l.materials[ref]; !ok {
			errs = append(errs, fmt.Errorf("assets: unknown material %q", ref))
		}
	}
	return errors.Join(errs...)
}
