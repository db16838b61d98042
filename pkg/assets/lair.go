package assets

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-lair/pkg/geometry"
	"github.com/leterax/go-lair/pkg/scene"
)

// PlanetMaterial is a bright, moderately polished surface
func PlanetMaterial() Material {
	return Material{
		Ambient:   mgl32.Vec4{0.1, 0.1, 0.1, 1},
		Diffuse:   mgl32.Vec4{1, 1, 1, 1},
		Specular:  mgl32.Vec4{0.5, 0.5, 0.5, 1},
		Emission:  mgl32.Vec4{0, 0, 0, 1},
		Shininess: 70,
	}
}

// DullMaterial is matte and barely reflects light
func DullMaterial() Material {
	return Material{
		Ambient:   mgl32.Vec4{0.1, 0.1, 0.1, 1},
		Diffuse:   mgl32.Vec4{1, 1, 1, 1},
		Specular:  mgl32.Vec4{0.1, 0.1, 0.1, 1},
		Emission:  mgl32.Vec4{0, 0, 0, 1},
		Shininess: 10,
	}
}

// ShinyMaterial is a polished, partly see-through surface
func ShinyMaterial() Material {
	return Material{
		Ambient:     mgl32.Vec4{0.1, 0.1, 0.1, 1},
		Diffuse:     mgl32.Vec4{0.95, 0.95, 0.95, 0.6},
		Specular:    mgl32.Vec4{1, 1, 1, 1},
		Emission:    mgl32.Vec4{0, 0, 0, 1},
		Shininess:   120,
		Translucent: true,
	}
}

// GlowingMaterial emits its own light
func GlowingMaterial() Material {
	return Material{
		Diffuse:   mgl32.Vec4{1, 1, 1, 1},
		Emission:  mgl32.Vec4{1, 1, 1, 1},
		Shininess: 128,
		Unlit:     true,
	}
}

// SkyMaterial is an unlit backdrop
func SkyMaterial() Material {
	return Material{
		Diffuse:    mgl32.Vec4{1, 1, 1, 1},
		Emission:   mgl32.Vec4{1, 1, 1, 1},
		Unlit:      true,
		Background: true,
	}
}

// Lair returns a library holding everything scene.Lair references.
// Textures are not loaded yet; call LoadTextures.
func Lair(log *slog.Logger) *Library {
	lib := NewLibrary(log)

	lib.AddGeometry(scene.GeometrySphere, geometry.Sphere(64, 64))
	lib.AddGeometry(scene.GeometryStar, geometry.Sphere(32, 32))
	lib.AddGeometry(scene.GeometryCrossed1, geometry.CrossedQuads(1))
	lib.AddGeometry(scene.GeometryCrossed4, geometry.CrossedQuads(4))
	lib.AddGeometry(scene.GeometryCrossed10, geometry.CrossedQuads(10))
	lib.AddGeometry(scene.GeometryTube, geometry.Cylinder(1, 1, 64, 64))
	lib.AddGeometry(scene.GeometryBellTop, geometry.Cylinder(1, 1.0/7, 32, 32))

	translucent := func(m Material) Material {
		m.Translucent = true
		return m
	}

	lib.AddMaterial(scene.MaterialSky, SkyMaterial().WithTexture("sky.png"))
	lib.AddMaterial(scene.MaterialStar, GlowingMaterial().WithTexture("star.jpg"))
	lib.AddMaterial(scene.MaterialPlanet, PlanetMaterial().WithTexture("moon.png"))
	lib.AddMaterial(scene.MaterialSatellite, PlanetMaterial().WithTexture("earth.jpg"))
	lib.AddMaterial(scene.MaterialPrince, ShinyMaterial().WithTexture("lp.png"))
	lib.AddMaterial(scene.MaterialRose, translucent(DullMaterial()).WithTexture("rose_nocup.png"))
	lib.AddMaterial(scene.MaterialBaobab, translucent(DullMaterial()).WithTexture("baobab.png"))
	lib.AddMaterial(scene.MaterialGlass, ShinyMaterial().WithTexture("glass.png"))

	return lib
}
