package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Geometry names used by the lair
const (
	GeometrySphere    GeometryRef = "sphere"
	GeometryStar      GeometryRef = "sphere_low"
	GeometryCrossed1  GeometryRef = "crossed_1"
	GeometryCrossed4  GeometryRef = "crossed_4"
	GeometryCrossed10 GeometryRef = "crossed_10"
	GeometryTube      GeometryRef = "tube"
	GeometryBellTop   GeometryRef = "bell_top"
)

// Material names used by the lair
const (
	MaterialSky       MaterialRef = "sky"
	MaterialStar      MaterialRef = "star"
	MaterialPlanet    MaterialRef = "planet"
	MaterialSatellite MaterialRef = "satellite"
	MaterialPrince    MaterialRef = "prince"
	MaterialRose      MaterialRef = "rose"
	MaterialBaobab    MaterialRef = "baobab"
	MaterialGlass     MaterialRef = "glass"
)

// Lair layout. Angles are degrees, rates are degrees per second.
const (
	DistanceLimit = 100.0
	SkyRadius     = DistanceLimit / 3
	// The observer may not leave this distance from the sky center
	SafetyRadius = SkyRadius * 2 / 3

	starDistance = 0.7 // fraction of SkyRadius

	planetRadius = 1.3
	planetTilt   = 25.0

	satelliteOrbitAngle = 25.0
	satelliteRadius     = 0.3
	satelliteDistance   = 4.0

	// Base rotation rate all bodies are expressed in
	baseRate = 3.0

	skyRateFactor       = 0.1
	starSpinFactor      = 2.0
	satelliteRateFactor = -3.0

	propSink = 0.1 // props stand slightly inside the surface
)

// SkyCenter is the center of the sky dome and of the safety sphere
var SkyCenter = mgl32.Vec3{0, 0, 0}

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

func rate(factor float32) float32 {
	return mgl32.DegToRad(baseRate * factor)
}

func rotation(degrees float32, axis mgl32.Vec3) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(degrees), axis)
}

// Lair builds the Little Prince scene: a sky dome, a star that doubles as the
// light source, a tilted spinning planet with an orbiting satellite, and three
// cut-out props standing on the planet surface. Objects are ordered so that
// translucent ones come last.
func Lair() *Scene {
	uniform := func(s float32) mgl32.Vec3 { return mgl32.Vec3{s, s, s} }

	sky := RenderObject{
		Name: "sky",
		Transform: Transform{
			Position: SkyCenter,
			Rotation: rotation(90, axisX),
			Scale:    uniform(SkyRadius),
		},
		Spin:     Motion{Axis: mgl32.Vec3{0, 0.1, 1}, Rate: rate(skyRateFactor)},
		Geometry: GeometrySphere,
		Material: MaterialSky,
	}

	starOrbit := Motion{Axis: axisY, Rate: rate(-skyRateFactor)}
	starPlace := OnSphere(SkyCenter, 0, 0, SkyRadius*starDistance, 0)
	star := RenderObject{
		Name:      "star",
		Transform: starPlace.WithScale(uniform(planetRadius)),
		Spin:      Motion{Axis: axisZ, Rate: rate(starSpinFactor)},
		Orbit:     starOrbit,
		Geometry:  GeometryStar,
		Material:  MaterialStar,
	}

	tilt := rotation(planetTilt, axisZ)

	// The satellite circles the planet in a plane tilted a further satelliteOrbitAngle
	satelliteFrame := Transform{Rotation: tilt.Mul(rotation(satelliteOrbitAngle, axisZ))}
	satelliteAxis := satelliteFrame.Rotation.Mul(rotation(-90, axisY)).Rotate(axisZ)
	satellite := RenderObject{
		Name: "satellite",
		Transform: satelliteFrame.
			Compose(OnSphere(SkyCenter, 0, 0, satelliteDistance, 0)).
			WithScale(uniform(satelliteRadius)),
		Spin:     Motion{Axis: axisZ, Rate: rate(1)},
		Orbit:    Motion{Axis: satelliteAxis, Rate: rate(satelliteRateFactor)},
		Geometry: GeometrySphere,
		Material: MaterialSatellite,
	}

	// Planet frame: tilted, with texture poles turned onto local Z
	planetFrame := Transform{Rotation: tilt.Mul(rotation(90, axisX))}
	planetAxis := planetFrame.Rotation.Rotate(axisZ)
	planetSpin := Motion{Axis: planetAxis, Rate: rate(1)}

	planet := RenderObject{
		Name:      "planet",
		Transform: planetFrame.WithScale(uniform(planetRadius)),
		Spin:      Motion{Axis: axisZ, Rate: rate(1)},
		Geometry:  GeometrySphere,
		Material:  MaterialPlanet,
	}

	// Props ride the planet's spin as an orbit about its axis
	prop := func(name string, lon, lat, w, h float32, geom GeometryRef, mat MaterialRef) RenderObject {
		place := planetFrame.Compose(OnSphere(SkyCenter, lon, lat, planetRadius-propSink, 0))
		return RenderObject{
			Name:      name,
			Transform: place.WithScale(mgl32.Vec3{w, h, w}),
			Orbit:     planetSpin,
			Geometry:  geom,
			Material:  mat,
		}
	}

	prince := prop("prince", 180, 0, 0.7, 1.2, GeometryCrossed1, MaterialPrince)
	baobab := prop("baobab", -60, -30, 2, 3, GeometryCrossed4, MaterialBaobab)

	const roseLon, roseLat, roseW, roseH = 60, 30, 0.5, 0.8
	rose := prop("rose", roseLon, roseLat, roseW, roseH, GeometryCrossed10, MaterialRose)

	// Glass bell over the rose: a tube three quarters of the rose's height, capped by a narrowing dome
	bellBase := planetFrame.Compose(OnSphere(SkyCenter, roseLon, roseLat, planetRadius-propSink, 0))
	bellTube := RenderObject{
		Name:      "bell",
		Transform: bellBase.WithScale(mgl32.Vec3{roseW, roseH * 3 / 4, roseW}),
		Orbit:     planetSpin,
		Geometry:  GeometryTube,
		Material:  MaterialGlass,
	}
	bellTop := RenderObject{
		Name: "bell_top",
		Transform: bellBase.
			Compose(Transform{Position: mgl32.Vec3{0, roseH * 3 / 4, 0}}).
			WithScale(mgl32.Vec3{roseW, roseH / 2, roseW}),
		Orbit:    planetSpin,
		Geometry: GeometryBellTop,
		Material: MaterialGlass,
	}

	light := Light{
		Position: starPlace.Position,
		Orbit:    starOrbit,
		Ambient:  mgl32.Vec3{0.1, 0.2, 0.4},
		Diffuse:  mgl32.Vec3{1.0, 1.0, 1.0},
		Specular: mgl32.Vec3{1.0, 1.0, 1.1},
	}

	return New(light, mgl32.Vec4{0.05, 0.05, 0.1, 1.0},
		sky,
		star,
		satellite,
		planet,
		prince,
		baobab,
		rose,
		bellTube,
		bellTop,
	)
}
