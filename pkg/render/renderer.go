// Package render draws a scene.Scene with OpenGL 4.6 core.
package render

import (
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-lair/internal/openglhelper"
	"github.com/leterax/go-lair/pkg/assets"
	"github.com/leterax/go-lair/pkg/camera"
	"github.com/leterax/go-lair/pkg/engine"
	"github.com/leterax/go-lair/pkg/input"
	"github.com/leterax/go-lair/pkg/scene"
)

var (
	//go:embed shaders/object.vert
	vertexSource string
	//go:embed shaders/object.frag
	fragmentSource string
)

// diffuseUnit is the texture unit sampled as diffuseMap
const diffuseUnit = 0

// Renderer implements engine.Renderer on top of an openglhelper.Window.
// It reads the camera and scene but never changes them.
type Renderer struct {
	window *openglhelper.Window
	shader *openglhelper.Shader
	log    *slog.Logger

	meshes    map[scene.GeometryRef]*openglhelper.Mesh
	materials map[scene.MaterialRef]assets.Material
	textures  map[string]*openglhelper.Texture
	white     *openglhelper.Texture

	// animation clock origin, in window time
	start float64

	screenshotDir     string
	screenshotPending bool
}

var _ engine.Renderer = (*Renderer)(nil)

// NewRenderer compiles the shaders and sets up global GL state
func NewRenderer(window *openglhelper.Window, log *slog.Logger) (*Renderer, error) {
	shader, err := openglhelper.NewShader(vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to build shader: %w", err)
	}

	white, err := openglhelper.NewTexture(assets.Blank())
	if err != nil {
		shader.Delete()
		return nil, fmt.Errorf("failed to create fallback texture: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	shader.Use()
	shader.SetInt("diffuseMap", diffuseUnit)

	return &Renderer{
		window:    window,
		shader:    shader,
		log:       log,
		meshes:    make(map[scene.GeometryRef]*openglhelper.Mesh),
		materials: make(map[scene.MaterialRef]assets.Material),
		textures:  make(map[string]*openglhelper.Texture),
		white:     white,
		start:     window.Time(),
	}, nil
}

// Upload sends every mesh and texture the scene references to the GPU.
// It must be called once before the first Draw.
func (r *Renderer) Upload(s *scene.Scene, lib *assets.Library) error {
	if err := lib.Validate(s); err != nil {
		return fmt.Errorf("scene references missing assets: %w", err)
	}

	for _, ref := range s.Geometries() {
		if _, ok := r.meshes[ref]; ok {
			continue
		}
		m, _ := lib.Geometry(ref)
		mesh, err := openglhelper.NewMesh(m)
		if err != nil {
			return fmt.Errorf("failed to upload geometry %q: %w", ref, err)
		}
		r.meshes[ref] = mesh
		r.log.Debug("Uploaded geometry", "ref", ref, "vertices", m.VertexCount(), "indices", len(m.Indices))
	}

	for _, ref := range s.Materials() {
		mat, _ := lib.Material(ref)
		r.materials[ref] = mat
		if mat.Texture == "" {
			continue
		}
		if _, ok := r.textures[mat.Texture]; ok {
			continue
		}

		img, ok := lib.Texture(mat.Texture)
		if !ok {
			r.log.Warn("Texture not loaded, using blank", "texture", mat.Texture, "material", ref)
			img = assets.Blank()
		}
		tex, err := openglhelper.NewTexture(img)
		if err != nil {
			return fmt.Errorf("failed to upload texture %q: %w", mat.Texture, err)
		}
		r.textures[mat.Texture] = tex
	}

	r.log.Info("Scene uploaded", "meshes", len(r.meshes), "textures", len(r.textures))
	return checkGLError()
}

// Draw renders one frame and presents it
func (r *Renderer) Draw(cam *camera.Camera, s *scene.Scene) error {
	t := r.window.Time() - r.start
	width, height := r.window.FramebufferSize()

	r.window.Clear(s.ClearColor())

	u := newFrameUniforms(cam, s, t, width, height)
	r.shader.Use()
	r.shader.SetMat4("projection", u.projection)
	r.shader.SetMat4("view", u.view)
	r.shader.SetVec3("viewPos", u.viewPos)
	r.shader.SetVec3("light.position", u.light.Position)
	r.shader.SetVec3("light.ambient", u.light.Ambient)
	r.shader.SetVec3("light.diffuse", u.light.Diffuse)
	r.shader.SetVec3("light.specular", u.light.Specular)

	if err := drawObjects(s, t, r.drawObject); err != nil {
		return err
	}

	if r.screenshotPending {
		r.screenshotPending = false
		r.capture(width, height)
	}

	r.window.SwapBuffers()
	return checkGLError()
}

// frameUniforms holds the per-frame shader inputs. The light position is
// already advanced along its orbit.
type frameUniforms struct {
	projection mgl32.Mat4
	view       mgl32.Mat4
	viewPos    mgl32.Vec3
	light      scene.Light
}

func newFrameUniforms(cam *camera.Camera, s *scene.Scene, t float64, width, height int) frameUniforms {
	light := s.Light()
	light.Position = light.PositionAt(t)
	return frameUniforms{
		projection: cam.ProjectionMatrix(width, height),
		view:       cam.ViewMatrix(),
		viewPos:    cam.Position(),
		light:      light,
	}
}

// drawObjects calls draw once per object in stored order and stops at the
// first error
func drawObjects(s *scene.Scene, t float64, draw func(scene.RenderObject, float64) error) error {
	for i := 0; i < s.Len(); i++ {
		if err := draw(s.Object(i), t); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawObject(o scene.RenderObject, t float64) error {
	mesh, ok := r.meshes[o.Geometry]
	if !ok {
		return fmt.Errorf("%w: geometry %q of %q not uploaded", engine.ErrFrameDraw, o.Geometry, o.Name)
	}
	mat, ok := r.materials[o.Material]
	if !ok {
		return fmt.Errorf("%w: material %q of %q not uploaded", engine.ErrFrameDraw, o.Material, o.Name)
	}

	model := o.ModelAt(t)
	r.shader.SetMat4("model", model)
	r.shader.SetMat3("normalMatrix", model.Mat3().Inv().Transpose())

	r.shader.SetVec4("material.ambient", mat.Ambient)
	r.shader.SetVec4("material.diffuse", mat.Diffuse)
	r.shader.SetVec4("material.specular", mat.Specular)
	r.shader.SetVec4("material.emission", mat.Emission)
	r.shader.SetFloat("material.shininess", mat.Shininess)
	r.shader.SetBool("unlit", mat.Unlit)

	tex := r.white
	if mat.Texture != "" {
		if loaded, ok := r.textures[mat.Texture]; ok {
			tex = loaded
		}
	}
	tex.Bind(diffuseUnit)

	blend, depthWrite := drawState(mat)
	if blend {
		gl.Enable(gl.BLEND)
	}
	if !depthWrite {
		gl.DepthMask(false)
	}

	mesh.Draw()

	if blend {
		gl.Disable(gl.BLEND)
	}
	if !depthWrite {
		gl.DepthMask(true)
	}
	return nil
}

// EnableScreenshots makes RequestScreenshot save frames into dir
func (r *Renderer) EnableScreenshots(dir string) {
	r.screenshotDir = dir
}

// RequestScreenshot captures the next drawn frame
func (r *Renderer) RequestScreenshot() {
	if r.screenshotDir == "" {
		return
	}
	r.screenshotPending = true
}

// capture reads back the back buffer before it is presented. A failed
// screenshot is logged and does not fail the frame.
func (r *Renderer) capture(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	pix := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))

	img, err := assets.FramePixels(pix, width, height)
	if err == nil {
		var path string
		path, err = assets.SaveScreenshot(r.screenshotDir, img, time.Now())
		if err == nil {
			r.log.Info("Saved screenshot", "path", path)
			return
		}
	}
	r.log.Warn("Screenshot failed", "err", err)
}

// drawState returns the blending and depth-write settings for a material
func drawState(m assets.Material) (blend, depthWrite bool) {
	return m.Translucent, !m.Background
}

// checkGLError drains the GL error queue and reports the most severe error
func checkGLError() error {
	var first uint32
	for i := 0; i < 16; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if code == gl.CONTEXT_LOST {
			return classifyGLError(code)
		}
		if first == 0 {
			first = code
		}
	}
	return classifyGLError(first)
}

// classifyGLError maps a GL error code onto the engine's error sentinels
func classifyGLError(code uint32) error {
	switch code {
	case gl.NO_ERROR:
		return nil
	case gl.CONTEXT_LOST:
		return fmt.Errorf("%w: GL_CONTEXT_LOST", engine.ErrDeviceLost)
	default:
		return fmt.Errorf("%w: GL error 0x%04X", engine.ErrFrameDraw, code)
	}
}

// KeyHandler feeds window key events into a keyboard. Keys in hotkeys run
// their function on press instead and never reach the keyboard.
func KeyHandler(kb *input.Keyboard, hotkeys map[input.Key]func()) openglhelper.KeyHandler {
	return func(key glfw.Key, pressed bool) {
		k := input.Key(key)
		if fn, ok := hotkeys[k]; ok {
			if pressed {
				fn()
			}
			return
		}
		kb.KeyEvent(k, pressed)
	}
}

// Cleanup frees every GPU resource the renderer created
func (r *Renderer) Cleanup() {
	for ref, m := range r.meshes {
		m.Delete()
		delete(r.meshes, ref)
	}
	for name, t := range r.textures {
		t.Delete()
		delete(r.textures, name)
	}
	r.white.Delete()
	r.shader.Delete()

	if err := checkGLError(); err != nil {
		r.log.Warn("GL error during cleanup", "err", err)
	}
}
