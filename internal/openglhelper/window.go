package openglhelper

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// WindowConfig describes the window to open
type WindowConfig struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// KeyHandler receives key presses and releases. Auto-repeat events are dropped.
type KeyHandler func(key glfw.Key, pressed bool)

// Window owns the GLFW window and its GL 4.6 core context
type Window struct {
	glfwWindow *glfw.Window
	log        *slog.Logger

	// framebuffer size in pixels, which differs from the window size on HiDPI screens
	fbWidth  int
	fbHeight int

	onKey KeyHandler
}

// NewWindow initializes GLFW, opens a window and makes its context current.
// Call it from the main OS thread.
func NewWindow(cfg WindowConfig, log *slog.Logger) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	glfwWindow, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create GLFW window: %w", err)
	}

	glfwWindow.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfwWindow.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("initialize OpenGL: %w", err)
	}

	log.Info("OpenGL context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	w := &Window{glfwWindow: glfwWindow, log: log}
	w.fbWidth, w.fbHeight = glfwWindow.GetFramebufferSize()
	gl.Viewport(0, 0, int32(w.fbWidth), int32(w.fbHeight))

	glfwWindow.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	glfwWindow.SetKeyCallback(w.keyCallback)

	return w, nil
}

// SetKeyHandler routes key events to h. Escape always closes the window.
func (w *Window) SetKeyHandler(h KeyHandler) {
	w.onKey = h
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	if key == glfw.KeyEscape && action == glfw.Press {
		w.glfwWindow.SetShouldClose(true)
		return
	}
	if w.onKey != nil {
		w.onKey(key, action == glfw.Press)
	}
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	w.fbWidth, w.fbHeight = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	w.log.Debug("Framebuffer resized", "width", width, "height", height)
}

// FramebufferSize returns the drawable size in pixels. A minimized window reports 0x0.
func (w *Window) FramebufferSize() (width, height int) {
	return w.fbWidth, w.fbHeight
}

// Clear fills the color and depth buffers
func (w *Window) Clear(color mgl32.Vec4) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), color.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (w *Window) SwapBuffers() {
	w.glfwWindow.SwapBuffers()
}

// PollEvents dispatches pending window and key events to their callbacks
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

// Close destroys the window and terminates GLFW
func (w *Window) Close() {
	w.glfwWindow.Destroy()
	glfw.Terminate()
}

// Time returns seconds since GLFW was initialized
func (w *Window) Time() float64 {
	return glfw.GetTime()
}
