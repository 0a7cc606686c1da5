package render

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Config holds window and context settings
type Config struct {
	Width  int
	Height int
	Title  string
}

// DefaultConfig returns a reasonable viewer window
func DefaultConfig() Config {
	return Config{Width: 1280, Height: 720, Title: "crossworld"}
}

// Engine owns the window, the GL context and the frame loop
type Engine struct {
	window *glfw.Window
	config Config

	width, height int
	lastFrame     float64
}

// NewEngine creates the window and initializes OpenGL
func NewEngine(config Config) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("render: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	window, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("render: create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("render: gl init: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("[render] OpenGL %s\n", version)

	e := &Engine{
		window: window,
		config: config,
		width:  config.Width,
		height: config.Height,
	}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		e.width, e.height = w, h
		gl.Viewport(0, 0, int32(w), int32(h))
	})

	gl.ClearColor(0.08, 0.09, 0.11, 1.0)
	return e, nil
}

// Size returns the current framebuffer size
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}

// Window exposes the underlying GLFW window for input polling
func (e *Engine) Window() *glfw.Window {
	return e.window
}

// Run drives the frame loop until the window closes
func (e *Engine) Run(onUpdate func(dt float32), onRender func()) {
	e.lastFrame = glfw.GetTime()
	for !e.window.ShouldClose() {
		now := glfw.GetTime()
		dt := float32(now - e.lastFrame)
		e.lastFrame = now

		if e.window.GetKey(glfw.KeyEscape) == glfw.Press {
			e.window.SetShouldClose(true)
		}
		if onUpdate != nil {
			onUpdate(dt)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		if onRender != nil {
			onRender()
		}

		e.window.SwapBuffers()
		glfw.PollEvents()
	}
}

// Cleanup releases the window and terminates GLFW
func (e *Engine) Cleanup() {
	e.window.Destroy()
	glfw.Terminate()
}
