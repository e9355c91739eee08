package engine

import (
	"brickwall/internal/config"
	"brickwall/internal/logger"
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// FrameContext describes the frame being drawn.
type FrameContext struct {
	Tick           uint64  // Frames drawn before this one
	Time           float64 // Seconds since Run started
	DeltaTime      float64 // Seconds since the previous frame
	ViewportWidth  int32
	ViewportHeight int32
}

// Engine owns the window, the GL context and the frame pump. All of its
// methods except Post must be called from the goroutine that called Open.
type Engine struct {
	Width  int32
	Height int32
	Title  string
	VSync  bool

	window   *glfw.Window
	tasks    *taskQueue
	onResize func(width, height int32)
	onCursor func(x, y float64, pressed bool)
	onScroll func(yoff float64)
}

func New(cfg config.Window) *Engine {
	return &Engine{
		Width:  int32(cfg.Width),
		Height: int32(cfg.Height),
		Title:  cfg.Title,
		VSync:  cfg.VSync,
		tasks:  newTaskQueue(),
	}
}

// Open creates the window and makes its GL 4.1 core context current on the
// calling OS thread.
func (e *Engine) Open(x, y int) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(e.Width), int(e.Height), e.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("could not create glfw window: %w", err)
	}
	e.window = window
	window.MakeContextCurrent()
	window.SetPos(x, y)

	if err := gl.Init(); err != nil {
		e.Close()
		return fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	if e.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	// Framebuffer and window sizes differ on high-DPI displays; GL wants the former.
	fbw, fbh := window.GetFramebufferSize()
	e.Width, e.Height = int32(fbw), int32(fbh)

	window.SetCursorPosCallback(e.cursorCallback)
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if e.onScroll != nil {
			e.onScroll(yoff)
		}
	})

	logger.Log.Info("Window opened",
		zap.String("title", e.Title),
		zap.Int32("width", e.Width),
		zap.Int32("height", e.Height),
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))))
	return nil
}

// Post queues task to run on the render thread before the next frame. Safe
// for use from any goroutine.
func (e *Engine) Post(task func()) {
	e.tasks.post(task)
}

func (e *Engine) SetResizeHandler(fn func(width, height int32)) {
	e.onResize = fn
}

// SetCursorHandler receives cursor moves together with the state of the left button.
func (e *Engine) SetCursorHandler(fn func(x, y float64, pressed bool)) {
	e.onCursor = fn
}

func (e *Engine) SetScrollHandler(fn func(yoff float64)) {
	e.onScroll = fn
}

// Run pumps frames until the window closes, Escape is pressed or ctx is done.
func (e *Engine) Run(ctx context.Context, frame func(FrameContext)) {
	clock := newFrameClock(glfw.GetTime())
	lastWidth, lastHeight := e.Width, e.Height

	for !e.window.ShouldClose() {
		if ctx.Err() != nil {
			logger.Log.Info("Render loop cancelled", zap.Error(ctx.Err()))
			break
		}
		if e.window.GetKey(glfw.KeyEscape) == glfw.Press {
			e.window.SetShouldClose(true)
			continue
		}

		e.tasks.drain()

		fbw, fbh := e.window.GetFramebufferSize()
		e.Width, e.Height = int32(fbw), int32(fbh)
		if e.Width != lastWidth || e.Height != lastHeight {
			lastWidth, lastHeight = e.Width, e.Height
			if e.onResize != nil {
				e.onResize(e.Width, e.Height)
			}
		}

		frame(clock.next(glfw.GetTime(), e.Width, e.Height))

		e.window.SwapBuffers()
		glfw.PollEvents()
	}
}

// Close destroys the window and terminates glfw.
func (e *Engine) Close() {
	if e.window != nil {
		e.window.Destroy()
		e.window = nil
	}
	glfw.Terminate()
}

func (e *Engine) cursorCallback(w *glfw.Window, xpos, ypos float64) {
	if e.onCursor == nil {
		return
	}
	e.onCursor(xpos, ypos, w.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press)
}
