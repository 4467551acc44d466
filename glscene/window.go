//go:build !tinygo && cgo

package glscene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/cs330/stilllife"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/glgl/v4.1-core/glgl"
)

// Run opens a window and renders scene until the window is closed or ctx is done.
// It must be called from the main goroutine.
func Run(ctx context.Context, cfg Config, scene *stilllife.Scene) error {
	if scene == nil {
		return errors.New("nil scene")
	}
	cfg = cfg.withDefaults()
	log := cfg.Logger
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, term, err := startGLFW(cfg)
	if err != nil {
		return err
	}
	defer term()
	log.Info("opengl context", slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		slog.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	prog, err := compileProgram(log)
	if err != nil {
		return fmt.Errorf("compiling scene shaders: %w", err)
	}
	defer prog.Delete()
	meshes := newMeshes(cfg.Mesh)
	defer meshes.Delete()
	mgr, err := stilllife.NewManager(prog, meshes, Textures{}, cfg.Manager)
	if err != nil {
		return err
	}
	if err := mgr.PrepareScene(scene); err != nil {
		return err
	}
	defer mgr.DestroyTextures()

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if cfg.Samples > 0 {
		gl.Enable(gl.MULTISAMPLE)
	}
	if err := glgl.Err(); err != nil {
		return err
	}

	cam := cfg.Camera
	in := newInput(window, &cam)
	lastErr := ""
	bg := cfg.Background
	for !window.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		width, height := window.GetFramebufferSize()
		if width == 0 || height == 0 {
			// Minimized.
			glfw.WaitEventsTimeout(0.1)
			continue
		}
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		prog.SetMat4(uniformView, cam.View())
		prog.SetMat4(uniformProjection, cam.ProjectionMatrix(float32(width)/float32(height)))
		prog.SetVec3(uniformViewPos, cam.Position())
		err = mgr.RenderScene(scene)
		if err != nil && err.Error() != lastErr {
			// Same failures repeat every frame.
			lastErr = err.Error()
			log.Error("render scene", slog.String("err", lastErr))
		}
		window.SwapBuffers()
		in.wait(window)
	}
	return nil
}

// input translates window events into camera motion. Like the frame loop it
// runs on the main goroutine.
type input struct {
	cam          *Camera
	dragging     bool
	firstMove    bool
	lastX, lastY float64
	refresh      bool
	lastEdit     time.Time
}

const (
	yawSensitivity   = 0.005
	pitchSensitivity = 0.005
	panStep          = 0.05 // Fraction of camera distance per key press.
)

func newInput(window *glfw.Window, cam *Camera) *input {
	in := &input{cam: cam, refresh: true}
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !in.dragging {
			return
		}
		in.edit()
		if in.firstMove {
			in.lastX, in.lastY = xpos, ypos
			in.firstMove = false
		}
		// Dragging right rotates the scene right, so the camera goes left.
		in.cam.Orbit(-float32(xpos-in.lastX)*yawSensitivity, float32(ypos-in.lastY)*pitchSensitivity)
		in.lastX, in.lastY = xpos, ypos
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		in.edit()
		in.cam.Zoom(float32(yoff))
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		in.edit()
		switch action {
		case glfw.Press:
			in.dragging = true
			in.firstMove = true
			w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		case glfw.Release:
			in.dragging = false
			w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		}
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		step := panStep * in.cam.Distance
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyW:
			in.cam.Pan(0, 0, step)
		case glfw.KeyS:
			in.cam.Pan(0, 0, -step)
		case glfw.KeyA:
			in.cam.Pan(-step, 0, 0)
		case glfw.KeyD:
			in.cam.Pan(step, 0, 0)
		case glfw.KeyQ:
			in.cam.Pan(0, -step, 0)
		case glfw.KeyE:
			in.cam.Pan(0, step, 0)
		case glfw.KeyP:
			in.cam.Projection = Perspective
		case glfw.KeyO:
			in.cam.Projection = Orthographic
		default:
			return
		}
		in.edit()
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		in.edit()
	})
	return in
}

func (in *input) edit() {
	in.refresh = true
	in.lastEdit = time.Now()
}

// wait polls events until the scene needs redrawing.
func (in *input) wait(window *glfw.Window) {
	for {
		time.Sleep(time.Second / 60)
		glfw.PollEvents()
		if in.refresh || window.ShouldClose() {
			in.refresh = false
			return
		} else if !in.dragging && time.Since(in.lastEdit) > time.Second {
			// Idle: block on events instead of spinning.
			glfw.WaitEventsTimeout(0.25)
		}
	}
}

func startGLFW(cfg Config) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if cfg.Samples > 0 {
		glfw.WindowHint(glfw.Samples, cfg.Samples)
	}
	window, err = glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return window, glfw.Terminate, nil
}

func glErrOrMessage(defaultMsg string) (err error) {
	err = glgl.Err()
	if err == nil {
		err = errors.New(defaultMsg)
	} else {
		err = fmt.Errorf("%s: %w", defaultMsg, err)
	}
	return err
}
