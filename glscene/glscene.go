// Package glscene renders stilllife scenes with OpenGL 4.1 in a GLFW window.
//
// [Run] is the entry point. The OpenGL backed collaborators of
// [stilllife.Manager] (a shader program, a mesh cache and a texture uploader)
// require cgo; without it Run returns an error. The camera is plain Go.
package glscene

import (
	_ "embed"
	"log/slog"

	"github.com/cs330/stilllife"
	"github.com/cs330/stilllife/shapes"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	//go:embed shaders/scene.vert
	vertexSource string
	//go:embed shaders/scene.frag
	fragmentSource string
)

// Uniforms set once per frame by the viewer, in addition to the ones the
// scene manager sets per part.
const (
	uniformView       = "view"
	uniformProjection = "projection"
	uniformViewPos    = "viewPosition"
)

// Config configures the viewer window.
type Config struct {
	Width  int
	Height int
	Title  string
	// Samples is the number of multisample anti-aliasing samples. Zero disables MSAA.
	Samples int
	// Background is the clear color.
	Background mgl32.Vec4
	// Camera is the initial camera. The zero value means DefaultCamera().
	Camera Camera
	// Mesh sets the tessellation of round meshes.
	Mesh shapes.Options
	// Manager configures texture loading.
	Manager stilllife.Config
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a 1000x800 window looking at the shipped scene.
func DefaultConfig() Config {
	return Config{
		Width:      1000,
		Height:     800,
		Title:      "stilllife",
		Samples:    4,
		Background: mgl32.Vec4{0.05, 0.05, 0.07, 1},
		Camera:     DefaultCamera(),
		Mesh:       shapes.DefaultOptions(),
		Manager:    stilllife.DefaultConfig(),
	}
}

func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.Title == "" {
		cfg.Title = def.Title
	}
	if cfg.Camera == (Camera{}) {
		cfg.Camera = def.Camera
	}
	if cfg.Mesh == (shapes.Options{}) {
		cfg.Mesh = def.Mesh
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Manager.Logger == nil {
		cfg.Manager.Logger = cfg.Logger
	}
	return cfg
}
