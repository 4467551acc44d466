// Command stilllife composes the wedding still-life scene, or any scene file,
// and shows it in an OpenGL window.
//
// Besides the viewer it can export the scene as a binary STL, print the
// uniform and draw calls a frame makes, or write the scene out as YAML.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/cs330/stilllife"
	"github.com/cs330/stilllife/glrender"
	"github.com/cs330/stilllife/glscene"
	"github.com/cs330/stilllife/shapes"
	"github.com/cs330/stilllife/trace"
)

func main() {
	var (
		flagScene   string
		flagTexDir  string
		flagSTL     string
		flagDryRun  bool
		flagDump    bool
		flagVerbose bool
		flagMaxTex  int
	)
	cfg := glscene.DefaultConfig()
	flag.StringVar(&flagScene, "scene", "", "Scene YAML file. The built-in wedding still-life is used if not set.")
	flag.StringVar(&flagTexDir, "textures", cfg.Manager.TextureDir, "Directory relative texture file names are resolved against.")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Window width in pixels.")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Window height in pixels.")
	flag.StringVar(&flagSTL, "stl", "", "Write the scene triangles to this binary STL file and exit.")
	flag.BoolVar(&flagDryRun, "dry-run", false, "Print the calls one frame makes and exit without opening a window.")
	flag.BoolVar(&flagDump, "dump-scene", false, "Write the scene as YAML to stdout and exit.")
	flag.BoolVar(&flagVerbose, "v", false, "Enable debug logging.")
	flag.IntVar(&flagMaxTex, "maxtex", 0, "Downscale textures larger than this many pixels on a side. 0 means no limit.")
	flag.Parse()

	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	cfg.Logger = log
	cfg.Manager.Logger = log
	cfg.Manager.TextureDir = flagTexDir
	cfg.Manager.MaxTextureSize = flagMaxTex

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, cfg, flagScene, flagSTL, flagDryRun, flagDump)
	stop()
	if err = interrupted(err); err != nil {
		log.Error("stilllife failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

// interrupted treats cancellation by the interrupt signal as a normal exit.
func interrupted(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func run(ctx context.Context, cfg glscene.Config, sceneFile, stlFile string, dryRun, dump bool) error {
	scene := stilllife.DefaultScene()
	if sceneFile != "" {
		var err error
		scene, err = stilllife.LoadSceneFile(sceneFile)
		if err != nil {
			return err
		}
	}
	cfg.Logger.Info("scene loaded", slog.String("scene", scene.Name),
		slog.Int("objects", len(scene.Objects)), slog.Int("parts", scene.NumParts()))
	switch {
	case dump:
		return stilllife.EncodeScene(os.Stdout, scene)
	case stlFile != "":
		return exportSTL(stlFile, scene, cfg.Mesh, cfg.Logger)
	case dryRun:
		return dryRunFrame(os.Stdout, scene, cfg.Manager)
	}
	return glscene.Run(ctx, cfg, scene)
}

func exportSTL(path string, scene *stilllife.Scene, opts shapes.Options, log *slog.Logger) error {
	sr, err := glrender.NewSceneRenderer(scene, opts)
	if err != nil {
		return err
	}
	triangles, err := glrender.RenderAll(sr, nil)
	if err != nil {
		return err
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	n, err := glrender.WriteBinarySTL(fp, triangles)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	bb := glrender.Bounds(triangles)
	log.Info("wrote STL", slog.String("file", path), slog.Int("triangles", len(triangles)),
		slog.Int("bytes", n), slog.String("size", fmt.Sprintf("%.2fx%.2fx%.2f", bb.Size().X, bb.Size().Y, bb.Size().Z)))
	return fp.Close()
}

func dryRunFrame(w io.Writer, scene *stilllife.Scene, cfg stilllife.Config) error {
	var rec trace.Recorder
	mgr, err := stilllife.NewManager(&rec, &rec, &rec, cfg)
	if err != nil {
		return err
	}
	if err := mgr.PrepareScene(scene); err != nil {
		return err
	}
	defer mgr.DestroyTextures()
	renderErr := mgr.RenderScene(scene)
	if _, err := rec.WriteTo(w); err != nil {
		return err
	}
	return renderErr
}
