// Crossworld cube tool - convert, inspect and view octree models
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/k0sti/crossworld/internal/core/bcf"
	"github.com/k0sti/crossworld/internal/core/csm"
	"github.com/k0sti/crossworld/internal/core/cube"
	"github.com/k0sti/crossworld/internal/core/vox"
	"github.com/k0sti/crossworld/internal/generation/terrain"
	"github.com/k0sti/crossworld/internal/render"
	"github.com/k0sti/crossworld/pkg/math"
)

// Build metadata - injected at build time via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(os.Args[2:])
	case "render":
		err = runRender(os.Args[2:])
	case "gen":
		err = runGen(os.Args[2:])
	case "view":
		err = runView(os.Args[2:])
	case "version":
		fmt.Printf("crossworld %s (%s)\n", Version, GitCommit)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "crossworld: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: crossworld <command> [flags]

commands:
  convert  -in model.{csm,vox,bcf} -out model.{csm,vox,bcf}
  render   -in model -out dir [-size 512]
  gen      -depth 6 [-seed 1337] -out terrain.bcf
  view     -in model
  version`)
}

// loadModel reads a cube from any supported format, returning the cube
// and its nominal depth
func loadModel(path string) (*cube.Cube, uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csm":
		c, err := csm.Parse(string(data))
		if err != nil {
			return nil, 0, err
		}
		return c, modelDepth(c), nil
	case ".vox":
		model, err := vox.Decode(strings.NewReader(string(data)))
		if err != nil {
			return nil, 0, err
		}
		return model.Box.Cube, model.Box.Depth, nil
	case ".bcf":
		c, depth, err := bcf.Decode(data)
		if err != nil {
			return nil, 0, err
		}
		return c, uint32(depth), nil
	}
	return nil, 0, fmt.Errorf("unknown model format %q", filepath.Ext(path))
}

// modelDepth measures the deepest subdivision of a cube
func modelDepth(c *cube.Cube) uint32 {
	if c.IsLeaf() {
		return 0
	}
	var max uint32
	for i := 0; i < 8; i++ {
		if d := modelDepth(c.Child(i)); d > max {
			max = d
		}
	}
	return max + 1
}

func saveModel(path string, c *cube.Cube, depth uint32) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csm":
		return os.WriteFile(path, []byte(csm.Format(c)), 0o644)
	case ".vox":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		box := cube.CubeBox{Cube: c, Size: math.Splat(int32(1) << depth), Depth: depth}
		return vox.Encode(f, box, nil)
	case ".bcf":
		return os.WriteFile(path, bcf.Encode(c, uint8(depth)), 0o644)
	}
	return fmt.Errorf("unknown model format %q", filepath.Ext(path))
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	in := fs.String("in", "", "input model")
	out := fs.String("out", "", "output model")
	fs.Parse(args)
	if *in == "" || *out == "" {
		return fmt.Errorf("convert: -in and -out are required")
	}

	c, depth, err := loadModel(*in)
	if err != nil {
		return err
	}
	fmt.Printf("[convert] %s: depth %d\n", *in, depth)
	return saveModel(*out, c, depth)
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	in := fs.String("in", "", "input model")
	out := fs.String("out", "snapshots", "output directory")
	size := fs.Int("size", 512, "snapshot size in pixels")
	fs.Parse(args)
	if *in == "" {
		return fmt.Errorf("render: -in is required")
	}

	c, depth, err := loadModel(*in)
	if err != nil {
		return err
	}
	if depth < 1 {
		depth = 1
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}

	for _, dir := range render.AllViewDirections() {
		img := render.RenderOrthographic(c, dir, depth, render.PaletteColors)
		scaled := render.ScaleImage(img, *size, *size)
		path := filepath.Join(*out, dir.Name()+".png")
		if err := render.SavePNG(scaled, path); err != nil {
			return err
		}
		fmt.Printf("[render] wrote %s\n", path)
	}
	return nil
}

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	depth := fs.Uint("depth", 6, "terrain depth")
	seed := fs.Int64("seed", 1337, "terrain seed")
	out := fs.String("out", "terrain.bcf", "output model")
	fs.Parse(args)

	config := terrain.DefaultConfig()
	config.Seed = *seed
	gen := terrain.NewGenerator(config)

	fmt.Printf("[gen] generating %dx%dx%d terrain, seed %d\n",
		1<<*depth, 1<<*depth, 1<<*depth, *seed)
	c := gen.Generate(uint32(*depth))
	return saveModel(*out, c, uint32(*depth))
}

func runView(args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	in := fs.String("in", "", "input model")
	fs.Parse(args)
	if *in == "" {
		return fmt.Errorf("view: -in is required")
	}

	c, depth, err := loadModel(*in)
	if err != nil {
		return err
	}

	engine, err := render.NewEngine(render.DefaultConfig())
	if err != nil {
		return err
	}
	defer engine.Cleanup()

	tracer, err := render.NewTracer(c, uint8(depth))
	if err != nil {
		return err
	}
	defer tracer.Delete()

	camera := render.NewOrbitCamera()
	var lastX, lastY float64
	dragging := false

	engine.Run(func(dt float32) {
		w := engine.Window()
		x, y := w.GetCursorPos()
		if w.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press {
			if dragging {
				camera.Orbit(float32(x-lastX), float32(y-lastY))
			}
			dragging = true
		} else {
			dragging = false
		}
		lastX, lastY = x, y
	}, func() {
		w, h := engine.Size()
		aspect := float32(w) / float32(h)
		tracer.Draw(camera.ViewProjection(aspect), camera.Position())
	})
	return nil
}
