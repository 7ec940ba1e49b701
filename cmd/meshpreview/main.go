// Mesh preview tool - renders each shape archetype to a PNG for inspection.
//
// Usage: go run ./cmd/meshpreview -out previews -hover
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/camera"
	"github.com/pthm-cable/antigravity/components"
	"github.com/pthm-cable/antigravity/config"
	"github.com/pthm-cable/antigravity/renderer"
	"github.com/pthm-cable/antigravity/shapes"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outDir := flag.String("out", "previews", "Output directory")
	only := flag.String("shape", "", "Render a single archetype by name")
	hover := flag.Bool("hover", false, "Render with the hover highlight")
	size := flag.Int("size", 256, "Image size in pixels")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	archetypes := shapes.Catalog()
	if *only != "" {
		a, ok := shapes.ByName(*only)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown shape: %s\n", *only)
			os.Exit(1)
		}
		archetypes = []*shapes.Archetype{a}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", *outDir, err)
		os.Exit(1)
	}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*size), int32(*size), "Mesh Preview")
	defer rl.CloseWindow()

	scene := renderer.NewSceneRenderer(
		renderer.Highlight{
			Color:             cfg.Derived.HighlightColor,
			Emissive:          cfg.Derived.EmissiveColor,
			EmissiveIntensity: float32(cfg.Highlight.EmissiveIntensity),
		},
		renderer.Surface{
			Roughness: float32(cfg.Body.Roughness),
			Metalness: float32(cfg.Body.Metalness),
		},
	)
	scene.Init()
	defer scene.Unload()

	cam := camera.New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, cfg.Derived.FOVRadians, float32(*size), float32(*size))
	lights, env := previewLights(cfg)
	tilt := mgl32.QuatRotate(0.5, mgl32.Vec3{1, 1, 0}.Normalize())

	target := rl.LoadRenderTexture(int32(*size), int32(*size))
	defer rl.UnloadRenderTexture(target)

	for _, a := range archetypes {
		rl.BeginTextureMode(target)
		rl.ClearBackground(renderer.Color(env.Background))
		scene.Draw(cam, []renderer.Instance{{Archetype: a, Rotation: tilt, Hovered: *hover}}, lights, env)
		rl.EndTextureMode()

		// Get image from texture and flip it (OpenGL convention)
		img := rl.LoadImageFromTexture(target.Texture)
		rl.ImageFlipVertical(img)

		path := filepath.Join(*outDir, a.Name+".png")
		ok := rl.ExportImage(*img, path)
		rl.UnloadImage(img)
		if !ok {
			fmt.Fprintf(os.Stderr, "Failed to export %s\n", path)
			os.Exit(1)
		}
		fmt.Printf("%s rendered to: %s (%dx%d)\n", a.Name, path, *size, *size)
	}
}

func previewLights(cfg *config.Config) ([]components.PointLight, components.Environment) {
	lights := make([]components.PointLight, len(cfg.Lighting.Points))
	for i, p := range cfg.Lighting.Points {
		lights[i] = components.PointLight{
			Position:  mgl32.Vec3{float32(p.Position[0]), float32(p.Position[1]), float32(p.Position[2])},
			Color:     cfg.Derived.LightColors[i],
			Intensity: float32(p.Intensity),
		}
	}
	env := components.Environment{
		Preset:     cfg.Lighting.Environment,
		Ambient:    float32(cfg.Lighting.Ambient),
		Background: cfg.Derived.Background,
	}
	return lights, env
}
