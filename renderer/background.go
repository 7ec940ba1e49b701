package renderer

import (
	_ "embed"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed shaders/background.fs
var backgroundFS string

// BackgroundRenderer fills the screen with the scene background color and a
// soft vignette tinted by the environment preset.
type BackgroundRenderer struct {
	shader        rl.Shader
	resolutionLoc int32
	baseColorLoc  int32
	envTintLoc    int32

	screenW, screenH float32
	base             color.RGBA
	baseColor        [3]float32
	envTint          [3]float32
	initialized      bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, base color.RGBA, preset string) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW:   float32(screenW),
		screenH:   float32(screenH),
		base:      base,
		baseColor: RGB(base),
		envTint:   EnvironmentTint(preset),
	}
}

// Init initializes the renderer (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShaderFromMemory("", backgroundFS)
	b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")
	b.baseColorLoc = rl.GetShaderLocation(b.shader, "baseColor")
	b.envTintLoc = rl.GetShaderLocation(b.shader, "envTint")

	// Set static uniforms
	rl.SetShaderValue(b.shader, b.baseColorLoc, b.baseColor[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(b.shader, b.envTintLoc, b.envTint[:], rl.ShaderUniformVec3)
	b.setResolution()

	b.initialized = true
}

func (b *BackgroundRenderer) setResolution() {
	resolution := []float32{b.screenW, b.screenH}
	rl.SetShaderValue(b.shader, b.resolutionLoc, resolution, rl.ShaderUniformVec2)
}

// Resize updates the screen dimensions.
func (b *BackgroundRenderer) Resize(w, h float32) {
	b.screenW = w
	b.screenH = h
	if b.initialized {
		b.setResolution()
	}
}

// Draw clears to the base color and paints the vignette over it.
func (b *BackgroundRenderer) Draw() {
	if !b.initialized {
		b.Init()
	}

	rl.ClearBackground(Color(b.base))
	if !rl.IsShaderValid(b.shader) {
		return
	}

	rl.BeginShaderMode(b.shader)
	rl.DrawRectangle(0, 0, int32(b.screenW), int32(b.screenH), rl.White)
	rl.EndShaderMode()
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}
