package renderer

import (
	_ "embed"
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/camera"
	"github.com/pthm-cable/antigravity/components"
	"github.com/pthm-cable/antigravity/shapes"
)

//go:embed shaders/scene.vs
var sceneVS string

//go:embed shaders/scene.fs
var sceneFS string

// maxLights matches MAX_LIGHTS in scene.fs.
const maxLights = 4

// Instance is one object to draw this frame.
type Instance struct {
	Archetype *shapes.Archetype
	Position  mgl32.Vec3
	Rotation  mgl32.Quat
	Hovered   bool
}

// Highlight is the material override for hovered objects.
type Highlight struct {
	Color             color.RGBA
	Emissive          color.RGBA
	EmissiveIntensity float32
}

// Surface holds the shared physical material parameters.
type Surface struct {
	Roughness float32
	Metalness float32
}

type cached struct {
	mesh   rl.Mesh
	mtl    rl.Material
	offset mgl32.Vec3
}

type sceneLocs struct {
	viewPos           int32
	ambient           int32
	lightCount        int32
	lightPos          int32
	lightColor        int32
	lightIntensity    int32
	roughness         int32
	metalness         int32
	envTint           int32
	emissive          int32
	emissiveIntensity int32
}

// SceneRenderer draws the floating objects with a shared lit shader.
// Meshes are generated lazily per archetype on first draw.
type SceneRenderer struct {
	shader rl.Shader
	locs   sceneLocs
	cache  map[string]cached

	highlight Highlight
	surface   Surface

	initialized bool
}

// NewSceneRenderer creates a scene renderer.
func NewSceneRenderer(highlight Highlight, surface Surface) *SceneRenderer {
	return &SceneRenderer{
		cache:     make(map[string]cached),
		highlight: highlight,
		surface:   surface,
	}
}

// Init loads the shader (must be called after raylib window is created).
func (s *SceneRenderer) Init() {
	if s.initialized {
		return
	}

	s.shader = rl.LoadShaderFromMemory(sceneVS, sceneFS)
	if !rl.IsShaderValid(s.shader) {
		slog.Warn("scene shader failed to compile, using default")
	}
	s.locs = sceneLocs{
		viewPos:           rl.GetShaderLocation(s.shader, "viewPos"),
		ambient:           rl.GetShaderLocation(s.shader, "ambient"),
		lightCount:        rl.GetShaderLocation(s.shader, "lightCount"),
		lightPos:          rl.GetShaderLocation(s.shader, "lightPos"),
		lightColor:        rl.GetShaderLocation(s.shader, "lightColor"),
		lightIntensity:    rl.GetShaderLocation(s.shader, "lightIntensity"),
		roughness:         rl.GetShaderLocation(s.shader, "roughness"),
		metalness:         rl.GetShaderLocation(s.shader, "metalness"),
		envTint:           rl.GetShaderLocation(s.shader, "envTint"),
		emissive:          rl.GetShaderLocation(s.shader, "emissive"),
		emissiveIntensity: rl.GetShaderLocation(s.shader, "emissiveIntensity"),
	}

	s.initialized = true
}

// ensure returns the cached mesh for an archetype, building it on first use.
func (s *SceneRenderer) ensure(a *shapes.Archetype) (cached, error) {
	if c, ok := s.cache[a.Name]; ok {
		return c, nil
	}
	build, err := buildMesh(a)
	if err != nil {
		return cached{}, err
	}
	mtl := rl.LoadMaterialDefault()
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = Color(a.Color)
	}
	if rl.IsShaderValid(s.shader) {
		mtl.Shader = s.shader
	}
	c := cached{mesh: build.mesh, mtl: mtl, offset: build.offset}
	s.cache[a.Name] = c
	return c, nil
}

// setFrameUniforms uploads per-frame lighting state.
func (s *SceneRenderer) setFrameUniforms(cam *camera.Camera, lights []components.PointLight, env components.Environment) {
	n := min(len(lights), maxLights)
	var pos, col [maxLights * 3]float32
	var intensity [maxLights]float32
	for i := 0; i < n; i++ {
		l := lights[i]
		pos[i*3], pos[i*3+1], pos[i*3+2] = l.Position.X(), l.Position.Y(), l.Position.Z()
		c := RGB(l.Color)
		col[i*3], col[i*3+1], col[i*3+2] = c[0], c[1], c[2]
		intensity[i] = l.Intensity
	}
	viewPos := [3]float32{cam.Position.X(), cam.Position.Y(), cam.Position.Z()}
	tint := EnvironmentTint(env.Preset)

	rl.SetShaderValueV(s.shader, s.locs.viewPos, viewPos[:], rl.ShaderUniformVec3, 1)
	rl.SetShaderValue(s.shader, s.locs.ambient, []float32{env.Ambient}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s.shader, s.locs.lightCount, []float32{float32(n)}, rl.ShaderUniformFloat)
	if n > 0 {
		rl.SetShaderValueV(s.shader, s.locs.lightPos, pos[:n*3], rl.ShaderUniformVec3, int32(n))
		rl.SetShaderValueV(s.shader, s.locs.lightColor, col[:n*3], rl.ShaderUniformVec3, int32(n))
		rl.SetShaderValueV(s.shader, s.locs.lightIntensity, intensity[:n], rl.ShaderUniformFloat, int32(n))
	}
	rl.SetShaderValue(s.shader, s.locs.roughness, []float32{s.surface.Roughness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s.shader, s.locs.metalness, []float32{s.surface.Metalness}, rl.ShaderUniformFloat)
	rl.SetShaderValueV(s.shader, s.locs.envTint, tint[:], rl.ShaderUniformVec3, 1)
}

// setEmissive switches the hover glow on or off for the next draw.
func (s *SceneRenderer) setEmissive(on bool) {
	glow := [3]float32{}
	intensity := float32(0)
	if on {
		glow = RGB(s.highlight.Emissive)
		intensity = s.highlight.EmissiveIntensity
	}
	rl.SetShaderValueV(s.shader, s.locs.emissive, glow[:], rl.ShaderUniformVec3, 1)
	rl.SetShaderValue(s.shader, s.locs.emissiveIntensity, []float32{intensity}, rl.ShaderUniformFloat)
}

// Draw renders all instances from the camera's point of view.
func (s *SceneRenderer) Draw(cam *camera.Camera, items []Instance, lights []components.PointLight, env components.Environment) {
	if !s.initialized {
		s.Init()
	}

	rl.BeginMode3D(Camera3D(cam))
	if rl.IsShaderValid(s.shader) {
		s.setFrameUniforms(cam, lights, env)
	}

	for _, it := range items {
		if it.Archetype == nil {
			continue
		}
		c, err := s.ensure(it.Archetype)
		if err != nil {
			slog.Debug("skipping instance", "archetype", it.Archetype.Name, "error", err)
			continue
		}

		albedo := c.mtl.GetMap(rl.MapAlbedo)
		if it.Hovered {
			albedo.Color = Color(s.highlight.Color)
		}
		if rl.IsShaderValid(s.shader) {
			s.setEmissive(it.Hovered)
		}
		rl.DrawMesh(c.mesh, c.mtl, Matrix(ModelMatrix(it.Position, it.Rotation, c.offset)))
		if it.Hovered {
			albedo.Color = Color(it.Archetype.Color)
		}
	}

	rl.EndMode3D()
}

// Unload frees GPU resources.
func (s *SceneRenderer) Unload() {
	if !s.initialized {
		return
	}
	for name, c := range s.cache {
		rl.UnloadMesh(&c.mesh)
		delete(s.cache, name)
	}
	if rl.IsShaderValid(s.shader) {
		rl.UnloadShader(s.shader)
	}
	s.initialized = false
}
