package components

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// PointLight is an omnidirectional light source.
type PointLight struct {
	Position    mgl32.Vec3
	Color       color.RGBA
	Intensity   float32
	CastShadows bool
}

// Environment is the global lighting context.
type Environment struct {
	Preset     string // reflection preset name, e.g. "city"
	Ambient    float32
	Background color.RGBA
}
