package renderer

import "strings"

// environmentTints approximate the reflection color of each preset.
var environmentTints = map[string][3]float32{
	"city":      {0.95, 0.85, 0.70},
	"sunset":    {1.00, 0.60, 0.40},
	"dawn":      {0.90, 0.70, 0.80},
	"night":     {0.20, 0.25, 0.45},
	"warehouse": {0.85, 0.85, 0.80},
	"forest":    {0.55, 0.75, 0.50},
	"apartment": {0.90, 0.80, 0.70},
	"studio":    {1.00, 1.00, 1.00},
	"park":      {0.70, 0.85, 0.90},
	"lobby":     {0.90, 0.85, 0.75},
}

// EnvironmentTint returns the reflection tint for a preset. Unknown or empty
// presets reflect nothing.
func EnvironmentTint(preset string) [3]float32 {
	return environmentTints[strings.ToLower(strings.TrimSpace(preset))]
}
