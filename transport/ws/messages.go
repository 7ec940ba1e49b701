// Package ws streams the scene to remote renderers over websocket and
// feeds their pointer and viewport events back to the frame loop.
package ws

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message types
const (
	MessageTypeScene    = "scene"
	MessageTypeSnapshot = "snapshot"
	MessageTypePointer  = "pointer"
	MessageTypeViewport = "viewport"
	MessageTypeError    = "error"
)

// ErrUnknownMessage is returned by ParseMessage for unrecognized types.
var ErrUnknownMessage = errors.New("ws: unknown message type")

// ArchetypeInfo describes one catalog entry for the remote renderer.
type ArchetypeInfo struct {
	Name   string    `json:"name"`
	Kind   string    `json:"kind"`
	Params []float32 `json:"params"`
	Color  string    `json:"color"`
}

// ObjectInfo binds an object id to its archetype.
type ObjectInfo struct {
	ID        int    `json:"id"`
	Archetype string `json:"archetype"`
}

// CameraInfo describes the scene camera.
type CameraInfo struct {
	Position [3]float32 `json:"position"`
	Target   [3]float32 `json:"target"`
	FOV      float32    `json:"fov"` // degrees
}

// LightInfo describes a point light.
type LightInfo struct {
	Position    [3]float32 `json:"position"`
	Color       string     `json:"color"`
	Intensity   float32    `json:"intensity"`
	CastShadows bool       `json:"castShadows"`
}

// MaterialInfo describes the shared surface and hover highlight.
type MaterialInfo struct {
	Roughness         float32 `json:"roughness"`
	Metalness         float32 `json:"metalness"`
	HighlightColor    string  `json:"highlightColor"`
	EmissiveColor     string  `json:"emissiveColor"`
	EmissiveIntensity float32 `json:"emissiveIntensity"`
}

// SceneMessage is sent once per connection before any snapshot.
type SceneMessage struct {
	Type        string          `json:"type"`
	Archetypes  []ArchetypeInfo `json:"archetypes"`
	Objects     []ObjectInfo    `json:"objects"`
	Camera      CameraInfo      `json:"camera"`
	Lights      []LightInfo     `json:"lights"`
	Material    MaterialInfo    `json:"material"`
	Ambient     float32         `json:"ambient"`
	Environment string          `json:"environment"`
	Background  string          `json:"background"`
}

// BodySnapshot is the pose of one object.
type BodySnapshot struct {
	ID       int        `json:"id"`
	Position [3]float32 `json:"position"`
	Rotation [4]float32 `json:"rotation"` // x, y, z, w
	Hovered  bool       `json:"hovered"`
	Sleeping bool       `json:"sleeping"`
}

// SnapshotMessage carries every object pose after one frame.
type SnapshotMessage struct {
	Type   string         `json:"type"`
	Tick   int64          `json:"tick"`
	Bodies []BodySnapshot `json:"bodies"`
}

// PointerMessage is a pointer interaction from the client.
type PointerMessage struct {
	Type  string `json:"type"`
	Event string `json:"event"` // enter, leave or click
	ID    int    `json:"id"`
}

// ViewportMessage reports the client's visible size in world units.
type ViewportMessage struct {
	Type   string  `json:"type"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// ErrorMessage reports a rejected client message.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ParseMessage decodes a client message into *PointerMessage or *ViewportMessage.
func ParseMessage(data []byte) (any, error) {
	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("parsing message: %w", err)
	}

	switch base.Type {
	case MessageTypePointer:
		var msg PointerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("parsing pointer message: %w", err)
		}
		return &msg, nil
	case MessageTypeViewport:
		var msg ViewportMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("parsing viewport message: %w", err)
		}
		return &msg, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, base.Type)
}
