package types

import "math"

// Vec3 is a world-space position.
type Vec3 struct {
	// example: 12.5
	X float64 `json:"x" yaml:"x" toml:"x" example:"12.5"`
	// example: 0
	Y float64 `json:"y" yaml:"y" toml:"y" example:"0"`
	// example: -3
	Z float64 `json:"z" yaml:"z" toml:"z" example:"-3"`
}

// Distance returns the euclidean distance between v and o.
func (v Vec3) Distance(o Vec3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Trigger describes a named sound trigger that game objects can fire.
type Trigger struct {
	// Unique trigger name.
	// example: footstep_gravel
	Name string `json:"name" yaml:"name" toml:"name" example:"footstep_gravel"`
	// Tone frequency used by synthesizing backends.
	// example: 440
	FrequencyHz float64 `json:"frequency_hz,omitempty" yaml:"frequency_hz" toml:"frequency_hz" example:"440"`
	// Playback length in milliseconds. Ignored for looping triggers.
	// example: 350
	DurationMS int `json:"duration_ms,omitempty" yaml:"duration_ms" toml:"duration_ms" example:"350"`
	// Looping triggers play until stopped and are re-fired after a backend switch.
	Loop bool `json:"loop,omitempty" yaml:"loop" toml:"loop"`
}

// GameObject is a static emitter placed in the world.
type GameObject struct {
	// example: campfire
	Name     string `json:"name" yaml:"name" toml:"name" example:"campfire"`
	Position Vec3   `json:"position" yaml:"position" toml:"position"`
	// Triggers fired periodically by this object.
	Emit []string `json:"emit,omitempty" yaml:"emit" toml:"emit"`
	// Interval between periodic emissions in milliseconds (0 = fire once at startup).
	EmitIntervalMS int `json:"emit_interval_ms,omitempty" yaml:"emit_interval_ms" toml:"emit_interval_ms"`
}
