package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"audiod/internal/common/fsutil"
	"audiod/pkg/types"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultAddr            = ":8080"
	DefaultBackend         = "null"
	DefaultPoolSize        = 128
	DefaultFrameIntervalMS = 16
	DefaultLogLevel        = "info"
	DefaultAudibleRange    = 50.0
)

// OtoConfig holds output format parameters for the oto backend.
type OtoConfig struct {
	SampleRate int `json:"sample_rate" yaml:"sample_rate" toml:"sample_rate"`
	Channels   int `json:"channels" yaml:"channels" toml:"channels"`
}

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr            string             `json:"addr" yaml:"addr" toml:"addr"`
	Backend         string             `json:"backend" yaml:"backend" toml:"backend"`
	PoolSize        int                `json:"pool_size" yaml:"pool_size" toml:"pool_size"`
	FrameIntervalMS int                `json:"frame_interval_ms" yaml:"frame_interval_ms" toml:"frame_interval_ms"`
	LogLevel        string             `json:"log_level" yaml:"log_level" toml:"log_level"`
	AudibleRange    float64            `json:"audible_range" yaml:"audible_range" toml:"audible_range"`
	DebugFilter     string             `json:"debug_filter" yaml:"debug_filter" toml:"debug_filter"`
	DebugDistance   float64            `json:"debug_distance" yaml:"debug_distance" toml:"debug_distance"`
	Listener        types.Vec3         `json:"listener" yaml:"listener" toml:"listener"`
	Oto             OtoConfig          `json:"oto" yaml:"oto" toml:"oto"`
	Triggers        []types.Trigger    `json:"triggers" yaml:"triggers" toml:"triggers"`
	Objects         []types.GameObject `json:"objects" yaml:"objects" toml:"objects"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml. A leading '~' in path is expanded.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse json: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyDefaults fills unspecified fields.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if c.PoolSize == 0 {
		c.PoolSize = DefaultPoolSize
	}
	if c.FrameIntervalMS == 0 {
		c.FrameIntervalMS = DefaultFrameIntervalMS
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.AudibleRange == 0 {
		c.AudibleRange = DefaultAudibleRange
	}
}

// Validate rejects values that cannot be applied. Trigger names are checked
// by the registry.
func (c Config) Validate() error {
	if c.PoolSize < 0 {
		return fmt.Errorf("pool_size must be >= 0, got %d", c.PoolSize)
	}
	if c.FrameIntervalMS < 0 {
		return fmt.Errorf("frame_interval_ms must be >= 0, got %d", c.FrameIntervalMS)
	}
	if c.AudibleRange < 0 {
		return fmt.Errorf("audible_range must be >= 0, got %g", c.AudibleRange)
	}
	if c.DebugDistance < 0 {
		return fmt.Errorf("debug_distance must be >= 0, got %g", c.DebugDistance)
	}
	if c.Oto.SampleRate < 0 || c.Oto.Channels < 0 || c.Oto.Channels > 2 {
		return fmt.Errorf("invalid oto format: sample_rate=%d channels=%d", c.Oto.SampleRate, c.Oto.Channels)
	}
	seen := make(map[string]bool, len(c.Objects))
	for i, o := range c.Objects {
		if o.Name == "" {
			return fmt.Errorf("objects[%d]: empty name", i)
		}
		if seen[o.Name] {
			return fmt.Errorf("objects[%d]: duplicate name %q", i, o.Name)
		}
		seen[o.Name] = true
		if o.EmitIntervalMS < 0 {
			return fmt.Errorf("object %q: emit_interval_ms must be >= 0", o.Name)
		}
	}
	return nil
}
