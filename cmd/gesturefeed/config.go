package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/gesture"
)

// Config is the top-level YAML configuration for the gesturefeed daemon.
type Config struct {
	Server  ServerConfig    `yaml:"server"`
	Logging LoggingConfig   `yaml:"logging"`
	Presets gesture.Presets `yaml:"presets,omitempty"`
	Zones   []ZoneConfig    `yaml:"zones"`
}

type ServerConfig struct {
	Listen    string `yaml:"listen"`
	Path      string `yaml:"path"`
	SendBuf   int    `yaml:"send_buf,omitempty"`
	QueueSize int    `yaml:"queue_size,omitempty"` // engine loop queue
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// ZoneConfig declares one zone. Target defaults to the id; Preset names an
// entry of Config.Presets applied before Config.
type ZoneConfig struct {
	ID       string              `yaml:"id"`
	Target   string              `yaml:"target,omitempty"`
	Preset   string              `yaml:"preset,omitempty"`
	Config   gesture.ConfigPatch `yaml:"config,omitempty"`
	Disabled bool                `yaml:"disabled,omitempty"`
}

// DefaultConfig returns a fully-populated Config with defaults and a single
// catch-all zone named "surface".
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Listen: "127.0.0.1:8787",
			Path:   "/ws",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Zones: []ZoneConfig{{ID: "surface"}},
	}
}

// loadConfig reads path over DefaultConfig. An empty path yields the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Server.Listen == "" {
		errs = append(errs, errors.New("server.listen is required"))
	}
	if c.Server.Path == "" || c.Server.Path[0] != '/' {
		errs = append(errs, fmt.Errorf("server.path %q must start with /", c.Server.Path))
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if len(c.Zones) == 0 {
		errs = append(errs, errors.New("at least one zone is required"))
	}

	seen := make(map[string]bool, len(c.Zones))
	for i, z := range c.Zones {
		if z.ID == "" {
			errs = append(errs, fmt.Errorf("zones[%d]: id is required", i))
			continue
		}
		if seen[z.ID] {
			errs = append(errs, fmt.Errorf("zones[%d]: duplicate id %q", i, z.ID))
		}
		seen[z.ID] = true
		if z.Preset != "" {
			if _, ok := c.Presets[z.Preset]; !ok {
				errs = append(errs, fmt.Errorf("zones[%d]: unknown preset %q", i, z.Preset))
			}
		}
	}
	return errors.Join(errs...)
}

// register adds every configured zone to e. onResult is shared by all zones.
func (c Config) register(e *gesture.Engine, onResult func(gesture.Event)) {
	for _, z := range c.Zones {
		patch := c.Presets[z.Preset]
		target := z.Target
		if target == "" {
			target = z.ID
		}
		e.RegisterZone(z.ID, target, onResult, &patch, nil)
		e.UpdateZoneConfig(z.ID, z.Config)
		if z.Disabled {
			e.SetZoneEnabled(z.ID, false)
		}
	}
}
