package config

import (
	"maps"
	"slices"
)

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"bouncy": preset(func(c *Config) {
		c.Body.Restitution = 1
		c.Body.Friction = 0
		c.Body.LinearDamping = 1
		c.Body.AngularDamping = 1
	}),
	"moon": preset(func(c *Config) {
		c.Body.Gravity = 0.05
		c.Body.VY = -12
	}),
	"heavy": preset(func(c *Config) {
		c.Body.Mass = 5
		c.Body.Width = 80
		c.Body.Height = 60
		c.Body.Restitution = 0.4
	}),
	"spin": preset(func(c *Config) {
		c.Body.AngularVelocity = 0.8
		c.Body.AngularDamping = 0.99
		c.Body.Width = 120
		c.Body.Height = 20
	}),
	"ice": preset(func(c *Config) {
		c.Body.Friction = 0
		c.Body.VY = -5
		c.Body.VX = 30
	}),
}

func preset(tweak func(*Config)) *Config {
	cfg := DefaultConfig()
	tweak(cfg)
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	return slices.Sorted(maps.Keys(Presets))
}
