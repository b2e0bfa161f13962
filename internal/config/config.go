package config

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/boxsim/internal/body"
	"github.com/san-kum/boxsim/internal/param"
)

const (
	DefaultArenaWidth  = 800.0
	DefaultArenaHeight = 600.0
	DefaultMaxFrame    = 600
	DefaultIntervalMs  = 33
	ReferenceMs        = 33
	DefaultHomeMargin  = 10.0
)

var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Arena       ArenaConfig             `yaml:"arena"`
	MaxFrame    int                     `yaml:"max_frame"`
	IntervalMs  int                     `yaml:"interval_ms"`
	ReferenceMs int                     `yaml:"reference_ms"`
	HomeMargin  float64                 `yaml:"home_margin"`
	Rest        RestConfig              `yaml:"rest"`
	Body        BodyConfig              `yaml:"body"`
	Bounds      map[string]param.Bounds `yaml:"bounds,omitempty"`
}

type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type RestConfig struct {
	Velocity        float64 `yaml:"velocity"`
	Angular         float64 `yaml:"angular"`
	GroundTolerance float64 `yaml:"ground_tolerance"`
}

// BodyConfig is the initial body. Orientation is in degrees.
type BodyConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	VX              float64 `yaml:"vx"`
	VY              float64 `yaml:"vy"`
	Orientation     float64 `yaml:"orientation"`
	AngularVelocity float64 `yaml:"angular_velocity"`
	Mass            float64 `yaml:"mass"`
	Restitution     float64 `yaml:"restitution"`
	Friction        float64 `yaml:"friction"`
	LinearDamping   float64 `yaml:"linear_damping"`
	AngularDamping  float64 `yaml:"angular_damping"`
	Gravity         float64 `yaml:"gravity"`
}

func DefaultConfig() *Config {
	rest := body.DefaultRest()
	props := body.DefaultProps()
	return &Config{
		Arena:       ArenaConfig{Width: DefaultArenaWidth, Height: DefaultArenaHeight},
		MaxFrame:    DefaultMaxFrame,
		IntervalMs:  DefaultIntervalMs,
		ReferenceMs: ReferenceMs,
		HomeMargin:  DefaultHomeMargin,
		Rest: RestConfig{
			Velocity:        rest.VelocityThreshold,
			Angular:         rest.AngularThreshold,
			GroundTolerance: rest.GroundTolerance,
		},
		Body: BodyConfig{
			Width:           props.Width,
			Height:          props.Height,
			VX:              props.Velocity.X,
			VY:              props.Velocity.Y,
			Orientation:     param.Orientation.ToDisplay(props.Orientation),
			AngularVelocity: props.AngularVelocity,
			Mass:            props.Mass,
			Restitution:     props.Restitution,
			Friction:        props.Friction,
			LinearDamping:   props.LinearDamping,
			AngularDamping:  props.AngularDamping,
			Gravity:         props.Gravity,
		},
	}
}

// Load reads a yaml file over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto reads a yaml file over cfg. Keys absent from the file keep
// their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	out := *c
	out.Bounds = maps.Clone(c.Bounds)
	return &out
}

// TimeScale is the integrator step length: tick interval over the
// reference interval.
func (c *Config) TimeScale() float64 {
	return float64(c.IntervalMs) / float64(c.ReferenceMs)
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

func (c *Config) ArenaSize() body.Arena {
	return body.Arena{Width: c.Arena.Width, Height: c.Arena.Height}
}

func (c *Config) RestThresholds() body.Rest {
	return body.Rest{
		VelocityThreshold: c.Rest.Velocity,
		AngularThreshold:  c.Rest.Angular,
		GroundTolerance:   c.Rest.GroundTolerance,
	}
}

func (c *Config) Props() body.Props {
	return body.Props{
		Width:           c.Body.Width,
		Height:          c.Body.Height,
		Velocity:        body.Vec2{X: c.Body.VX, Y: c.Body.VY},
		Orientation:     param.Orientation.FromDisplay(c.Body.Orientation),
		AngularVelocity: c.Body.AngularVelocity,
		Mass:            c.Body.Mass,
		Restitution:     c.Body.Restitution,
		Friction:        c.Body.Friction,
		LinearDamping:   c.Body.LinearDamping,
		AngularDamping:  c.Body.AngularDamping,
		Gravity:         c.Body.Gravity,
	}
}

// NewBody builds a body from the configuration and places it at home.
func (c *Config) NewBody() *body.Body {
	b := body.New(c.ArenaSize(), c.RestThresholds(), c.Props(), c.HomeMargin)
	b.GoHome()
	return b
}

// ParamBounds returns the default bounds for the arena with the
// configured overrides applied. Unknown names are ignored here and
// reported by Validate.
func (c *Config) ParamBounds() [param.Count]param.Bounds {
	bounds := param.DefaultBounds(c.Arena.Width, c.Arena.Height)
	for name, b := range c.Bounds {
		k, err := param.ParseKind(name)
		if err != nil {
			continue
		}
		bounds[k] = b
	}
	return bounds
}

func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("arena.width", c.Arena.Width)
	positive("arena.height", c.Arena.Height)
	positive("max_frame", float64(c.MaxFrame))
	positive("interval_ms", float64(c.IntervalMs))
	positive("reference_ms", float64(c.ReferenceMs))
	positive("body.width", c.Body.Width)
	positive("body.height", c.Body.Height)
	positive("body.mass", c.Body.Mass)

	for name, b := range c.Bounds {
		if _, err := param.ParseKind(name); err != nil {
			errs = append(errs, fmt.Errorf("bounds: %w", err))
			continue
		}
		if b.Min > b.Max {
			errs = append(errs, fmt.Errorf("bounds.%s: min %v above max %v", name, b.Min, b.Max))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
