package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/boxsim/internal/param"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Arena.Width != 800 || cfg.Arena.Height != 600 {
		t.Errorf("expected 800x600 arena, got %vx%v", cfg.Arena.Width, cfg.Arena.Height)
	}
	if cfg.MaxFrame != 600 {
		t.Errorf("expected max frame 600, got %d", cfg.MaxFrame)
	}
	if math.Abs(cfg.Body.Orientation-30) > 1e-9 {
		t.Errorf("expected orientation 30°, got %f", cfg.Body.Orientation)
	}
	if cfg.TimeScale() != 1 {
		t.Errorf("expected time scale 1, got %f", cfg.TimeScale())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestTimeScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IntervalMs = 66
	if cfg.TimeScale() != 2 {
		t.Errorf("expected 2, got %f", cfg.TimeScale())
	}
}

func TestPropsRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.Props()
	if math.Abs(p.Orientation-math.Pi/6) > 1e-12 {
		t.Errorf("expected π/6 radians, got %f", p.Orientation)
	}

	b := cfg.NewBody()
	if b.Position().X != 30 || b.Position().Y != 570 {
		t.Errorf("expected body at home {30 570}, got %+v", b.Position())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero mass", func(c *Config) { c.Body.Mass = 0 }},
		{"negative width", func(c *Config) { c.Body.Width = -1 }},
		{"zero arena", func(c *Config) { c.Arena.Height = 0 }},
		{"zero interval", func(c *Config) { c.IntervalMs = 0 }},
		{"nan height", func(c *Config) { c.Body.Height = math.NaN() }},
		{"inverted bounds", func(c *Config) {
			c.Bounds = map[string]param.Bounds{"mass": {Min: 5, Max: 1}}
		}},
		{"unknown bounds", func(c *Config) {
			c.Bounds = map[string]param.Bounds{"colour": {Min: 0, Max: 1}}
		}},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}
}

func TestParamBoundsOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bounds = map[string]param.Bounds{"gravity": {Min: 0, Max: 10, Step: 0.5}}

	bounds := cfg.ParamBounds()
	if bounds[param.Gravity].Max != 10 {
		t.Errorf("expected gravity max 10, got %f", bounds[param.Gravity].Max)
	}
	if bounds[param.Mass].Max != 5 {
		t.Errorf("expected default mass max 5, got %f", bounds[param.Mass].Max)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.yaml")

	cfg := DefaultConfig()
	cfg.Body.Gravity = 0.9
	cfg.MaxFrame = 300
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Body.Gravity != 0.9 || loaded.MaxFrame != 300 {
		t.Errorf("expected gravity 0.9 and 300 frames, got %f and %d", loaded.Body.Gravity, loaded.MaxFrame)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("body:\n  mass: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Body.Mass != 3 {
		t.Errorf("expected mass 3, got %f", cfg.Body.Mass)
	}
	if cfg.Body.Gravity != 0.3 || cfg.Arena.Width != 800 {
		t.Errorf("expected defaults kept, got gravity %f width %f", cfg.Body.Gravity, cfg.Arena.Width)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("bouncy")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Body.Restitution != 1 || cfg.Body.Friction != 0 {
		t.Errorf("expected restitution 1 and friction 0, got %f %f", cfg.Body.Restitution, cfg.Body.Friction)
	}

	cfg.Body.Mass = 99
	if Presets["bouncy"].Body.Mass == 99 {
		t.Error("GetPreset must return a copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("expected sorted names, got %v", names)
		}
	}
	for _, name := range names {
		if err := Presets[name].Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
