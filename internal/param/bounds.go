package param

import "math"

// Bounds limits a parameter in display units.
type Bounds struct {
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
	Step float64 `yaml:"step" json:"step"`
}

func (b Bounds) Clamp(v float64) float64 {
	return math.Max(b.Min, math.Min(b.Max, v))
}

func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Snap rounds v to the nearest multiple of Step above Min.
func (b Bounds) Snap(v float64) float64 {
	if b.Step <= 0 {
		return b.Clamp(v)
	}
	return b.Clamp(b.Min + math.Round((v-b.Min)/b.Step)*b.Step)
}

// DefaultBounds returns the authoring limits of every kind for an arena
// of the given size.
func DefaultBounds(arenaWidth, arenaHeight float64) [Count]Bounds {
	return [Count]Bounds{
		X:               {Min: 0, Max: arenaWidth, Step: 1},
		Y:               {Min: 0, Max: arenaHeight, Step: 1},
		VX:              {Min: -50, Max: 50, Step: 0.5},
		VY:              {Min: -50, Max: 50, Step: 0.5},
		Orientation:     {Min: 0, Max: 360, Step: 1},
		AngularVelocity: {Min: -1, Max: 1, Step: 0.01},
		Width:           {Min: 10, Max: 200, Step: 1},
		Height:          {Min: 10, Max: 200, Step: 1},
		Mass:            {Min: 0.1, Max: 5, Step: 0.1},
		Restitution:     {Min: 0, Max: 1, Step: 0.01},
		Friction:        {Min: 0, Max: 1, Step: 0.01},
		LinearDamping:   {Min: 0, Max: 1, Step: 0.01},
		AngularDamping:  {Min: 0, Max: 1, Step: 0.01},
		Gravity:         {Min: 0, Max: 2, Step: 0.01},
	}
}
