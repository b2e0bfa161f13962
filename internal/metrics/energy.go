package metrics

import (
	"math"

	"github.com/san-kum/boxsim/internal/body"
)

type Energy struct {
	name        string
	arena       body.Arena
	samples     int
	totalEnergy float64
}

func NewEnergy(arena body.Arena) *Energy {
	return &Energy{
		name:  "energy",
		arena: arena,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(frame int, s body.State) {
	e.totalEnergy += s.Energy(e.arena)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative departure from the first observed
// energy.
type EnergyDrift struct {
	name          string
	arena         body.Arena
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(arena body.Arena) *EnergyDrift {
	return &EnergyDrift{
		name:  "energy_drift",
		arena: arena,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(frame int, s body.State) {
	energy := s.Energy(e.arena)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
