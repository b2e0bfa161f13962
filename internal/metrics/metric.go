// Package metrics summarizes a playback frame by frame.
package metrics

import "github.com/san-kum/boxsim/internal/body"

type Metric interface {
	Name() string
	Observe(frame int, s body.State)
	Value() float64
	Reset()
}

// Observer adapts metrics to a replay observer.
type Observer []Metric

func (o Observer) OnFrame(frame int, s body.State) {
	for _, m := range o {
		m.Observe(frame, s)
	}
}

// Standard returns the metrics reported after a run.
func Standard(arena body.Arena, rest body.Rest) []Metric {
	return []Metric{
		NewEnergy(arena),
		NewEnergyDrift(arena),
		NewApex(arena),
		NewBounces(),
		NewSpin(),
		NewSettle(arena, rest),
	}
}

// Values collects the current value of every metric by name.
func Values(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
