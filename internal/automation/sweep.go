package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/boxsim/internal/body"
	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/param"
	"github.com/san-kum/boxsim/internal/session"
)

// ParameterSweep authors a range of frame-0 values for one parameter and
// reconstructs the same frame for each.
type ParameterSweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
	Frame int
}

type SweepResult struct {
	ParamValue float64
	FinalState body.State
	Energy     float64
}

// RunSweep executes a parameter sweep, one fresh session per value.
func RunSweep(ctx context.Context, cfg *config.Config, sweep *ParameterSweep, out io.Writer) ([]SweepResult, error) {
	k, err := param.ParseKind(sweep.Param)
	if err != nil {
		return nil, err
	}
	if sweep.Steps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.Steps)
	}

	paramStep := 0.0
	if sweep.Steps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.Steps-1)
	}

	results := make([]SweepResult, sweep.Steps)
	err = ensemble(ctx, sweep.Steps, func(i int) error {
		paramVal := sweep.Min + float64(i)*paramStep
		sess, err := session.New(cfg)
		if err != nil {
			return err
		}
		if err := sess.AuthorKey(k, 0, paramVal); err != nil {
			return err
		}
		sess.Seek(sweep.Frame)

		final := sess.State()
		results[i] = SweepResult{
			ParamValue: paramVal,
			FinalState: final,
			Energy:     final.Energy(sess.Arena()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, r := range results {
		fmt.Fprintf(out, "Sweep %d/%d: %s=%.4f\n", i+1, sweep.Steps, k, r.ParamValue)
	}
	return results, nil
}

// MonteCarloConfig perturbs frame-0 values of several parameters at random
// and checks the body stays sane at the target frame.
type MonteCarloConfig struct {
	Params       []string
	Perturbation float64 // fraction of each parameter's bounds range
	NumTrials    int
	Frame        int
	Seed         int64
}

type MonteCarloResult struct {
	TrialID    int
	Values     map[string]float64
	FinalState body.State
	Stable     bool // finite and inside the arena
}

func RunMonteCarlo(ctx context.Context, cfg *config.Config, mc *MonteCarloConfig, out io.Writer) ([]MonteCarloResult, error) {
	kinds := make([]param.Kind, 0, len(mc.Params))
	for _, name := range mc.Params {
		k, err := param.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}

	rng := rand.New(rand.NewSource(mc.Seed))
	if mc.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	base, err := session.New(cfg)
	if err != nil {
		return nil, err
	}

	// Draw every perturbation up front so a seed reproduces the same
	// trials regardless of scheduling.
	draws := make([][]float64, mc.NumTrials)
	for trial := range draws {
		draws[trial] = make([]float64, len(kinds))
		for j, k := range kinds {
			b := base.Bounds(k)
			nominal := k.ToDisplay(base.Value(k))
			draws[trial][j] = b.Clamp(nominal + (rng.Float64()-0.5)*2*mc.Perturbation*(b.Max-b.Min))
		}
	}

	results := make([]MonteCarloResult, mc.NumTrials)
	err = ensemble(ctx, mc.NumTrials, func(trial int) error {
		sess, err := session.New(cfg)
		if err != nil {
			return err
		}

		values := make(map[string]float64, len(kinds))
		for j, k := range kinds {
			if err := sess.AuthorKey(k, 0, draws[trial][j]); err != nil {
				return err
			}
			values[k.String()] = draws[trial][j]
		}
		sess.Seek(mc.Frame)

		final := sess.State()
		results[trial] = MonteCarloResult{
			TrialID:    trial,
			Values:     values,
			FinalState: final,
			Stable:     inside(final, sess.Arena()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Monte Carlo: %d/%d trials complete\n", len(results), mc.NumTrials)
	return results, nil
}

func inside(s body.State, a body.Arena) bool {
	for _, v := range []float64{s.X, s.Y, s.VX, s.VY, s.AngularVelocity} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return s.X >= 0 && s.X <= a.Width && s.Y >= 0 && s.Y <= a.Height
}

// MonteCarloStats counts stable and unstable trials.
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
