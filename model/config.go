package model

import (
	"fmt"
	"math"

	"github.com/hmworsham/dynatopmodel/hru"
)

// RunConfig fully specifies one simulation run. Zero values resolve to
// defaults: the forcing interval and bounds, four inner sub-steps, an
// unbounded surface capacity and a steady-state-derived initial
// condition. A negative outlet index selects the first channel unit.
type RunConfig struct {
	Dt     float64 // time step [h]
	T0, T1 int     // simulation window, step indices [T0,T1)
	Ntt    int     // inner sub-steps per time step
	Q0     float64 // initial specific discharge [m/h]; <=0 derives deficits from steady state
	ExCap  float64 // surface-excess capacity bound [m]; <=0 means unbounded
	Outlet int     // outlet unit index; <0 selects the first channel unit

	Qup []float64    // upstream hydrograph [m³/h], merged post-routing
	Cel hru.Celerity // custom flux-storage relationship; nil selects the exponential law
}

// resolve fills defaults against the domain and validates what remains;
// the returned configuration is fully specified.
func (cfg RunConfig) resolve(dom *Domain) (RunConfig, error) {
	nt := dom.Frc.Nstep()
	if cfg.Dt <= 0. {
		cfg.Dt = dom.Frc.IntervalHr()
	}
	if cfg.Dt <= 0. {
		return cfg, fmt.Errorf("config: non-positive time step %v h", cfg.Dt)
	}
	if cfg.T1 <= 0 {
		cfg.T1 = nt
	}
	if cfg.T0 < 0 || cfg.T1 > nt || cfg.T0 >= cfg.T1 {
		return cfg, fmt.Errorf("config: simulation window [%d,%d) outside forcing record of %d steps", cfg.T0, cfg.T1, nt)
	}
	if cfg.Ntt <= 0 {
		cfg.Ntt = defaultNtt
	}
	if cfg.ExCap <= 0. {
		cfg.ExCap = math.Inf(1)
	}
	if cfg.Outlet < 0 {
		cfg.Outlet = dom.Chans()[0]
	}
	if cfg.Outlet >= dom.Nunit() || !dom.Units[cfg.Outlet].Chan {
		return cfg, fmt.Errorf("config: outlet index %d is not a channel unit", cfg.Outlet)
	}
	if cfg.Qup != nil && len(cfg.Qup) < cfg.T1 {
		fmt.Printf(" config warning: upstream hydrograph covers %d of %d steps; missing tail treated as zero\n", len(cfg.Qup), cfg.T1)
	}
	return cfg, nil
}
