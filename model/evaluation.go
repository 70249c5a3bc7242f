package model

import (
	"fmt"

	"github.com/hmworsham/dynatopmodel/hru"
)

// evaluation holds all mutable state for one model run: unit states,
// distributed forcing, the lateral-exchange matrix, the routing buffer
// and the step-local work arrays. The step functions own it
// exclusively for the run's lifetime; nothing else holds a writable
// reference.
type evaluation struct {
	dom *Domain
	cfg RunConfig

	h    []*hru.HRU  // unit states, indexed as dom.Units
	asub [][]float64 // complementary subsurface exchange matrix
	esub []float64   // per-unit direct-export fraction of baseflow

	p, ep [][]float64 // distributed forcing [unit][step], rates [m/h]

	ichan []int   // channel unit indices
	cpos  []int   // unit index to position within ichan (-1 for land units)
	iout  int     // position of the outlet within ichan
	kern  [][]lagw
	qr    []float64 // routing buffer [m³]; forward writes only
	chv   []float64 // per-channel inflow volume [m³], reset each step

	qbf, qnet, xout []float64  // sub-step work arrays
	fx              []hru.Flux // current-step flux accumulators

	ofvol, chvol float64 // running overland/total channel-inflow volumes [m³]

	carea    float64
	dt, dtt  float64
	nu, ntt  int
}

// newEvaluation resolves the configuration, builds the exchange matrix
// and kernels, distributes forcing onto units and initialises state.
func newEvaluation(dom *Domain, cfg RunConfig) (*evaluation, error) {
	if err := dom.Check(); err != nil {
		return nil, err
	}
	cfg, err := cfg.resolve(dom)
	if err != nil {
		return nil, err
	}

	nu := dom.Nunit()
	area := make([]float64, nu)
	gauges := make([]int, nu)
	pf, ef := make([]float64, nu), make([]float64, nu)
	for i, u := range dom.Units {
		area[i] = u.Area
		gauges[i] = u.Gauge
		pf[i], ef[i] = u.Pfact, u.Efact
		if pf[i] == 0. {
			pf[i] = 1.
		}
		if ef[i] == 0. {
			ef[i] = 1.
		}
	}

	asub, err := complement(dom.Wsub, area)
	if err != nil {
		return nil, err
	}
	p, ep, err := dom.Frc.Distribute(gauges, pf, ef)
	if err != nil {
		return nil, err
	}

	ev := &evaluation{
		dom:   dom,
		cfg:   cfg,
		asub:  asub,
		esub:  exportFrac(dom.Wsub),
		p:     p,
		ep:    ep,
		ichan: dom.Chans(),
		carea: dom.Carea(),
		dt:    cfg.Dt,
		dtt:   cfg.Dt / float64(cfg.Ntt),
		nu:    nu,
		ntt:   cfg.Ntt,
	}

	ev.qbf = make([]float64, nu)
	ev.qnet = make([]float64, nu)
	ev.xout = make([]float64, nu)
	ev.fx = make([]hru.Flux, nu)

	ev.h = make([]*hru.HRU, nu)
	for i, u := range dom.Units {
		ev.h[i] = hru.New(u, cfg.Cel)
		ev.h[i].Initialize(cfg.Q0)
	}
	if cfg.Q0 <= 0. {
		ev.steadyDeficits()
	}

	ev.cpos = make([]int, nu)
	for i := range ev.cpos {
		ev.cpos[i] = -1
	}
	for ci, c := range ev.ichan {
		ev.cpos[c] = ci
	}

	ev.iout = -1
	ev.kern = make([][]lagw, len(ev.ichan))
	lmax := 0
	for ci, c := range ev.ichan {
		if c == cfg.Outlet {
			ev.iout = ci
		}
		v := dom.Units[c].Vchan
		k, err := buildKernel(dom.Rtab, v, cfg.Dt)
		if err != nil {
			return nil, fmt.Errorf("channel unit %d: %v", c, err)
		}
		ev.kern[ci] = k
		if l := maxlag(k); l > lmax {
			lmax = l
		}
	}
	if ev.iout < 0 {
		return nil, fmt.Errorf("outlet unit %d not among channel units", cfg.Outlet)
	}

	nstep := cfg.T1 - cfg.T0
	ev.qr = make([]float64, nstep+lmax+1)
	ev.chv = make([]float64, len(ev.ichan))
	return ev, nil
}

// storage returns total catchment storage volume [m³] (deficits
// counting negative).
func (ev *evaluation) storage() float64 {
	s := 0.
	for _, h := range ev.h {
		s += h.Storage() * h.Par.Area
	}
	return s
}

// transit returns the volume [m³] still in the routing buffer at or
// after relative step k.
func (ev *evaluation) transit(k int) float64 {
	s := 0.
	for _, v := range ev.qr[k:] {
		s += v
	}
	return s
}
