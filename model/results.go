package model

import (
	"fmt"
	"math"
	"time"

	"github.com/maseology/objfunc"
)

// Results aggregates a completed run: outlet series, per-unit flux and
// storage series, water-balance volumes and summary statistics. A
// read-only snapshot of the run; the engine retains no reference.
type Results struct {
	T           []time.Time
	Qout, Qspec []float64 // outlet discharge [m³/h] and specific discharge [m/h]

	// per-unit flux series [unit][step], rates [m/h]
	Qbf, Qin, Uz, Rain, Ae, Exf, Qof [][]float64
	// per-unit storage series [unit][step], depths [m]
	Srz, Suz, Sd, Exs [][]float64

	Carea float64   // catchment area [m²]
	Cfg   RunConfig // echo of the resolved configuration
	obs   []float64

	// water-balance volumes [m³] over the simulation window
	Pre, Aet, Qsim, Dsto, Transit, Resid float64

	Kpeak int     // step of peak outlet discharge
	Qpeak float64 // peak outlet discharge [m³/h]
	Fof   float64 // overland-flow proportion of channel inflow
}

func newResults(dom *Domain, cfg RunConfig, carea float64, nstep int) *Results {
	nu := dom.Nunit()
	alloc := func() [][]float64 {
		a := make([][]float64, nu)
		for i := range a {
			a[i] = make([]float64, nstep)
		}
		return a
	}
	r := &Results{
		T:     make([]time.Time, nstep),
		Qout:  make([]float64, nstep),
		Qspec: make([]float64, nstep),
		Qbf:   alloc(), Qin: alloc(), Uz: alloc(), Rain: alloc(),
		Ae: alloc(), Exf: alloc(), Qof: alloc(),
		Srz: alloc(), Suz: alloc(), Sd: alloc(), Exs: alloc(),
		Carea: carea,
		Cfg:   cfg,
		Kpeak: -1,
	}
	if dom.Obs != nil && len(dom.Obs) >= cfg.T1 {
		r.obs = dom.Obs[cfg.T0:cfg.T1]
	}
	return r
}

func (r *Results) record(k, j int, ev *evaluation, q float64) {
	r.T[k] = ev.dom.Frc.T[j]
	r.Qout[k] = q
	r.Qspec[k] = q / r.Carea
	for i, fx := range ev.fx {
		r.Qbf[i][k] = fx.Qbf
		r.Qin[i][k] = fx.Qin
		r.Uz[i][k] = fx.Uz
		r.Rain[i][k] = fx.Rain
		r.Ae[i][k] = fx.Ae
		r.Exf[i][k] = fx.Ex
		r.Qof[i][k] = fx.Qof

		s := ev.h[i].Sto
		r.Srz[i][k] = s.Srz
		r.Suz[i][k] = s.Suz
		r.Sd[i][k] = s.Sd
		r.Exs[i][k] = s.Ex

		av := ev.h[i].Par.Area * ev.dt
		r.Pre += fx.Rain * av
		r.Aet += fx.Ae * av
	}
	if q > r.Qpeak {
		r.Qpeak, r.Kpeak = q, k
	}
}

func (r *Results) finalize(ev *evaluation, s0 float64, nstep int) {
	r.Dsto = ev.storage() - s0
	r.Transit = ev.transit(nstep)
	for _, v := range ev.qr[:nstep] {
		r.Qsim += v
	}
	r.Resid = r.Pre - (r.Aet + r.Qsim + r.Dsto + r.Transit)
	if ev.chvol > 0. {
		r.Fof = ev.ofvol / ev.chvol
	}
}

// Report prints the run summary: water-balance totals, peak timing and,
// when observed discharge was supplied, goodness-of-fit statistics.
// Imbalance is informational, never fatal.
func (r *Results) Report() {
	f := 1000. / r.Carea // [m³] to catchment-average [mm]
	fmt.Printf(" catchment area: %.3f km², %d timesteps\n", r.Carea/1000./1000., len(r.T))
	fmt.Printf(" waterbudget [mm]: pre: %.1f  aet: %.1f  q: %.1f  Δsto: %.1f  transit: %.1f  resid: %.2f\n",
		r.Pre*f, r.Aet*f, r.Qsim*f, r.Dsto*f, r.Transit*f, r.Resid*f)
	if r.Kpeak >= 0 {
		fmt.Printf(" peak discharge: %.4f m³/h at step %d (%v)\n", r.Qpeak, r.Kpeak, r.T[r.Kpeak])
	}
	fmt.Printf(" overland fraction of channel inflow: %.3f\n", r.Fof)
	if math.Abs(r.Resid) > nearzero*r.Carea {
		fmt.Printf(" note: mass-balance residual %.3e m³\n", r.Resid)
	}
	if r.obs != nil {
		kge := objfunc.KGE(r.obs, r.Qout)
		nse := objfunc.NSE(r.obs, r.Qout)
		rmse := objfunc.RMSE(r.obs, r.Qout)
		bias := objfunc.Bias(r.obs, r.Qout)
		fmt.Printf("  KGE: %.3f  NSE: %.3f  RMSE: %.3f  Bias: %.3f\n", kge, nse, rmse, bias)
	}
}
