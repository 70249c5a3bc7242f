package model

import (
	"math"
	"testing"
	"time"

	"github.com/hmworsham/dynatopmodel/forcing"
	"github.com/hmworsham/dynatopmodel/hru"
)

// twoUnitDomain builds the minimal catchment: a hillslope unit draining
// entirely to a channel unit, trivial (no-delay) routing, hourly
// forcing of nt steps with rain [m/h] over the first nrain steps.
func twoUnitDomain(nt, nrain int, rain, pe float64) *Domain {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	frc := &forcing.Forcing{IntervalSec: 3600.}
	frc.T = make([]time.Time, nt)
	p, ep := make([]float64, nt), make([]float64, nt)
	for j := 0; j < nt; j++ {
		frc.T[j] = t0.Add(time.Duration(j) * time.Hour)
		if j < nrain {
			p[j] = rain
		}
		ep[j] = pe
	}
	frc.P = [][]float64{p}
	frc.Ep = [][]float64{ep}

	return &Domain{
		Units: []hru.Params{
			{Area: 1000., M: 0.01, Lnt0: math.Log(0.001), Srzmax: 0.3, Srz0: 1., Td: 1., Vof: 100., Vchan: 1000., Pfact: 1., Efact: 1.},
			{Area: 500., Vchan: 1000., Chan: true, Pfact: 1., Efact: 1.},
		},
		Wsub: [][]float64{{0., 1.}, {0., 1.}},
		Rtab: []RouteClass{{0., 1.}},
		Frc:  frc,
	}
}

func TestScenarioTwoUnit(t *testing.T) {
	dom := twoUnitDomain(30, 5, 0.001, 0.)
	res, err := dom.Run(RunConfig{Q0: 5e-5, Ntt: 4, Outlet: -1}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if res.Qout[4] <= res.Qout[0] {
		t.Errorf("discharge did not rise during rainfall: q[0]=%v q[4]=%v", res.Qout[0], res.Qout[4])
	}
	if res.Kpeak > 5 {
		t.Errorf("peak at step %d, expected at or just after the rain pulse", res.Kpeak)
	}
	for k := 7; k < len(res.Qout)-1; k++ {
		if res.Qout[k+1] > res.Qout[k]+1e-12 {
			t.Fatalf("recession not monotone at step %d: %v -> %v", k, res.Qout[k], res.Qout[k+1])
		}
	}
	if res.Qsim > res.Pre+1e-9 {
		t.Errorf("outlet volume %v exceeds rainfall volume %v", res.Qsim, res.Pre)
	}
}

func TestNonNegativity(t *testing.T) {
	dom := twoUnitDomain(40, 5, 0.003, 0.0002)
	res, err := dom.Run(RunConfig{Q0: 5e-5, Ntt: 4, Outlet: -1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	srzmax := dom.Units[0].Srzmax
	for i := range res.Sd {
		for k := range res.T {
			if res.Suz[i][k] < 0. || res.Sd[i][k] < 0. || res.Exs[i][k] < 0. {
				t.Fatalf("negative storage at unit %d step %d: suz=%v sd=%v ex=%v",
					i, k, res.Suz[i][k], res.Sd[i][k], res.Exs[i][k])
			}
			if res.Srz[i][k] < 0. || res.Srz[i][k] > srzmax+1e-12 {
				t.Fatalf("root-zone storage out of bounds at unit %d step %d: %v", i, k, res.Srz[i][k])
			}
		}
	}
}

func TestMassBalance(t *testing.T) {
	dom := twoUnitDomain(50, 10, 0.002, 0.0001)
	res, err := dom.Run(RunConfig{Q0: 5e-5, Ntt: 4, Outlet: -1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Resid) > 1e-8 {
		t.Errorf("mass-balance residual %v m³ (pre %v, aet %v, q %v, Δsto %v, transit %v)",
			res.Resid, res.Pre, res.Aet, res.Qsim, res.Dsto, res.Transit)
	}
}

func TestZeroForcingDecay(t *testing.T) {
	dom := twoUnitDomain(25, 0, 0., 0.)
	res, err := dom.Run(RunConfig{Q0: 5e-5, Ntt: 4, Outlet: -1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range res.Exs {
		for k := range res.T {
			if res.Exs[i][k] != 0. {
				t.Fatalf("surface excess %v generated under zero forcing (unit %d step %d)", res.Exs[i][k], i, k)
			}
		}
	}
	if res.Qout[0] <= 0. {
		t.Fatal("no initial baseflow")
	}
	for k := 0; k < len(res.Qout)-1; k++ {
		if res.Qout[k+1] > res.Qout[k]+1e-15 {
			t.Fatalf("discharge not decaying at step %d: %v -> %v", k, res.Qout[k], res.Qout[k+1])
		}
	}
}

func TestSubstepConvergence(t *testing.T) {
	run := func(ntt int) []float64 {
		dom := twoUnitDomain(30, 5, 0.002, 0.)
		res, err := dom.Run(RunConfig{Q0: 5e-5, Ntt: ntt, Outlet: -1}, nil)
		if err != nil {
			t.Fatal(err)
		}
		return res.Qout
	}
	q1, q4, q16 := run(1), run(4), run(16)
	d := func(a, b []float64) float64 {
		s := 0.
		for k := range a {
			s += math.Abs(a[k] - b[k])
		}
		return s
	}
	if d(q4, q16) > d(q1, q16)+1e-12 {
		t.Errorf("sub-stepping not converging: |q4-q16| = %v, |q1-q16| = %v", d(q4, q16), d(q1, q16))
	}
}

func TestUpstreamInjection(t *testing.T) {
	const c = 2.
	dom := twoUnitDomain(20, 5, 0.001, 0.)
	base, err := dom.Run(RunConfig{Q0: 5e-5, Ntt: 4, Outlet: -1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	qup := make([]float64, 20)
	for j := range qup {
		qup[j] = c
	}
	dom2 := twoUnitDomain(20, 5, 0.001, 0.)
	inj, err := dom2.Run(RunConfig{Q0: 5e-5, Ntt: 4, Qup: qup, Outlet: -1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for k := range base.Qout {
		if math.Abs(inj.Qout[k]-base.Qout[k]-c) > 1e-12 {
			t.Fatalf("upstream input not a pure post-routing shift at step %d: %v vs %v", k, inj.Qout[k], base.Qout[k])
		}
	}
}

func TestRoutingDelay(t *testing.T) {
	// 200 m at 100 m/h: channel inflow reaches the outlet two steps late
	dom := twoUnitDomain(10, 1, 0.001, 0.)
	dom.Units[1].Vchan = 100.
	dom.Rtab = []RouteClass{{200., 1.}}
	dom.Units[0].Lnt0 = math.Log(1e-12) // mute the hillslope
	res, err := dom.Run(RunConfig{Q0: 1e-15, Ntt: 2, Outlet: -1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Qout[0] > 1e-9 || res.Qout[1] > 1e-9 {
		t.Errorf("discharge arrived before the travel-time delay: %v", res.Qout[:3])
	}
	if res.Qout[2] <= 1e-9 {
		t.Errorf("delayed inflow missing at step 2: %v", res.Qout[:4])
	}
}

func TestSaturationExcess(t *testing.T) {
	dom := twoUnitDomain(20, 5, 0.01, 0.)
	res, err := dom.Run(RunConfig{Q0: 9e-4, Ntt: 4, Outlet: -1}, nil) // near-saturated start
	if err != nil {
		t.Fatal(err)
	}
	if res.Fof <= 0. {
		t.Error("no overland-flow contribution under saturating rainfall")
	}
	sat := false
	for k := range res.T {
		if res.Qof[0][k] > 0. {
			sat = true
		}
		if res.Sd[0][k] < 0. {
			t.Fatalf("negative deficit at step %d", k)
		}
	}
	if !sat {
		t.Error("hillslope never generated saturation excess")
	}
	if math.Abs(res.Resid) > 1e-8 {
		t.Errorf("mass-balance residual %v m³ with overland flow active", res.Resid)
	}
}

func TestConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Domain, *RunConfig)
	}{
		{"no units", func(d *Domain, c *RunConfig) { d.Units = nil }},
		{"no channel", func(d *Domain, c *RunConfig) { d.Units[1].Chan = false }},
		{"bad matrix order", func(d *Domain, c *RunConfig) { d.Wsub = [][]float64{{0.}} }},
		{"negative weight", func(d *Domain, c *RunConfig) { d.Wsub[0][1] = -1. }},
		{"zero area", func(d *Domain, c *RunConfig) { d.Units[0].Area = 0. }},
		{"empty routing table", func(d *Domain, c *RunConfig) { d.Rtab = nil }},
		{"empty forcing", func(d *Domain, c *RunConfig) { d.Frc.T = nil; d.Frc.P = nil }},
		{"bad window", func(d *Domain, c *RunConfig) { c.T0 = 50; c.T1 = 60 }},
		{"outlet not channel", func(d *Domain, c *RunConfig) { c.Outlet = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dom := twoUnitDomain(10, 2, 0.001, 0.)
			cfg := RunConfig{Q0: 5e-5, Outlet: -1}
			tc.mod(dom, &cfg)
			if _, err := dom.Run(cfg, nil); err == nil {
				t.Error("invalid input accepted")
			}
		})
	}
}

func TestOutletDefault(t *testing.T) {
	dom := twoUnitDomain(10, 2, 0.001, 0.)
	cfg, err := RunConfig{Q0: 5e-5, Outlet: -1}.resolve(dom)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Outlet != 1 {
		t.Errorf("negative outlet resolved to unit %d, want first channel unit 1", cfg.Outlet)
	}
	if _, err := (RunConfig{Q0: 5e-5}).resolve(dom); err == nil {
		t.Error("zero-valued outlet accepted for a non-channel unit")
	}
}

// linDecline declines linearly with deficit, vanishing at dmax.
type linDecline struct{ q0, dmax float64 }

func (l linDecline) Flux(sd float64) float64 {
	if sd >= l.dmax {
		return 0.
	}
	return l.q0 * (1. - sd/l.dmax)
}

func TestCustomCelerity(t *testing.T) {
	lin := linDecline{q0: 1e-3, dmax: 0.05}
	dom := twoUnitDomain(10, 2, 0.001, 0.)
	ev, err := newEvaluation(dom, RunConfig{Q0: 5e-5, Ntt: 4, Outlet: -1, Cel: lin})
	if err != nil {
		t.Fatal(err)
	}
	sd0 := -0.01 * math.Log(5e-5/1e-3) // deficits still initialise from the exponential law
	if math.Abs(ev.h[0].Sto.Sd-sd0) > 1e-12 {
		t.Fatalf("initial deficit %v, want %v", ev.h[0].Sto.Sd, sd0)
	}
	if got, want := ev.h[0].Qbf(), lin.Flux(sd0); got != want {
		t.Errorf("baseflow %v, want %v from the injected relationship", got, want)
	}

	def, err := twoUnitDomain(10, 2, 0.001, 0.).Run(RunConfig{Q0: 5e-5, Ntt: 4, Outlet: -1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := dom.Run(RunConfig{Q0: 5e-5, Ntt: 4, Outlet: -1, Cel: lin}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Qout[0]-def.Qout[0]) < 1e-12 {
		t.Error("injected relationship did not alter the outlet response")
	}
	if math.Abs(res.Resid) > 1e-8 {
		t.Errorf("water balance residual %v m³", res.Resid)
	}
}
