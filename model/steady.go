package model

// steadyDeficits spins the lateral-exchange balance to equilibrium
// under the record-mean net recharge, deriving initial deficits when
// no initial discharge is supplied.
func (ev *evaluation) steadyDeficits() {
	cfg := ev.cfg
	rbar, n := 0., 0
	for i, h := range ev.h {
		if h.Par.Chan {
			continue
		}
		for j := cfg.T0; j < cfg.T1; j++ {
			rbar += ev.p[i][j] - ev.ep[i][j]
		}
		n += cfg.T1 - cfg.T0
	}
	if n > 0 {
		rbar /= float64(n)
	}
	if rbar < nearzero {
		rbar = nearzero
	}
	for _, h := range ev.h {
		h.Initialize(rbar) // steady state: discharge balances recharge
	}

	for iter := 0; iter < steadyiter; iter++ {
		for i, h := range ev.h {
			ev.qbf[i] = h.Qbf()
		}
		dmax := 0.
		for i, h := range ev.h {
			if h.Par.Chan {
				continue
			}
			qn := 0.
			for k, a := range ev.asub[i] {
				if a != 0. && ev.qbf[k] != 0. {
					qn += a * ev.qbf[k]
				}
			}
			d := -(qn + rbar) * ev.dt
			h.Sto.Sd += d
			if h.Sto.Sd < 0. {
				h.Sto.Sd = 0.
			}
			if d < 0. {
				d = -d
			}
			if d > dmax {
				dmax = d
			}
		}
		if dmax < nearzero {
			break
		}
	}
}
