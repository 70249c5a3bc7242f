package model

// stepSubsurface advances the saturated, unsaturated and root zones of
// every unit through the inner sub-steps of forcing step j. All
// baseflows are read from prior sub-step state before any deficit is
// written. Channel units bypass the recharge dynamics entirely: their
// lateral inflow and direct rainfall accumulate as channel inflow, as
// does every unit's direct-export share of baseflow.
func (ev *evaluation) stepSubsurface(j int) {
	fntt := float64(ev.ntt)
	for it := 0; it < ev.ntt; it++ {
		for i, h := range ev.h {
			ev.qbf[i] = h.Qbf()
		}
		for i := range ev.h {
			qn := 0.
			for k, a := range ev.asub[i] {
				if a != 0. && ev.qbf[k] != 0. {
					qn += a * ev.qbf[k]
				}
			}
			ev.qnet[i] = qn
		}

		for i, h := range ev.h {
			p := ev.p[i][j]
			fx := &ev.fx[i]
			if h.Par.Chan { // pure flow-accumulation point
				ev.chv[ev.cpos[i]] += (ev.qnet[i] + p) * h.Par.Area * ev.dtt
				fx.Qin += ev.qnet[i] / fntt
				fx.Rain += p / fntt
				continue
			}
			uz, ae := h.UpdateVadose(p, ev.ep[i][j], ev.dtt)
			xs := h.IntegrateDeficit(ev.qnet[i], uz, ev.dtt)
			ev.chv[ev.iout] += ev.esub[i] * ev.qbf[i] * h.Par.Area * ev.dtt

			fx.Qbf += ev.qbf[i] / fntt
			fx.Qin += ev.qnet[i] / fntt
			fx.Uz += uz / fntt
			fx.Rain += p / fntt
			fx.Ae += ae / fntt
			fx.Qof += xs / ev.dt
		}
	}
}
