package model

import "math"

// distributeExcess moves surface-excess storage one sub-step downslope
// along the surface weighting graph, falling back to a unit's overflow
// row when the receiver is already at capacity. Transfers are
// area-weighted so mass is conserved; weighting-row shortfalls export
// directly to the outlet channel. Outflow follows the linear kinetic
// relationship with rate constant vof/√area, so no unit ever sheds
// more than it holds.
func (ev *evaluation) distributeExcess() {
	wsrf := ev.dom.Wsrf
	if wsrf == nil {
		wsrf = ev.dom.Wsub // no separate surface graph supplied
	}

	// snapshot outflows before any receipt
	for i, h := range ev.h {
		ev.xout[i] = 0.
		if h.Par.Chan || h.Sto.Ex <= 0. {
			continue
		}
		f := h.Par.Vof * ev.dtt / math.Sqrt(h.Par.Area)
		if f > 1. {
			f = 1.
		}
		ev.xout[i] = h.Sto.Ex * f
	}

	for i, h := range ev.h {
		out := ev.xout[i]
		if out <= 0. {
			continue
		}
		h.Sto.Ex -= out
		ev.fx[i].Ex += out / ev.dt
		vol := out * h.Par.Area
		rsum := 0.
		for k, w := range wsrf[i] {
			if w <= 0. {
				continue
			}
			rsum += w
			if ev.h[k].Sto.Ex >= ev.cfg.ExCap { // receiver full, divert
				ev.overflow(i, vol*w)
			} else {
				ev.h[k].Sto.Ex += vol * w / ev.h[k].Par.Area
			}
		}
		if rsum < 1. { // direct export to the outlet
			x := vol * (1. - rsum)
			ev.chv[ev.iout] += x
			ev.ofvol += x
		}
	}
}

// overflow redistributes a diverted share [m³] along unit i's overflow
// row; with no usable row the share exports directly to the outlet.
// Overflow receivers take their share regardless of their own state,
// keeping the fallback single-level.
func (ev *evaluation) overflow(i int, vol float64) {
	if ev.dom.Wovf == nil {
		ev.chv[ev.iout] += vol
		ev.ofvol += vol
		return
	}
	rsum := 0.
	for k, w := range ev.dom.Wovf[i] {
		if w <= 0. {
			continue
		}
		rsum += w
		ev.h[k].Sto.Ex += vol * w / ev.h[k].Par.Area
	}
	if rsum < 1. {
		x := vol * (1. - rsum)
		ev.chv[ev.iout] += x
		ev.ofvol += x
	}
}

// extractChannel transfers channel-unit excess instantaneously to the
// channel network; channel storage never accumulates between steps.
func (ev *evaluation) extractChannel() {
	for ci, c := range ev.ichan {
		h := ev.h[c]
		if h.Sto.Ex > 0. {
			v := h.Sto.Ex * h.Par.Area
			ev.chv[ci] += v
			ev.ofvol += v
			ev.fx[c].Ex += h.Sto.Ex / ev.dt
			h.Sto.Ex = 0.
		}
	}
}
