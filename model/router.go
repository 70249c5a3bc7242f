package model

import (
	"fmt"
	"math"
	"sort"
)

// lagw is one travel-time class of a channel routing kernel: a
// whole-step delay and the fraction of inflow it carries.
type lagw struct {
	n int
	w float64
}

// buildKernel converts the travel-distance distribution into a
// discrete time-lag convolution kernel for channel velocity v [m/h]
// and time step dt [h]. Fractional delays split linearly between
// adjacent steps, so kernel weights always sum to the (normalised)
// fraction total. Fractions not summing to one are tolerated and
// rescaled with a printed diagnostic.
func buildKernel(rtab []RouteClass, v, dt float64) ([]lagw, error) {
	if v <= 0. {
		return nil, fmt.Errorf("buildKernel: non-positive channel velocity %v", v)
	}
	if dt <= 0. {
		return nil, fmt.Errorf("buildKernel: non-positive time step %v", dt)
	}
	fsum := 0.
	for _, rc := range rtab {
		fsum += rc.Frac
	}
	if fsum <= 0. {
		return nil, fmt.Errorf("buildKernel: routing fractions sum to %v", fsum)
	}
	if math.Abs(fsum-1.) > tinyfrac {
		fmt.Printf(" buildKernel warning: routing fractions sum to %f, rescaled\n", fsum)
	}

	m := make(map[int]float64, len(rtab)+1)
	for _, rc := range rtab {
		f := rc.Frac / fsum
		td := rc.Dist / v / dt // delay in steps
		n := int(td)
		r := td - float64(n)
		m[n] += f * (1. - r)
		if r > 0. {
			m[n+1] += f * r
		}
	}

	k := make([]lagw, 0, len(m))
	for n, w := range m {
		if w > 0. {
			k = append(k, lagw{n, w})
		}
	}
	sort.Slice(k, func(i, j int) bool { return k[i].n < k[j].n })
	return k, nil
}

// maxlag returns the kernel's largest whole-step delay.
func maxlag(k []lagw) int {
	if len(k) == 0 {
		return 0
	}
	return k[len(k)-1].n
}

// route spreads a channel inflow volume [m³] entering at (relative)
// step k across the routing buffer; writes are always at or after k.
func (ev *evaluation) route(ci, k int, vol float64) {
	for _, lw := range ev.kern[ci] {
		ev.qr[k+lw.n] += vol * lw.w
	}
}
