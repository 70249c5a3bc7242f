package forcing

import "fmt"

// Distribute maps the gauge series onto nu units: unit i receives
// pf[i]·P[gauges[i]] and ef[i]·Ep[gauges[i]]. A gauge index outside
// the available columns is clamped to the last column with a printed
// diagnostic (upstream tooling is trusted but not infallible). A
// missing Ep block yields zero evapotranspiration demand.
func (frc *Forcing) Distribute(gauges []int, pf, ef []float64) (p, ep [][]float64, err error) {
	if err = frc.Check(); err != nil {
		return nil, nil, err
	}
	nu, nt, ng := len(gauges), len(frc.T), len(frc.P)
	if len(pf) != nu || len(ef) != nu {
		return nil, nil, fmt.Errorf("forcing.Distribute: factor lengths (%d,%d) do not match %d units", len(pf), len(ef), nu)
	}

	p, ep = make([][]float64, nu), make([][]float64, nu)
	for i, g := range gauges {
		if g < 0 || g >= ng {
			fmt.Printf(" forcing.Distribute warning: unit %d assigned gauge %d, clamped to %d\n", i, g, ng-1)
			g = ng - 1
		}
		p[i] = make([]float64, nt)
		ep[i] = make([]float64, nt)
		for j := 0; j < nt; j++ {
			p[i][j] = pf[i] * frc.P[g][j]
			if g < len(frc.Ep) {
				ep[i][j] = ef[i] * frc.Ep[g][j]
			}
		}
	}
	return p, ep, nil
}
