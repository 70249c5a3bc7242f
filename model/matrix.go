package model

import "fmt"

// complement derives the net-inflow matrix A = diag(1/a)·Wᵗ·diag(a) − I
// from a downslope weighting matrix and per-unit areas: (A·q)ᵢ is the
// area-weighted net lateral input rate to unit i for unit outflow rates
// q. Row shortfalls (Σw < 1) represent direct export to the outlet and
// are left to the caller to account.
func complement(w [][]float64, area []float64) ([][]float64, error) {
	n := len(area)
	if err := checkWeights(w, n); err != nil {
		return nil, fmt.Errorf("complement: %v", err)
	}
	a := make([][]float64, n)
	for i := 0; i < n; i++ {
		a[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			a[i][j] = w[j][i] * area[j] / area[i]
		}
		a[i][i] -= 1.
	}
	return a, nil
}

// exportFrac returns, per unit, the weighting-row shortfall 1 − Σw:
// the fraction of its outflow exporting directly to the outlet.
func exportFrac(w [][]float64) []float64 {
	e := make([]float64, len(w))
	for i, row := range w {
		s := 0.
		for _, v := range row {
			s += v
		}
		if s < 1. {
			e[i] = 1. - s
		}
	}
	return e
}
