package forcing

import (
	"math"
	"testing"
	"time"
)

func testRecord(nt, ng int) *Forcing {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	frc := &Forcing{IntervalSec: 3600.}
	frc.T = make([]time.Time, nt)
	for j := range frc.T {
		frc.T[j] = t0.Add(time.Duration(j) * time.Hour)
	}
	frc.P = make([][]float64, ng)
	frc.Ep = make([][]float64, ng)
	for g := 0; g < ng; g++ {
		frc.P[g] = make([]float64, nt)
		frc.Ep[g] = make([]float64, nt)
		for j := 0; j < nt; j++ {
			frc.P[g][j] = 0.001 * float64(g+1)
			frc.Ep[g][j] = 0.0001 * float64(g+1)
		}
	}
	return frc
}

func TestDistribute(t *testing.T) {
	frc := testRecord(10, 2)
	p, ep, err := frc.Distribute([]int{1, 0}, []float64{1.5, 1.}, []float64{1., 2.})
	if err != nil {
		t.Fatal(err)
	}
	if got := p[0][0]; math.Abs(got-0.003) > 1e-12 { // 1.5 × gauge 1
		t.Errorf("p[0][0] = %v, want 0.003", got)
	}
	if got := ep[1][0]; math.Abs(got-0.0002) > 1e-12 { // 2 × gauge 0
		t.Errorf("ep[1][0] = %v, want 0.0002", got)
	}
}

func TestDistributeGaugeClamp(t *testing.T) {
	frc := testRecord(5, 2)
	p, _, err := frc.Distribute([]int{7}, []float64{1.}, []float64{1.})
	if err != nil {
		t.Fatal(err)
	}
	if got := p[0][0]; math.Abs(got-0.002) > 1e-12 { // clamped to last gauge
		t.Errorf("p[0][0] = %v, want 0.002", got)
	}
}

func TestDistributeDegenerate(t *testing.T) {
	empty := &Forcing{IntervalSec: 3600.}
	if _, _, err := empty.Distribute([]int{0}, []float64{1.}, []float64{1.}); err == nil {
		t.Error("empty record accepted")
	}
	frc := testRecord(5, 1)
	frc.P = nil
	if _, _, err := frc.Distribute([]int{0}, []float64{1.}, []float64{1.}); err == nil {
		t.Error("record without gauges accepted")
	}
	frc = testRecord(5, 1)
	if _, _, err := frc.Distribute([]int{0, 0}, []float64{1.}, []float64{1.}); err == nil {
		t.Error("mismatched factor lengths accepted")
	}
}
