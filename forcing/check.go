package forcing

import "fmt"

// Check validates the record before a run: at least one gauge, a
// non-empty series, equal column lengths and a positive interval.
func (frc *Forcing) Check() error {
	nt := len(frc.T)
	if nt == 0 {
		return fmt.Errorf("forcing.Check: empty forcing series")
	}
	if len(frc.P) == 0 {
		return fmt.Errorf("forcing.Check: no rainfall gauges")
	}
	if frc.IntervalSec <= 0. {
		return fmt.Errorf("forcing.Check: non-positive interval (%fs)", frc.IntervalSec)
	}
	for g, v := range frc.P {
		if len(v) != nt {
			return fmt.Errorf("forcing.Check: rainfall gauge %d holds %d steps, expected %d", g, len(v), nt)
		}
	}
	for g, v := range frc.Ep {
		if len(v) != nt {
			return fmt.Errorf("forcing.Check: pe gauge %d holds %d steps, expected %d", g, len(v), nt)
		}
	}
	return nil
}

// CheckAndPrint validates then prints a short record summary.
func (frc *Forcing) CheckAndPrint() error {
	if err := frc.Check(); err != nil {
		return err
	}
	nt, ng := len(frc.T), len(frc.P)
	fmt.Println("Forcing summary:")
	fmt.Printf(" %v to %v (%d timesteps)\n", frc.T[0], frc.T[nt-1], nt)
	fmt.Printf(" model timestep interval: %ds, %d gauges\n", int64(frc.IntervalSec), ng)

	sy, se := 0., 0.
	for g := 0; g < ng; g++ {
		for j := range frc.T {
			sy += frc.P[g][j] * frc.IntervalHr()
			if g < len(frc.Ep) {
				se += frc.Ep[g][j] * frc.IntervalHr()
			}
		}
	}
	fmt.Printf(" record totals (m): P: %.5f   Ep: %.5f\n", sy/float64(ng), se/float64(ng))
	return nil
}
