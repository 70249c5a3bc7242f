package forcing

import "time"

// Forcing holds multi-gauge rainfall and potential-evapotranspiration
// series: P and Ep are rates [m/h], indexed [gauge][step].
type Forcing struct {
	T           []time.Time // [date ID]
	P, Ep       [][]float64 // [gaugeID][dateID] atmospheric exchange terms
	IntervalSec float64
}

// Nstep returns the number of time steps in the record.
func (frc *Forcing) Nstep() int { return len(frc.T) }

// IntervalHr returns the record interval in hours.
func (frc *Forcing) IntervalHr() float64 { return frc.IntervalSec / 3600. }
