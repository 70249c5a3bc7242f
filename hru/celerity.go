package hru

import "math"

// Celerity is the flux-storage relationship mapping a unit's
// saturated-zone deficit [m] to its outgoing baseflow rate [m/h].
// Implementations must be strictly decreasing in deficit.
type Celerity interface {
	Flux(sd float64) float64
}

// ExpDecline is the default TOPMODEL kinematic relationship
// qbf = Q0·exp(-sd/M).
type ExpDecline struct {
	Q0, M float64
}

// Flux returns the baseflow rate at deficit sd.
func (e ExpDecline) Flux(sd float64) float64 {
	return e.Q0 * math.Exp(-sd/e.M)
}
