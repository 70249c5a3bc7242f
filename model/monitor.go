package model

import "time"

// StepSnap is the read-only snapshot handed to a Monitor after every
// completed time step.
type StepSnap struct {
	K       int       // relative step index
	T       time.Time // step time
	Q       float64   // outlet discharge [m³/h]
	Qspec   float64   // specific outlet discharge [m/h]
	Storage float64   // mean catchment storage [m]
}

// Monitor observes a running simulation; implementations must not
// retain or mutate anything reachable from the snapshot.
type Monitor interface {
	Step(s StepSnap)
}

type nilMonitor struct{}

func (nilMonitor) Step(StepSnap) {}
