package hru

import "math"

// Params holds the (run-constant) parameter set of one hydrologic
// response unit. Storages are depths of water [m], rates [m/h].
type Params struct {
	Area   float64 // unit area [m²]
	M      float64 // exponential transmissivity-decline shape [m]
	Lnt0   float64 // log lateral transmissivity at saturation [ln(m/h)]
	Srzmax float64 // root-zone storage capacity [m]
	Srz0   float64 // initial root-zone saturation fraction [-]
	Td     float64 // unsaturated-zone time delay [h/m]
	Vof    float64 // overland flow velocity [m/h]
	Vchan  float64 // channel flow velocity [m/h]
	Pfact  float64 // rainfall correction factor
	Efact  float64 // potential-evapotranspiration correction factor
	Gauge  int     // forcing gauge assignment
	Chan   bool    // channel/outlet unit
}

// Q0 returns the saturated lateral flow rate exp(Lnt0) [m/h].
func (p Params) Q0() float64 { return math.Exp(p.Lnt0) }

// State is the evolving storage state of a unit: root-zone storage,
// unsaturated-zone storage, saturated-zone deficit (larger = drier)
// and surface excess. All [m].
type State struct {
	Srz, Suz, Sd, Ex float64
}

// Flux is one unit's flux record for one time step: baseflow, net
// lateral input, unsaturated drainage, rainfall, actual
// evapotranspiration, surface-excess outflow and overland flow.
// All rates [m/h]; recomputed every step, never carried.
type Flux struct {
	Qbf, Qin, Uz, Rain, Ae, Ex, Qof float64
}

// HRU couples a parameter set with its evolving state.
type HRU struct {
	Par Params
	Sto State
	cel Celerity
}

// New builds a unit from its parameter set, defaulting the celerity
// relationship to the exponential decline law built from Lnt0 and M.
func New(par Params, cel Celerity) *HRU {
	if cel == nil {
		cel = ExpDecline{Q0: par.Q0(), M: par.M}
	}
	return &HRU{Par: par, cel: cel}
}

// Initialize sets the start-of-run state from an initial specific
// discharge q0 [m/h]: sd0 = -m·ln(q0/qmax), floored at saturation.
func (h *HRU) Initialize(q0 float64) {
	h.Sto.Srz = h.Par.Srz0 * h.Par.Srzmax
	h.Sto.Suz = 0.
	h.Sto.Ex = 0.
	h.Sto.Sd = 0.
	if h.Par.Chan {
		return // channel units carry no subsurface state
	}
	if qo := h.Par.Q0(); q0 > 0. && q0 < qo {
		h.Sto.Sd = -h.Par.M * math.Log(q0/qo)
	}
}

// Qbf returns the unit's current baseflow rate [m/h].
func (h *HRU) Qbf() float64 {
	if h.Par.Chan {
		return 0.
	}
	return h.cel.Flux(h.Sto.Sd)
}

// UpdateVadose advances the root and unsaturated zones one sub-step of
// length dtt [h] given rainfall and potential-evapotranspiration rates
// p, ep [m/h]. Returns drainage to the saturated zone and actual
// evapotranspiration, both rates [m/h].
func (h *HRU) UpdateVadose(p, ep, dtt float64) (uz, ae float64) {
	if h.Par.Srzmax > 0. {
		ae = ep * h.Sto.Srz / h.Par.Srzmax
	}
	h.Sto.Srz += (p - ae) * dtt
	if h.Sto.Srz < 0. { // demand exceeded supply
		ae += h.Sto.Srz / dtt
		h.Sto.Srz = 0.
	}
	if h.Sto.Srz > h.Par.Srzmax { // root zone at capacity, drain down
		h.Sto.Suz += h.Sto.Srz - h.Par.Srzmax
		h.Sto.Srz = h.Par.Srzmax
	}
	if h.Sto.Sd > 0. && h.Sto.Suz > 0. && h.Par.Td > 0. {
		uz = h.Sto.Suz / (h.Sto.Sd * h.Par.Td)
		if uz*dtt > h.Sto.Suz {
			uz = h.Sto.Suz / dtt
		}
		h.Sto.Suz -= uz * dtt
	}
	return
}

// IntegrateDeficit advances the saturated-zone deficit one sub-step:
// qnet is the net lateral input rate (inflow less own baseflow) and uz
// the unsaturated drainage rate, both [m/h]. A deficit driven below
// zero is floored and the surplus diverted to surface excess; the
// diverted depth [m] is returned.
func (h *HRU) IntegrateDeficit(qnet, uz, dtt float64) (xs float64) {
	h.Sto.Sd -= (qnet + uz) * dtt
	if h.Sto.Sd < 0. {
		xs = -h.Sto.Sd
		h.Sto.Ex += xs
		h.Sto.Sd = 0.
	}
	return
}

// Storage returns total unit storage [m]; the deficit counts negative.
func (h *HRU) Storage() float64 {
	return h.Sto.Srz + h.Sto.Suz + h.Sto.Ex - h.Sto.Sd
}
